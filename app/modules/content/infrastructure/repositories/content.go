package contentdb

import (
	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a content entity is not found.
var ErrNotFound = repository.ErrNotFound

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	news   *repository.Impl[News, *News]
	slides *repository.Impl[CarouselSlide, *CarouselSlide]
	media  *repository.Impl[MediaObject, *MediaObject]
}

// NewRepository creates a new content repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{
		news:   repository.New[News](db),
		slides: repository.New[CarouselSlide](db),
		media:  repository.New[MediaObject](db),
	}
}

func (r *Impl) News() repository.Repository[News]            { return r.news }
func (r *Impl) Slides() repository.Repository[CarouselSlide] { return r.slides }
func (r *Impl) Media() repository.Repository[MediaObject]    { return r.media }
