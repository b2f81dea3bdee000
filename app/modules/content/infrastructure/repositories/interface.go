package contentdb

import "github.com/Black-And-White-Club/league-admin/app/shared/repository"

// Repository groups the per-entity stores of the content module.
type Repository interface {
	News() repository.Repository[News]
	Slides() repository.Repository[CarouselSlide]
	Media() repository.Repository[MediaObject]
}
