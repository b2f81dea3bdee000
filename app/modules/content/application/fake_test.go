package contentservice

import (
	"sync"

	contentdb "github.com/Black-And-White-Club/league-admin/app/modules/content/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository/repositorytest"
	"github.com/ThreeDotsLabs/watermill/message"
)

// ------------------------
// Fake Content Repo
// ------------------------

type FakeContentRepo struct {
	news   *repositorytest.Memory[contentdb.News, *contentdb.News]
	slides *repositorytest.Memory[contentdb.CarouselSlide, *contentdb.CarouselSlide]
	media  *repositorytest.Memory[contentdb.MediaObject, *contentdb.MediaObject]
}

func NewFakeContentRepo() *FakeContentRepo {
	return &FakeContentRepo{
		news:   repositorytest.NewMemory[contentdb.News](),
		slides: repositorytest.NewMemory[contentdb.CarouselSlide](),
		media:  repositorytest.NewMemory[contentdb.MediaObject](),
	}
}

func (f *FakeContentRepo) News() repository.Repository[contentdb.News]            { return f.news }
func (f *FakeContentRepo) Slides() repository.Repository[contentdb.CarouselSlide] { return f.slides }
func (f *FakeContentRepo) Media() repository.Repository[contentdb.MediaObject]    { return f.media }

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu       sync.Mutex
	Messages map[string][]*message.Message
	Err      error
}

func (p *FakePublisher) Publish(topic string, msgs ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	if p.Messages == nil {
		p.Messages = map[string][]*message.Message{}
	}
	p.Messages[topic] = append(p.Messages[topic], msgs...)
	return nil
}

func (p *FakePublisher) Close() error { return nil }

func (p *FakePublisher) Count(topic string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Messages[topic])
}
