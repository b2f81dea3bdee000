package contenthandlers

import (
	"context"

	contentdb "github.com/Black-And-White-Club/league-admin/app/modules/content/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
	"github.com/Black-And-White-Club/league-admin/app/shared/crud"
)

// ------------------------
// Fake Media Store
// ------------------------

type FakeMediaStore struct {
	UploadFunc func(ctx context.Context, name, contentType string, data []byte) (*contentdb.MediaObject, error)
	Objects    map[string]*contentdb.MediaObject
	MaxBytes   int64

	trace []string
}

func (f *FakeMediaStore) Trace() []string { return f.trace }

func (f *FakeMediaStore) Upload(ctx context.Context, name, contentType string, data []byte) (*contentdb.MediaObject, error) {
	f.trace = append(f.trace, "Upload")
	if f.UploadFunc != nil {
		return f.UploadFunc(ctx, name, contentType, data)
	}
	return &contentdb.MediaObject{ID: "m1", Name: name, ContentType: contentType, Size: int64(len(data)), URL: "/api/media/m1"}, nil
}

func (f *FakeMediaStore) GetMedia(_ context.Context, id string) (*contentdb.MediaObject, error) {
	f.trace = append(f.trace, "GetMedia")
	if obj, ok := f.Objects[id]; ok {
		return obj, nil
	}
	return nil, apperr.ErrNotFound
}

func (f *FakeMediaStore) DeleteMedia(_ context.Context, id string) error {
	f.trace = append(f.trace, "DeleteMedia")
	if _, ok := f.Objects[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(f.Objects, id)
	return nil
}

func (f *FakeMediaStore) MaxMediaBytes() int64 {
	if f.MaxBytes == 0 {
		return 1 << 10
	}
	return f.MaxBytes
}

// ------------------------
// Fake Entity Services
// ------------------------

type FakeNews struct {
	crud.EntityService[contentdb.News]
}

type FakeSlides struct {
	crud.EntityService[contentdb.CarouselSlide]
}
