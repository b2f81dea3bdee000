package crud

import (
	"context"

	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/uptrace/bun"
)

type thing struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (t *thing) PrimaryKey() string          { return t.ID }
func (t *thing) AssignPrimaryKey(id string) { t.ID = id }

// ------------------------
// Fake Repo
// ------------------------

type FakeRepo struct {
	trace []string

	GetFunc        func(ctx context.Context, db bun.IDB, id string) (*thing, error)
	ListFunc       func(ctx context.Context, db bun.IDB, opts repository.ListOptions) ([]*thing, error)
	CreateFunc     func(ctx context.Context, db bun.IDB, entity *thing) error
	CreateManyFunc func(ctx context.Context, db bun.IDB, entities []*thing) (int, error)
	UpdateFunc     func(ctx context.Context, db bun.IDB, entity *thing) error
	DeleteFunc     func(ctx context.Context, db bun.IDB, id string) error
}

func (f *FakeRepo) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeRepo) Get(ctx context.Context, db bun.IDB, id string) (*thing, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(ctx, db, id)
	}
	return nil, repository.ErrNotFound
}

func (f *FakeRepo) List(ctx context.Context, db bun.IDB, opts repository.ListOptions) ([]*thing, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db, opts)
	}
	return nil, nil
}

func (f *FakeRepo) Create(ctx context.Context, db bun.IDB, entity *thing) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, entity)
	}
	return nil
}

func (f *FakeRepo) CreateMany(ctx context.Context, db bun.IDB, entities []*thing) (int, error) {
	f.record("CreateMany")
	if f.CreateManyFunc != nil {
		return f.CreateManyFunc(ctx, db, entities)
	}
	return len(entities), nil
}

func (f *FakeRepo) Update(ctx context.Context, db bun.IDB, entity *thing) error {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, entity)
	}
	return nil
}

func (f *FakeRepo) Delete(ctx context.Context, db bun.IDB, id string) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, id)
	}
	return nil
}

func (f *FakeRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ repository.Repository[thing] = (*FakeRepo)(nil)
