package activityservice

import (
	"context"
	"sync"

	activitydb "github.com/Black-And-White-Club/league-admin/app/modules/activity/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository/repositorytest"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Activity Repo
// ------------------------

type FakeActivityRepo struct {
	mu      sync.Mutex
	entries *repositorytest.Memory[activitydb.Entry, *activitydb.Entry]
	trace   []string

	AppendErr error
}

func NewFakeActivityRepo() *FakeActivityRepo {
	return &FakeActivityRepo{entries: repositorytest.NewMemory[activitydb.Entry]()}
}

func (f *FakeActivityRepo) Entries() repository.Repository[activitydb.Entry] { return f.entries }

func (f *FakeActivityRepo) Append(ctx context.Context, db bun.IDB, e *activitydb.Entry) (bool, error) {
	f.mu.Lock()
	f.trace = append(f.trace, "Append")
	f.mu.Unlock()
	if f.AppendErr != nil {
		return false, f.AppendErr
	}
	if _, err := f.entries.Get(ctx, db, e.ID); err == nil {
		return false, nil
	}
	return true, f.entries.Create(ctx, db, e)
}

func (f *FakeActivityRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.trace...)
}
