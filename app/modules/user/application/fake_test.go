package userservice

import (
	"context"
	"strings"

	userdb "github.com/Black-And-White-Club/league-admin/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository/repositorytest"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake User Repo
// ------------------------

type FakeUserRepo struct {
	users *repositorytest.Memory[userdb.User, *userdb.User]
}

func NewFakeUserRepo(seed ...*userdb.User) *FakeUserRepo {
	return &FakeUserRepo{users: repositorytest.NewMemory[userdb.User](seed...)}
}

func (f *FakeUserRepo) Users() repository.Repository[userdb.User] { return f.users }

func (f *FakeUserRepo) GetByEmail(ctx context.Context, db bun.IDB, email string) (*userdb.User, error) {
	users, err := f.users.List(ctx, db, repository.ListOptions{})
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return u, nil
		}
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepo) EmailTaken(ctx context.Context, db bun.IDB, email, excludeID string) (bool, error) {
	users, err := f.users.List(ctx, db, repository.ListOptions{})
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.ID != excludeID && strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return true, nil
		}
	}
	return false, nil
}

var _ userdb.Repository = (*FakeUserRepo)(nil)
