package authservice

import (
	"context"
	"strings"

	userdb "github.com/Black-And-White-Club/league-admin/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
)

// ------------------------
// Fake User Lookup
// ------------------------

type FakeUsers struct {
	users []*userdb.User
	Err   error
	trace []string
}

func (f *FakeUsers) GetUser(_ context.Context, userID string) (*userdb.User, error) {
	f.trace = append(f.trace, "GetUser")
	if f.Err != nil {
		return nil, f.Err
	}
	for _, u := range f.users {
		if u.ID == userID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *FakeUsers) GetUserByEmail(_ context.Context, email string) (*userdb.User, error) {
	f.trace = append(f.trace, "GetUserByEmail")
	if f.Err != nil {
		return nil, f.Err
	}
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}
