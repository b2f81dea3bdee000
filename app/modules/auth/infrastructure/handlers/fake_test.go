package authhandlers

import (
	"context"

	authservice "github.com/Black-And-White-Club/league-admin/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/league-admin/app/modules/auth/domain"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	AuthenticateFunc func(ctx context.Context, token string) (*authdomain.Session, error)
	IssueTokenFunc   func(ctx context.Context, req authservice.TokenRequest) (*authservice.TokenResponse, error)

	trace []string
}

func (f *FakeService) Trace() []string { return f.trace }

func (f *FakeService) Authenticate(ctx context.Context, token string) (*authdomain.Session, error) {
	f.trace = append(f.trace, "Authenticate")
	if f.AuthenticateFunc != nil {
		return f.AuthenticateFunc(ctx, token)
	}
	return nil, authservice.ErrInvalidToken
}

func (f *FakeService) IssueToken(ctx context.Context, req authservice.TokenRequest) (*authservice.TokenResponse, error) {
	f.trace = append(f.trace, "IssueToken")
	if f.IssueTokenFunc != nil {
		return f.IssueTokenFunc(ctx, req)
	}
	return nil, nil
}

var _ authservice.Service = (*FakeService)(nil)
