// Package crud provides the get/list/create/update/delete application service
// and HTTP routes shared by every reference entity.
package crud

import (
	"context"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/Black-And-White-Club/league-admin/app/shared/results"
	"github.com/Black-And-White-Club/league-admin/app/shared/telemetry"
	"github.com/uptrace/bun"
)

// Validator checks an entity before it is written. excludeID is the id of the
// entity being updated, empty on create. Returned errors are domain failures.
type Validator[T any] func(ctx context.Context, db bun.IDB, entity *T, excludeID string) error

// Hook runs after a successful write inside the same transaction.
type Hook[T any] func(ctx context.Context, db bun.IDB, entity *T) error

// Options customise a Service.
type Options[T any] struct {
	Validate    Validator[T]
	AfterCreate Hook[T]
	AfterUpdate Hook[T]
}

// Service implements the CRUD operations of one entity type.
type Service[T any, PT interface {
	*T
	repository.Model
}] struct {
	scope  telemetry.Scope
	repo   repository.Repository[T]
	entity string
	opts   Options[T]
}

// NewService creates a CRUD service. entity names the type in operation names and errors.
func NewService[T any, PT interface {
	*T
	repository.Model
}](scope telemetry.Scope, repo repository.Repository[T], entity string, opts Options[T]) *Service[T, PT] {
	return &Service[T, PT]{scope: scope, repo: repo, entity: entity, opts: opts}
}

// Get retrieves one entity.
func (s *Service[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	return telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "Get"+s.entity, id, func(ctx context.Context) (results.OperationResult[*T, error], error) {
		return telemetry.RunInTx(s.scope, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*T, error], error) {
			return s.getLogic(ctx, db, id)
		})
	}))
}

func (s *Service[T, PT]) getLogic(ctx context.Context, db bun.IDB, id string) (results.OperationResult[*T, error], error) {
	entity, err := s.repo.Get(ctx, db, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return results.FailureResult[*T, error](fmt.Errorf("%s %q: %w", s.entity, id, apperr.ErrNotFound)), nil
		}
		return results.OperationResult[*T, error]{}, fmt.Errorf("failed to get %s: %w", s.entity, err)
	}
	return results.SuccessResult[*T, error](entity), nil
}

// List retrieves entities matching opts.
func (s *Service[T, PT]) List(ctx context.Context, opts repository.ListOptions) ([]*T, error) {
	return telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "List"+s.entity, "", func(ctx context.Context) (results.OperationResult[[]*T, error], error) {
		entities, err := s.repo.List(ctx, nil, opts)
		if err != nil {
			return results.OperationResult[[]*T, error]{}, fmt.Errorf("failed to list %s: %w", s.entity, err)
		}
		if entities == nil {
			entities = []*T{}
		}
		return results.SuccessResult[[]*T, error](entities), nil
	}))
}

// Create validates and inserts an entity.
func (s *Service[T, PT]) Create(ctx context.Context, entity *T) (*T, error) {
	return telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "Create"+s.entity, "", func(ctx context.Context) (results.OperationResult[*T, error], error) {
		return telemetry.RunInTx(s.scope, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*T, error], error) {
			if s.opts.Validate != nil {
				if err := s.opts.Validate(ctx, db, entity, ""); err != nil {
					return s.classify(err)
				}
			}
			if err := s.repo.Create(ctx, db, entity); err != nil {
				return results.OperationResult[*T, error]{}, fmt.Errorf("failed to create %s: %w", s.entity, err)
			}
			if s.opts.AfterCreate != nil {
				if err := s.opts.AfterCreate(ctx, db, entity); err != nil {
					return results.OperationResult[*T, error]{}, err
				}
			}
			return results.SuccessResult[*T, error](entity), nil
		})
	}))
}

// Update validates and replaces the entity with the given id.
func (s *Service[T, PT]) Update(ctx context.Context, id string, entity *T) (*T, error) {
	return telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "Update"+s.entity, id, func(ctx context.Context) (results.OperationResult[*T, error], error) {
		return telemetry.RunInTx(s.scope, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*T, error], error) {
			existing, err := s.getLogic(ctx, db, id)
			if err != nil || existing.IsFailure() {
				return existing, err
			}
			PT(entity).AssignPrimaryKey(id)
			if s.opts.Validate != nil {
				if err := s.opts.Validate(ctx, db, entity, id); err != nil {
					return s.classify(err)
				}
			}
			if err := s.repo.Update(ctx, db, entity); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return results.FailureResult[*T, error](fmt.Errorf("%s %q: %w", s.entity, id, apperr.ErrNotFound)), nil
				}
				return results.OperationResult[*T, error]{}, fmt.Errorf("failed to update %s: %w", s.entity, err)
			}
			if s.opts.AfterUpdate != nil {
				if err := s.opts.AfterUpdate(ctx, db, entity); err != nil {
					return results.OperationResult[*T, error]{}, err
				}
			}
			return results.SuccessResult[*T, error](entity), nil
		})
	}))
}

// Delete removes the entity with the given id.
func (s *Service[T, PT]) Delete(ctx context.Context, id string) error {
	_, err := telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "Delete"+s.entity, id, func(ctx context.Context) (results.OperationResult[bool, error], error) {
		if err := s.repo.Delete(ctx, nil, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return results.FailureResult[bool, error](fmt.Errorf("%s %q: %w", s.entity, id, apperr.ErrNotFound)), nil
			}
			return results.OperationResult[bool, error]{}, fmt.Errorf("failed to delete %s: %w", s.entity, err)
		}
		return results.SuccessResult[bool, error](true), nil
	}))
	return err
}

// classify turns validator errors of a known class into domain failures and
// anything else into an infrastructure error.
func (s *Service[T, PT]) classify(err error) (results.OperationResult[*T, error], error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput),
		errors.Is(err, apperr.ErrConflict),
		errors.Is(err, apperr.ErrNotFound):
		return results.FailureResult[*T, error](err), nil
	default:
		return results.OperationResult[*T, error]{}, err
	}
}
