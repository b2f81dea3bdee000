// Package repository implements the narrow per-entity persistence contract
// (get, list, create, update, delete) once over bun.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("record not found")

// Model is implemented by every persisted entity.
type Model interface {
	PrimaryKey() string
	AssignPrimaryKey(id string)
}

// Timestamps is embedded by models that track creation and update times.
type Timestamps struct {
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

func (t *Timestamps) touch(now time.Time, created bool) {
	if created {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

type timestamped interface {
	touch(now time.Time, created bool)
}

// Filter is an equality predicate on a column. Columns are identifiers chosen
// by code, never by request input.
type Filter struct {
	Column string
	Value  any
}

// ListOptions narrows and orders a List call.
type ListOptions struct {
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
	Offset  int
}

// Repository is the persistence contract shared by every entity type.
type Repository[T any] interface {
	Get(ctx context.Context, db bun.IDB, id string) (*T, error)
	List(ctx context.Context, db bun.IDB, opts ListOptions) ([]*T, error)
	Create(ctx context.Context, db bun.IDB, entity *T) error
	CreateMany(ctx context.Context, db bun.IDB, entities []*T) (int, error)
	Update(ctx context.Context, db bun.IDB, entity *T) error
	Delete(ctx context.Context, db bun.IDB, id string) error
}

// Impl implements Repository using Bun ORM.
type Impl[T any, PT interface {
	*T
	Model
}] struct {
	db  bun.IDB
	now func() time.Time
}

// New creates a repository for T. db may be nil when every call passes its own handle.
func New[T any, PT interface {
	*T
	Model
}](db bun.IDB) *Impl[T, PT] {
	return &Impl[T, PT]{db: db, now: time.Now}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl[T, PT]) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Get retrieves an entity by id.
func (r *Impl[T, PT]) Get(ctx context.Context, db bun.IDB, id string) (*T, error) {
	db = r.resolveDB(db)
	entity := new(T)
	PT(entity).AssignPrimaryKey(id)
	err := db.NewSelect().
		Model(entity).
		WherePK().
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return entity, nil
}

// List retrieves entities matching opts.
func (r *Impl[T, PT]) List(ctx context.Context, db bun.IDB, opts ListOptions) ([]*T, error) {
	db = r.resolveDB(db)
	var entities []*T
	q := db.NewSelect().Model(&entities)
	for _, f := range opts.Filters {
		q = q.Where("? = ?", bun.Ident(f.Column), f.Value)
	}
	if opts.OrderBy != "" {
		if opts.Desc {
			q = q.OrderExpr("? DESC", bun.Ident(opts.OrderBy))
		} else {
			q = q.OrderExpr("? ASC", bun.Ident(opts.OrderBy))
		}
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return entities, nil
}

// Create inserts an entity, assigning an id when it has none.
func (r *Impl[T, PT]) Create(ctx context.Context, db bun.IDB, entity *T) error {
	db = r.resolveDB(db)
	r.prepareInsert(PT(entity))
	if _, err := db.NewInsert().Model(entity).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}

// CreateMany inserts all entities in one statement and returns the number written.
func (r *Impl[T, PT]) CreateMany(ctx context.Context, db bun.IDB, entities []*T) (int, error) {
	if len(entities) == 0 {
		return 0, nil
	}
	db = r.resolveDB(db)
	for _, e := range entities {
		r.prepareInsert(PT(e))
	}
	res, err := db.NewInsert().Model(&entities).Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to create records: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rows), nil
}

// Update replaces every column of an existing entity.
func (r *Impl[T, PT]) Update(ctx context.Context, db bun.IDB, entity *T) error {
	db = r.resolveDB(db)
	m := PT(entity)
	if ts, ok := any(m).(timestamped); ok {
		ts.touch(r.now(), false)
	}
	q := db.NewUpdate().Model(entity).WherePK()
	if _, ok := any(m).(timestamped); ok {
		q = q.ExcludeColumn("created_at")
	}
	result, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an entity by id.
func (r *Impl[T, PT]) Delete(ctx context.Context, db bun.IDB, id string) error {
	db = r.resolveDB(db)
	entity := new(T)
	PT(entity).AssignPrimaryKey(id)
	result, err := db.NewDelete().Model(entity).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl[T, PT]) prepareInsert(m PT) {
	if m.PrimaryKey() == "" {
		m.AssignPrimaryKey(uuid.NewString())
	}
	if ts, ok := any(m).(timestamped); ok {
		ts.touch(r.now(), true)
	}
}
