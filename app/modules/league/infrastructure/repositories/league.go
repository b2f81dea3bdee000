package leaguedb

import (
	"context"
	"fmt"
	"strings"

	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a league entity is not found.
var ErrNotFound = repository.ErrNotFound

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db       bun.IDB
	leagues  *repository.Impl[League, *League]
	teams    *repository.Impl[Team, *Team]
	players  *repository.Impl[Player, *Player]
	venues   *repository.Impl[Venue, *Venue]
	referees *repository.Impl[Referee, *Referee]
}

// NewRepository creates a new league repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{
		db:       db,
		leagues:  repository.New[League](db),
		teams:    repository.New[Team](db),
		players:  repository.New[Player](db),
		venues:   repository.New[Venue](db),
		referees: repository.New[Referee](db),
	}
}

func (r *Impl) Leagues() repository.Repository[League]   { return r.leagues }
func (r *Impl) Teams() repository.Repository[Team]       { return r.teams }
func (r *Impl) Players() repository.Repository[Player]   { return r.players }
func (r *Impl) Venues() repository.Repository[Venue]     { return r.venues }
func (r *Impl) Referees() repository.Repository[Referee] { return r.referees }

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) TeamNameTaken(ctx context.Context, db bun.IDB, name, excludeID string) (bool, error) {
	return r.nameTaken(ctx, db, (*Team)(nil), name, excludeID)
}

func (r *Impl) VenueNameTaken(ctx context.Context, db bun.IDB, name, excludeID string) (bool, error) {
	return r.nameTaken(ctx, db, (*Venue)(nil), name, excludeID)
}

func (r *Impl) nameTaken(ctx context.Context, db bun.IDB, model any, name, excludeID string) (bool, error) {
	db = r.resolveDB(db)
	q := db.NewSelect().
		Model(model).
		Where("lower(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	exists, err := q.Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check name uniqueness: %w", err)
	}
	return exists, nil
}
