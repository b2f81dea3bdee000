package leaguedb

import (
	"context"

	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/uptrace/bun"
)

// Repository groups the per-entity stores of the league module.
type Repository interface {
	Leagues() repository.Repository[League]
	Teams() repository.Repository[Team]
	Players() repository.Repository[Player]
	Venues() repository.Repository[Venue]
	Referees() repository.Repository[Referee]

	// TeamNameTaken reports whether another team already uses name, ignoring case.
	TeamNameTaken(ctx context.Context, db bun.IDB, name, excludeID string) (bool, error)

	// VenueNameTaken reports whether another venue already uses name, ignoring case.
	VenueNameTaken(ctx context.Context, db bun.IDB, name, excludeID string) (bool, error)
}
