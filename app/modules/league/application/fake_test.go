package leagueservice

import (
	"context"
	"strings"

	leaguedb "github.com/Black-And-White-Club/league-admin/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository/repositorytest"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake League Repo
// ------------------------

type FakeLeagueRepo struct {
	leagues  *repositorytest.Memory[leaguedb.League, *leaguedb.League]
	teams    *repositorytest.Memory[leaguedb.Team, *leaguedb.Team]
	players  *repositorytest.Memory[leaguedb.Player, *leaguedb.Player]
	venues   *repositorytest.Memory[leaguedb.Venue, *leaguedb.Venue]
	referees *repositorytest.Memory[leaguedb.Referee, *leaguedb.Referee]
}

func NewFakeLeagueRepo() *FakeLeagueRepo {
	return &FakeLeagueRepo{
		leagues:  repositorytest.NewMemory[leaguedb.League](),
		teams:    repositorytest.NewMemory[leaguedb.Team](),
		players:  repositorytest.NewMemory[leaguedb.Player](),
		venues:   repositorytest.NewMemory[leaguedb.Venue](),
		referees: repositorytest.NewMemory[leaguedb.Referee](),
	}
}

func (f *FakeLeagueRepo) Leagues() repository.Repository[leaguedb.League]   { return f.leagues }
func (f *FakeLeagueRepo) Teams() repository.Repository[leaguedb.Team]       { return f.teams }
func (f *FakeLeagueRepo) Players() repository.Repository[leaguedb.Player]   { return f.players }
func (f *FakeLeagueRepo) Venues() repository.Repository[leaguedb.Venue]     { return f.venues }
func (f *FakeLeagueRepo) Referees() repository.Repository[leaguedb.Referee] { return f.referees }

func (f *FakeLeagueRepo) TeamNameTaken(ctx context.Context, db bun.IDB, name, excludeID string) (bool, error) {
	teams, err := f.teams.List(ctx, db, repository.ListOptions{})
	if err != nil {
		return false, err
	}
	for _, t := range teams {
		if t.ID != excludeID && strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return true, nil
		}
	}
	return false, nil
}

func (f *FakeLeagueRepo) VenueNameTaken(ctx context.Context, db bun.IDB, name, excludeID string) (bool, error) {
	venues, err := f.venues.List(ctx, db, repository.ListOptions{})
	if err != nil {
		return false, err
	}
	for _, v := range venues {
		if v.ID != excludeID && strings.EqualFold(v.Name, strings.TrimSpace(name)) {
			return true, nil
		}
	}
	return false, nil
}

// Ensure the fake actually satisfies the interface
var _ leaguedb.Repository = (*FakeLeagueRepo)(nil)
