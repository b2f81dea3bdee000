package leagueservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	leaguedb "github.com/Black-And-White-Club/league-admin/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
	"github.com/Black-And-White-Club/league-admin/app/shared/crud"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/Black-And-White-Club/league-admin/app/shared/telemetry"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// LeagueService owns leagues and the reference entities matches point at.
type LeagueService struct {
	repo     leaguedb.Repository
	logger   *slog.Logger
	Leagues  *crud.Service[leaguedb.League, *leaguedb.League]
	Teams    *crud.Service[leaguedb.Team, *leaguedb.Team]
	Players  *crud.Service[leaguedb.Player, *leaguedb.Player]
	Venues   *crud.Service[leaguedb.Venue, *leaguedb.Venue]
	Referees *crud.Service[leaguedb.Referee, *leaguedb.Referee]
}

// NewLeagueService creates a new LeagueService.
func NewLeagueService(
	repo leaguedb.Repository,
	logger *slog.Logger,
	metrics observability.ServiceMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *LeagueService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &LeagueService{repo: repo, logger: logger}
	scope := telemetry.Scope{
		Service: "LeagueService",
		Logger:  logger,
		Tracer:  tracer,
		Metrics: metrics,
		DB:      db,
	}

	s.Leagues = crud.NewService[leaguedb.League](scope, repo.Leagues(), "League", crud.Options[leaguedb.League]{
		Validate: s.validateLeague,
	})
	s.Teams = crud.NewService[leaguedb.Team](scope, repo.Teams(), "Team", crud.Options[leaguedb.Team]{
		Validate: s.validateTeam,
	})
	s.Players = crud.NewService[leaguedb.Player](scope, repo.Players(), "Player", crud.Options[leaguedb.Player]{
		Validate: s.validatePlayer,
	})
	s.Venues = crud.NewService[leaguedb.Venue](scope, repo.Venues(), "Venue", crud.Options[leaguedb.Venue]{
		Validate: s.validateVenue,
	})
	s.Referees = crud.NewService[leaguedb.Referee](scope, repo.Referees(), "Referee", crud.Options[leaguedb.Referee]{
		Validate: s.validateReferee,
	})
	return s
}

// ListTeams returns every team ordered by name.
func (s *LeagueService) ListTeams(ctx context.Context) ([]*leaguedb.Team, error) {
	return s.Teams.List(ctx, repository.ListOptions{OrderBy: "name"})
}

// ListVenues returns every venue ordered by name.
func (s *LeagueService) ListVenues(ctx context.Context) ([]*leaguedb.Venue, error) {
	return s.Venues.List(ctx, repository.ListOptions{OrderBy: "name"})
}

// GetLeague returns a single league.
func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (*leaguedb.League, error) {
	return s.Leagues.Get(ctx, leagueID)
}

func (s *LeagueService) validateLeague(_ context.Context, _ bun.IDB, l *leaguedb.League, _ string) error {
	l.Name = strings.TrimSpace(l.Name)
	l.Competition = strings.TrimSpace(l.Competition)
	if l.Name == "" {
		return apperr.Invalid("league name is required")
	}
	if l.Competition == "" {
		return apperr.Invalid("league competition is required")
	}
	if l.Year < 0 {
		return apperr.Invalid("league year must not be negative")
	}
	return nil
}

func (s *LeagueService) validateTeam(ctx context.Context, db bun.IDB, t *leaguedb.Team, excludeID string) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return apperr.Invalid("team name is required")
	}
	taken, err := s.repo.TeamNameTaken(ctx, db, t.Name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: team %q", ErrDuplicateName, t.Name)
	}
	return nil
}

func (s *LeagueService) validatePlayer(ctx context.Context, db bun.IDB, p *leaguedb.Player, _ string) error {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	if p.FirstName == "" || p.LastName == "" {
		return apperr.Invalid("player first and last name are required")
	}
	if p.TeamID == "" {
		return apperr.Invalid("player team is required")
	}
	if p.ShirtNumber < 0 || p.ShirtNumber > 99 {
		return apperr.Invalid("shirt number must be between 0 and 99")
	}
	if _, err := s.repo.Teams().Get(ctx, db, p.TeamID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.Invalid("team %q does not exist", p.TeamID)
		}
		return err
	}
	return nil
}

func (s *LeagueService) validateVenue(ctx context.Context, db bun.IDB, v *leaguedb.Venue, excludeID string) error {
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return apperr.Invalid("venue name is required")
	}
	if v.Capacity < 0 {
		return apperr.Invalid("venue capacity must not be negative")
	}
	taken, err := s.repo.VenueNameTaken(ctx, db, v.Name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: venue %q", ErrDuplicateName, v.Name)
	}
	return nil
}

func (s *LeagueService) validateReferee(_ context.Context, _ bun.IDB, r *leaguedb.Referee, _ string) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return apperr.Invalid("referee name is required")
	}
	return nil
}
