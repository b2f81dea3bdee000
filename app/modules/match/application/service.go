package matchservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Black-And-White-Club/league-admin/app/events"
	authdomain "github.com/Black-And-White-Club/league-admin/app/modules/auth/domain"
	"github.com/Black-And-White-Club/league-admin/app/modules/match/application/importer"
	"github.com/Black-And-White-Club/league-admin/app/modules/match/application/parsers"
	matchdb "github.com/Black-And-White-Club/league-admin/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
	"github.com/Black-And-White-Club/league-admin/app/shared/crud"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability/attr"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/Black-And-White-Club/league-admin/app/shared/results"
	"github.com/Black-And-White-Club/league-admin/app/shared/telemetry"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// MatchService implements Service.
type MatchService struct {
	repo      matchdb.Repository
	refs      ReferenceLookup
	publisher message.Publisher
	logger    *slog.Logger
	scope     telemetry.Scope
	parsers   parsers.ParserFactory
	mapper    *importer.Mapper
	metrics   *ImportMetrics
	queue     ImportQueue
	matches   *crud.Service[matchdb.Match, *matchdb.Match]
}

// Option configures a MatchService.
type Option func(*MatchService)

// WithClock sets the reference time for relative dates in imports.
func WithClock(clock importer.Clock) Option {
	return func(s *MatchService) { s.mapper = importer.NewMapper(clock, nil) }
}

// WithImportMetrics records import outcomes.
func WithImportMetrics(m *ImportMetrics) Option {
	return func(s *MatchService) { s.metrics = m }
}

// NewMatchService creates a new MatchService. publisher may be nil, in which
// case no events are emitted.
func NewMatchService(
	repo matchdb.Repository,
	refs ReferenceLookup,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics observability.ServiceMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	opts ...Option,
) *MatchService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &MatchService{
		repo:      repo,
		refs:      refs,
		publisher: publisher,
		logger:    logger,
		scope: telemetry.Scope{
			Service: "MatchService",
			Logger:  logger,
			Tracer:  tracer,
			Metrics: metrics,
			DB:      db,
		},
		parsers: parsers.NewFactory(),
		mapper:  importer.NewMapper(nil, nil),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.matches = crud.NewService[matchdb.Match](s.scope, repo.Matches(), "Match", crud.Options[matchdb.Match]{
		Validate: s.validateMatch,
		AfterUpdate: func(ctx context.Context, _ bun.IDB, m *matchdb.Match) error {
			s.publishMatchUpdated(ctx, m)
			return nil
		},
	})
	return s
}

// SetQueue wires the background import queue.
func (s *MatchService) SetQueue(q ImportQueue) {
	s.queue = q
}

func (s *MatchService) Matches() crud.EntityService[matchdb.Match] {
	return s.matches
}

// ResultUpdate is a single-match score, status and report change.
type ResultUpdate struct {
	Status    matchdb.Status `json:"status"`
	HomeScore int            `json:"homeScore"`
	AwayScore int            `json:"awayScore"`
	Report    *string        `json:"report"`
}

// UpdateResult changes the score, status and report of one match.
func (s *MatchService) UpdateResult(ctx context.Context, matchID string, update ResultUpdate) (*matchdb.Match, error) {
	match, err := telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "UpdateResult", matchID, func(ctx context.Context) (results.OperationResult[*matchdb.Match, error], error) {
		return telemetry.RunInTx(s.scope, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*matchdb.Match, error], error) {
			if err := validateResult(update); err != nil {
				return results.FailureResult[*matchdb.Match, error](err), nil
			}

			match, err := s.repo.Matches().Get(ctx, db, matchID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return results.FailureResult[*matchdb.Match, error](fmt.Errorf("match %q: %w", matchID, apperr.ErrNotFound)), nil
				}
				return results.OperationResult[*matchdb.Match, error]{}, fmt.Errorf("failed to load match: %w", err)
			}

			match.Status = update.Status
			match.HomeScore = update.HomeScore
			match.AwayScore = update.AwayScore
			match.Report = update.Report
			if err := s.repo.UpdateResult(ctx, db, match); err != nil {
				return results.OperationResult[*matchdb.Match, error]{}, err
			}
			return results.SuccessResult[*matchdb.Match, error](match), nil
		})
	}))
	if err != nil {
		return nil, err
	}

	s.publishMatchUpdated(ctx, match)
	return match, nil
}

func validateResult(u ResultUpdate) error {
	if !u.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, u.Status)
	}
	if u.HomeScore < 0 || u.AwayScore < 0 {
		return ErrNegativeScore
	}
	return nil
}

func (s *MatchService) validateMatch(ctx context.Context, _ bun.IDB, m *matchdb.Match, _ string) error {
	m.HomeTeamID = strings.TrimSpace(m.HomeTeamID)
	m.AwayTeamID = strings.TrimSpace(m.AwayTeamID)
	m.Venue = strings.TrimSpace(m.Venue)
	m.LeagueID = strings.TrimSpace(m.LeagueID)

	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return apperr.Invalid("home and away team are required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return ErrSameTeams
	}
	if m.LeagueID == "" {
		return apperr.Invalid("league is required")
	}
	if m.Venue == "" {
		return apperr.Invalid("venue is required")
	}
	if m.Date.IsZero() {
		return apperr.Invalid("date is required")
	}
	if m.MatchNo < 0 {
		return apperr.Invalid("match number must not be negative")
	}
	if m.Status == "" {
		m.Status = matchdb.StatusNotPlayed
	}
	if err := validateResult(ResultUpdate{Status: m.Status, HomeScore: m.HomeScore, AwayScore: m.AwayScore}); err != nil {
		return err
	}

	league, err := s.refs.GetLeague(ctx, m.LeagueID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Invalid("league %q does not exist", m.LeagueID)
		}
		return err
	}
	if m.Competition == "" {
		m.Competition = league.Competition
	}
	return nil
}

func (s *MatchService) publishMatchUpdated(ctx context.Context, m *matchdb.Match) {
	s.publish(ctx, events.MatchUpdated, events.MatchUpdatedPayload{
		MatchID:    m.ID,
		LeagueID:   m.LeagueID,
		Status:     string(m.Status),
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
		UpdatedBy:  authdomain.ActorFromContext(ctx),
		OccurredAt: time.Now().UTC(),
	}, authdomain.ActorFromContext(ctx))
}

// publish emits an event. A bus failure is logged and does not fail the
// operation that produced it.
func (s *MatchService) publish(ctx context.Context, topic string, payload any, actor string) {
	if s.publisher == nil {
		return
	}
	msg, err := events.NewMessage(ctx, topic, actor, payload)
	if err == nil {
		err = s.publisher.Publish(topic, msg)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}
