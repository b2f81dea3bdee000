package matchservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Black-And-White-Club/league-admin/app/events"
	authdomain "github.com/Black-And-White-Club/league-admin/app/modules/auth/domain"
	leaguedb "github.com/Black-And-White-Club/league-admin/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/modules/match/application/importer"
	matchdb "github.com/Black-And-White-Club/league-admin/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
	"github.com/Black-And-White-Club/league-admin/app/shared/observability/attr"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/Black-And-White-Club/league-admin/app/shared/results"
	"github.com/Black-And-White-Club/league-admin/app/shared/telemetry"
	"github.com/uptrace/bun"
)

// ImportRequest is an uploaded match sheet destined for one league.
type ImportRequest struct {
	LeagueID string
	FileName string
	Data     []byte
}

func (r ImportRequest) validate() error {
	if strings.TrimSpace(r.LeagueID) == "" {
		return apperr.Invalid("league is required")
	}
	if strings.TrimSpace(r.FileName) == "" {
		return apperr.Invalid("file name is required")
	}
	return nil
}

// ImportMatches runs the import pipeline synchronously. On a pipeline failure
// the returned error is an *importer.StageError and the run records it.
func (s *MatchService) ImportMatches(ctx context.Context, req ImportRequest) (*matchdb.ImportRun, error) {
	return telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "ImportMatches", req.LeagueID, func(ctx context.Context) (results.OperationResult[*matchdb.ImportRun, error], error) {
		if err := req.validate(); err != nil {
			return results.FailureResult[*matchdb.ImportRun, error](err), nil
		}
		league, failure, err := s.lookupLeague(ctx, req.LeagueID)
		if err != nil || failure != nil {
			return results.OperationResult[*matchdb.ImportRun, error]{Failure: failure}, err
		}

		run := &matchdb.ImportRun{
			LeagueID:    league.ID,
			FileName:    req.FileName,
			Status:      matchdb.ImportRunning,
			RequestedBy: authdomain.ActorFromContext(ctx),
		}
		if err := s.repo.ImportRuns().Create(ctx, nil, run); err != nil {
			return results.OperationResult[*matchdb.ImportRun, error]{}, fmt.Errorf("failed to record import: %w", err)
		}

		if err := s.runImport(ctx, run, league, req.Data); err != nil {
			if _, ok := importer.FailedStage(err); ok {
				return results.FailureResult[*matchdb.ImportRun, error](err), nil
			}
			return results.OperationResult[*matchdb.ImportRun, error]{}, err
		}
		return results.SuccessResult[*matchdb.ImportRun, error](run), nil
	}))
}

// EnqueueImport stores the upload and schedules it on the import queue.
func (s *MatchService) EnqueueImport(ctx context.Context, req ImportRequest) (*matchdb.ImportRun, error) {
	return telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "EnqueueImport", req.LeagueID, func(ctx context.Context) (results.OperationResult[*matchdb.ImportRun, error], error) {
		if s.queue == nil {
			return results.FailureResult[*matchdb.ImportRun, error](ErrQueueUnavailable), nil
		}
		if err := req.validate(); err != nil {
			return results.FailureResult[*matchdb.ImportRun, error](err), nil
		}
		league, failure, err := s.lookupLeague(ctx, req.LeagueID)
		if err != nil || failure != nil {
			return results.OperationResult[*matchdb.ImportRun, error]{Failure: failure}, err
		}

		run := &matchdb.ImportRun{
			LeagueID:    league.ID,
			FileName:    req.FileName,
			FileData:    req.Data,
			Status:      matchdb.ImportPending,
			RequestedBy: authdomain.ActorFromContext(ctx),
			Async:       true,
		}
		if err := s.repo.ImportRuns().Create(ctx, nil, run); err != nil {
			return results.OperationResult[*matchdb.ImportRun, error]{}, fmt.Errorf("failed to record import: %w", err)
		}

		if err := s.queue.EnqueueImport(ctx, run.ID); err != nil {
			update := matchdb.ImportStatusUpdate{
				Status:       matchdb.ImportFailed,
				ErrorMessage: "could not schedule import",
			}
			if uerr := s.repo.UpdateImportStatus(ctx, nil, run.ID, update); uerr != nil {
				s.logger.ErrorContext(ctx, "Failed to mark unscheduled import", attr.String("import_id", run.ID), attr.Error(uerr))
			}
			return results.OperationResult[*matchdb.ImportRun, error]{}, fmt.Errorf("failed to enqueue import: %w", err)
		}

		run.FileData = nil
		return results.SuccessResult[*matchdb.ImportRun, error](run), nil
	}))
}

// ProcessImport runs a queued import. Pipeline failures are recorded on the
// run and are not returned; only infrastructure errors are.
func (s *MatchService) ProcessImport(ctx context.Context, importID string) error {
	_, err := telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "ProcessImport", importID, func(ctx context.Context) (results.OperationResult[bool, error], error) {
		run, err := s.repo.ImportRuns().Get(ctx, nil, importID)
		if err != nil {
			return results.OperationResult[bool, error]{}, fmt.Errorf("failed to load import %q: %w", importID, err)
		}
		if run.Status != matchdb.ImportPending {
			s.logger.WarnContext(ctx, "Import already processed",
				attr.String("import_id", importID),
				attr.String("status", string(run.Status)),
			)
			return results.SuccessResult[bool, error](false), nil
		}

		if err := s.repo.UpdateImportStatus(ctx, nil, run.ID, matchdb.ImportStatusUpdate{
			Status: matchdb.ImportRunning,
			Stage:  string(importer.StageParsing),
		}); err != nil {
			return results.OperationResult[bool, error]{}, err
		}
		run.Status = matchdb.ImportRunning

		league, failure, err := s.lookupLeague(ctx, run.LeagueID)
		if err != nil {
			return results.OperationResult[bool, error]{}, err
		}
		if failure != nil {
			s.finishRun(ctx, run, matchdb.ImportStatusUpdate{
				Status:       matchdb.ImportFailed,
				ErrorMessage: (*failure).Error(),
			})
			return results.SuccessResult[bool, error](false), nil
		}

		if err := s.runImport(authdomain.WithSession(ctx, &authdomain.Session{UserID: run.RequestedBy}), run, league, run.FileData); err != nil {
			if _, ok := importer.FailedStage(err); ok {
				return results.SuccessResult[bool, error](false), nil
			}
			return results.OperationResult[bool, error]{}, err
		}
		return results.SuccessResult[bool, error](true), nil
	}))
	return err
}

// GetImportRun returns the status of an import.
func (s *MatchService) GetImportRun(ctx context.Context, importID string) (*matchdb.ImportRun, error) {
	return telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "GetImportRun", importID, func(ctx context.Context) (results.OperationResult[*matchdb.ImportRun, error], error) {
		run, err := s.repo.ImportRuns().Get(ctx, nil, importID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return results.FailureResult[*matchdb.ImportRun, error](fmt.Errorf("import %q: %w", importID, apperr.ErrNotFound)), nil
			}
			return results.OperationResult[*matchdb.ImportRun, error]{}, err
		}
		run.FileData = nil
		return results.SuccessResult[*matchdb.ImportRun, error](run), nil
	}))
}

// ExportTemplate builds the import workbook listing every known team.
func (s *MatchService) ExportTemplate(ctx context.Context) ([]byte, error) {
	return telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "ExportTemplate", "", func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
		teams, err := s.refs.ListTeams(ctx)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, fmt.Errorf("failed to list teams: %w", err)
		}
		data, err := importer.ExportTemplate(teamRefs(teams))
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		return results.SuccessResult[[]byte, error](data), nil
	}))
}

// lookupLeague distinguishes a missing league (domain failure) from a lookup error.
func (s *MatchService) lookupLeague(ctx context.Context, leagueID string) (*leaguedb.League, *error, error) {
	league, err := s.refs.GetLeague(ctx, leagueID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			failure := fmt.Errorf("league %q: %w", leagueID, apperr.ErrNotFound)
			return nil, &failure, nil
		}
		return nil, nil, fmt.Errorf("failed to load league: %w", err)
	}
	return league, nil, nil
}

// runImport executes the pipeline for run and records the outcome on it.
func (s *MatchService) runImport(ctx context.Context, run *matchdb.ImportRun, league *leaguedb.League, data []byte) error {
	teams, err := s.refs.ListTeams(ctx)
	if err != nil {
		s.finishRun(ctx, run, matchdb.ImportStatusUpdate{Status: matchdb.ImportFailed, ErrorMessage: "could not load teams"})
		return fmt.Errorf("failed to list teams: %w", err)
	}
	venues, err := s.refs.ListVenues(ctx)
	if err != nil {
		s.finishRun(ctx, run, matchdb.ImportStatusUpdate{Status: matchdb.ImportFailed, ErrorMessage: "could not load venues"})
		return fmt.Errorf("failed to list venues: %w", err)
	}

	writer := &matchWriter{repo: s.repo, db: s.scope.DB, importID: run.ID}
	pipeline := importer.NewPipeline(s.parsers, writer,
		importer.WithMapper(s.mapper),
		importer.WithObserver(s.observeImport(run.ID)),
	)

	res, runErr := pipeline.Run(ctx, importer.Request{
		FileName:    run.FileName,
		Data:        data,
		LeagueID:    league.ID,
		Competition: league.Competition,
		Teams:       teamRefs(teams),
		Venues:      venueRefs(venues),
	})

	created := 0
	if res != nil {
		created = res.Created
	}
	s.metrics.record(runErr, created)

	update := matchdb.ImportStatusUpdate{
		Status:  matchdb.ImportCompleted,
		Stage:   string(importer.StageDone),
		Created: created,
	}
	if runErr != nil {
		stage, _ := importer.FailedStage(runErr)
		update = matchdb.ImportStatusUpdate{
			Status:       matchdb.ImportFailed,
			Stage:        string(stage),
			ErrorCode:    importer.ErrorCode(runErr),
			ErrorMessage: runErr.Error(),
		}
	}
	s.finishRun(ctx, run, update)

	if runErr != nil {
		return runErr
	}

	s.publish(ctx, events.MatchImported, events.MatchImportedPayload{
		ImportID:    run.ID,
		LeagueID:    run.LeagueID,
		FileName:    run.FileName,
		Created:     created,
		RequestedBy: run.RequestedBy,
		OccurredAt:  time.Now().UTC(),
	}, run.RequestedBy)
	return nil
}

func (s *MatchService) finishRun(ctx context.Context, run *matchdb.ImportRun, update matchdb.ImportStatusUpdate) {
	if err := s.repo.UpdateImportStatus(ctx, nil, run.ID, update); err != nil {
		s.logger.ErrorContext(ctx, "Failed to record import outcome",
			attr.ExtractCorrelationID(ctx),
			attr.String("import_id", run.ID),
			attr.Error(err),
		)
	}
	now := time.Now()
	run.Status = update.Status
	run.Stage = update.Stage
	run.ErrorCode = update.ErrorCode
	run.ErrorMessage = update.ErrorMessage
	run.Created = update.Created
	run.FinishedAt = &now
	run.FileData = nil
}

func (s *MatchService) observeImport(importID string) importer.Observer {
	return func(ctx context.Context, state importer.State) {
		if state.Failed() {
			s.logger.WarnContext(ctx, "Import failed",
				attr.ExtractCorrelationID(ctx),
				attr.String("import_id", importID),
				attr.String("stage", string(state.Stage)),
				attr.String("code", importer.ErrorCode(state.Err)),
				attr.Error(state.Err),
			)
			return
		}
		s.logger.InfoContext(ctx, "Import stage",
			attr.ExtractCorrelationID(ctx),
			attr.String("import_id", importID),
			attr.String("stage", string(state.Stage)),
		)
	}
}

// matchWriter persists a mapped batch in a single transaction.
type matchWriter struct {
	repo     matchdb.Repository
	db       *bun.DB
	importID string
}

func (w *matchWriter) CreateMatches(ctx context.Context, _ string, matches []importer.Match) (int, error) {
	rows := make([]*matchdb.Match, len(matches))
	for i, m := range matches {
		rows[i] = &matchdb.Match{
			HomeTeamID:  m.HomeTeamID,
			AwayTeamID:  m.AwayTeamID,
			Date:        m.Date,
			Venue:       m.Venue,
			MatchNo:     m.MatchNo,
			Referee:     m.Referee,
			Status:      matchdb.Status(m.Status),
			HomeScore:   m.HomeScore,
			AwayScore:   m.AwayScore,
			Report:      m.Report,
			Competition: m.Competition,
			LeagueID:    m.LeagueID,
			ImportID:    w.importID,
		}
	}

	if w.db == nil {
		return w.repo.Matches().CreateMany(ctx, nil, rows)
	}

	var created int
	err := w.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		created, err = w.repo.Matches().CreateMany(ctx, tx, rows)
		return err
	})
	return created, err
}

func teamRefs(teams []*leaguedb.Team) []importer.TeamRef {
	refs := make([]importer.TeamRef, len(teams))
	for i, t := range teams {
		refs[i] = importer.TeamRef{ID: t.ID, Name: t.Name}
	}
	return refs
}

func venueRefs(venues []*leaguedb.Venue) []importer.VenueRef {
	refs := make([]importer.VenueRef, len(venues))
	for i, v := range venues {
		refs[i] = importer.VenueRef{ID: v.ID, Name: v.Name}
	}
	return refs
}
