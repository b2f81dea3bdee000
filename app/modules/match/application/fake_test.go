package matchservice

import (
	"context"
	"errors"
	"sync"

	leaguedb "github.com/Black-And-White-Club/league-admin/app/modules/league/infrastructure/repositories"
	matchdb "github.com/Black-And-White-Club/league-admin/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository/repositorytest"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Match Repo
// ------------------------

type FakeMatchRepo struct {
	matches *repositorytest.Memory[matchdb.Match, *matchdb.Match]
	runs    *repositorytest.Memory[matchdb.ImportRun, *matchdb.ImportRun]

	UpdateImportStatusFunc func(ctx context.Context, db bun.IDB, importID string, update matchdb.ImportStatusUpdate) error

	mu    sync.Mutex
	trace []string
}

func NewFakeMatchRepo() *FakeMatchRepo {
	return &FakeMatchRepo{
		matches: repositorytest.NewMemory[matchdb.Match](),
		runs:    repositorytest.NewMemory[matchdb.ImportRun](),
	}
}

func (f *FakeMatchRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeMatchRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeMatchRepo) Matches() repository.Repository[matchdb.Match]         { return f.matches }
func (f *FakeMatchRepo) ImportRuns() repository.Repository[matchdb.ImportRun] { return f.runs }

func (f *FakeMatchRepo) ListPlayed(ctx context.Context, db bun.IDB, leagueID string) ([]*matchdb.Match, error) {
	f.record("ListPlayed")
	return f.matches.List(ctx, db, repository.ListOptions{Filters: []repository.Filter{
		{Column: "league_id", Value: leagueID},
		{Column: "status", Value: matchdb.StatusPlayed},
	}})
}

func (f *FakeMatchRepo) UpdateResult(ctx context.Context, db bun.IDB, match *matchdb.Match) error {
	f.record("UpdateResult")
	return f.matches.Update(ctx, db, match)
}

func (f *FakeMatchRepo) UpdateImportStatus(ctx context.Context, db bun.IDB, importID string, update matchdb.ImportStatusUpdate) error {
	f.record("UpdateImportStatus:" + string(update.Status))
	if f.UpdateImportStatusFunc != nil {
		return f.UpdateImportStatusFunc(ctx, db, importID, update)
	}
	run, err := f.runs.Get(ctx, db, importID)
	if err != nil {
		return err
	}
	run.Status = update.Status
	run.Stage = update.Stage
	run.ErrorCode = update.ErrorCode
	run.ErrorMessage = update.ErrorMessage
	run.Created = update.Created
	if update.Status == matchdb.ImportCompleted || update.Status == matchdb.ImportFailed {
		run.FileData = nil
	}
	return f.runs.Update(ctx, db, run)
}

var _ matchdb.Repository = (*FakeMatchRepo)(nil)

// ------------------------
// Fake Reference Lookup
// ------------------------

type FakeReferences struct {
	Leagues []*leaguedb.League
	Teams   []*leaguedb.Team
	Venues  []*leaguedb.Venue

	ListTeamsFunc func(ctx context.Context) ([]*leaguedb.Team, error)
}

func (f *FakeReferences) GetLeague(_ context.Context, leagueID string) (*leaguedb.League, error) {
	for _, l := range f.Leagues {
		if l.ID == leagueID {
			return l, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *FakeReferences) ListTeams(ctx context.Context) ([]*leaguedb.Team, error) {
	if f.ListTeamsFunc != nil {
		return f.ListTeamsFunc(ctx)
	}
	return f.Teams, nil
}

func (f *FakeReferences) ListVenues(context.Context) ([]*leaguedb.Venue, error) {
	return f.Venues, nil
}

func newFakeReferences() *FakeReferences {
	return &FakeReferences{
		Leagues: []*leaguedb.League{{ID: "l1", Name: "Premier", Competition: "Premier League"}},
		Teams: []*leaguedb.Team{
			{ID: "t1", Name: "Lions"},
			{ID: "t2", Name: "Tigers"},
			{ID: "t3", Name: "Bears"},
		},
		Venues: []*leaguedb.Venue{{ID: "v1", Name: "Main Stadium"}},
	}
}

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu       sync.Mutex
	Messages map[string][]*message.Message
	Err      error
}

func (f *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	if f.Messages == nil {
		f.Messages = map[string][]*message.Message{}
	}
	f.Messages[topic] = append(f.Messages[topic], messages...)
	return nil
}

func (f *FakePublisher) Close() error { return nil }

func (f *FakePublisher) Count(topic string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Messages[topic])
}

// ------------------------
// Fake Queue
// ------------------------

type FakeQueue struct {
	EnqueueFunc func(ctx context.Context, importID string) error
	Enqueued    []string
}

func (f *FakeQueue) EnqueueImport(ctx context.Context, importID string) error {
	f.Enqueued = append(f.Enqueued, importID)
	if f.EnqueueFunc != nil {
		return f.EnqueueFunc(ctx, importID)
	}
	return nil
}

var errBackend = errors.New("backend unavailable")
