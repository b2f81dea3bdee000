package matchservice

import (
	"context"
	"errors"
	"testing"

	"github.com/Black-And-White-Club/league-admin/app/events"
	authdomain "github.com/Black-And-White-Club/league-admin/app/modules/auth/domain"
	leaguedb "github.com/Black-And-White-Club/league-admin/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/modules/match/application/importer"
	matchdb "github.com/Black-And-White-Club/league-admin/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheetHeader = "homeTeam,awayTeam,date,venue,matchNo\n"

func importRuns(t *testing.T, repo *FakeMatchRepo) []*matchdb.ImportRun {
	t.Helper()
	runs, err := repo.runs.List(context.Background(), nil, repository.ListOptions{})
	require.NoError(t, err)
	return runs
}

func TestMatchService_ImportMatches(t *testing.T) {
	ctx := authdomain.WithSession(context.Background(), &authdomain.Session{UserID: "u1", Role: authdomain.RoleEditor})

	tests := []struct {
		name        string
		req         ImportRequest
		wantCreated int
		wantCode    string
		wantStage   importer.Stage
		wantErrIs   error
		wantRuns    int
	}{
		{
			name: "imports every row",
			req: ImportRequest{LeagueID: "l1", FileName: "matches.csv", Data: []byte(sheetHeader +
				"Lions,Tigers,2024-05-04,Main Stadium,1\n" +
				"Bears,Lions,2024-05-11,main stadium,2\n")},
			wantCreated: 2,
			wantRuns:    1,
		},
		{
			name:      "unknown team writes nothing",
			req:       ImportRequest{LeagueID: "l1", FileName: "matches.csv", Data: []byte(sheetHeader + "Lions FC,Tigers,2024-05-04,Main Stadium,1\n")},
			wantCode:  importer.CodeUnknownTeam,
			wantStage: importer.StageResolving,
			wantRuns:  1,
		},
		{
			name:      "unsupported file type",
			req:       ImportRequest{LeagueID: "l1", FileName: "matches.pdf", Data: []byte("%PDF")},
			wantCode:  importer.CodeParse,
			wantStage: importer.StageParsing,
			wantRuns:  1,
		},
		{
			name:      "empty file",
			req:       ImportRequest{LeagueID: "l1", FileName: "matches.csv", Data: []byte(sheetHeader)},
			wantCode:  importer.CodeEmptyFile,
			wantStage: importer.StageParsing,
			wantRuns:  1,
		},
		{
			name:      "unknown league records no run",
			req:       ImportRequest{LeagueID: "nope", FileName: "matches.csv", Data: []byte(sheetHeader)},
			wantErrIs: apperr.ErrNotFound,
		},
		{
			name:      "missing file name",
			req:       ImportRequest{LeagueID: "l1"},
			wantErrIs: apperr.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeMatchRepo()
			pub := &FakePublisher{}
			svc := newTestService(repo, newFakeReferences(), pub)

			run, err := svc.ImportMatches(ctx, tt.req)
			assert.Len(t, importRuns(t, repo), tt.wantRuns)

			switch {
			case tt.wantErrIs != nil:
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			case tt.wantCode != "":
				require.Error(t, err)
				assert.Nil(t, run)
				assert.Equal(t, tt.wantCode, importer.ErrorCode(err))
				stage, ok := importer.FailedStage(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantStage, stage)

				assert.Equal(t, 0, repo.matches.Len())
				assert.NotContains(t, repo.matches.Calls(), "CreateMany")
				assert.Equal(t, 0, pub.Count(events.MatchImported))

				stored := importRuns(t, repo)[0]
				assert.Equal(t, matchdb.ImportFailed, stored.Status)
				assert.Equal(t, tt.wantCode, stored.ErrorCode)
				assert.Equal(t, string(tt.wantStage), stored.Stage)
				assert.Equal(t, err.Error(), stored.ErrorMessage)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, matchdb.ImportCompleted, run.Status)
			assert.Equal(t, tt.wantCreated, run.Created)
			assert.Equal(t, "u1", run.RequestedBy)
			assert.Equal(t, tt.wantCreated, repo.matches.Len())
			assert.Equal(t, 1, pub.Count(events.MatchImported))

			matches, err := repo.matches.List(context.Background(), nil, repository.ListOptions{OrderBy: "match_no"})
			require.NoError(t, err)
			for _, m := range matches {
				assert.Equal(t, run.ID, m.ImportID)
				assert.Equal(t, "l1", m.LeagueID)
				assert.Equal(t, "Premier League", m.Competition)
				assert.Equal(t, matchdb.StatusNotPlayed, m.Status)
				assert.Equal(t, "Main Stadium", m.Venue)
			}
		})
	}
}

func TestMatchService_ImportWriteFailure(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeMatchRepo()
	repo.matches.Err = errBackend
	reg := prometheus.NewRegistry()
	metrics := NewImportMetrics(reg)
	svc := newTestService(repo, newFakeReferences(), &FakePublisher{}, WithImportMetrics(metrics))

	_, err := svc.ImportMatches(ctx, ImportRequest{LeagueID: "l1", FileName: "m.csv", Data: []byte(sheetHeader + "Lions,Tigers,2024-05-04,Main Stadium,1\n")})
	require.Error(t, err)
	assert.Equal(t, importer.CodeWrite, importer.ErrorCode(err))
	assert.ErrorIs(t, err, errBackend)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues(string(importer.StageWriting), "failure", importer.CodeWrite)))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.created))
}

func TestMatchService_ImportReferenceFailure(t *testing.T) {
	refs := newFakeReferences()
	refs.ListTeamsFunc = func(context.Context) ([]*leaguedb.Team, error) { return nil, errBackend }
	repo := NewFakeMatchRepo()
	svc := newTestService(repo, refs, &FakePublisher{})

	_, err := svc.ImportMatches(context.Background(), ImportRequest{LeagueID: "l1", FileName: "m.csv", Data: []byte(sheetHeader)})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBackend)
	_, staged := importer.FailedStage(err)
	assert.False(t, staged)

	runs := importRuns(t, repo)
	require.Len(t, runs, 1)
	assert.Equal(t, matchdb.ImportFailed, runs[0].Status)
}

func TestMatchService_ImportMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewImportMetrics(reg)
	svc := newTestService(NewFakeMatchRepo(), newFakeReferences(), nil, WithImportMetrics(metrics))
	ctx := context.Background()

	_, err := svc.ImportMatches(ctx, ImportRequest{LeagueID: "l1", FileName: "m.csv", Data: []byte(sheetHeader + "Lions,Tigers,2024-05-04,Main Stadium,1\nTigers,Bears,2024-05-05,Main Stadium,2\n")})
	require.NoError(t, err)
	_, err = svc.ImportMatches(ctx, ImportRequest{LeagueID: "l1", FileName: "m.csv", Data: []byte("homeTeam\nLions\n")})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues(string(importer.StageDone), "success", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues(string(importer.StageValidating), "failure", importer.CodeMissingColumns)))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.created))
}

func TestMatchService_EnqueueImport(t *testing.T) {
	ctx := context.Background()
	data := []byte(sheetHeader + "Lions,Tigers,2024-05-04,Main Stadium,1\n")

	t.Run("without queue", func(t *testing.T) {
		repo := NewFakeMatchRepo()
		svc := newTestService(repo, newFakeReferences(), nil)
		_, err := svc.EnqueueImport(ctx, ImportRequest{LeagueID: "l1", FileName: "m.csv", Data: data})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrQueueUnavailable)
		assert.Empty(t, importRuns(t, repo))
	})

	t.Run("stores pending run", func(t *testing.T) {
		repo := NewFakeMatchRepo()
		queue := &FakeQueue{}
		svc := newTestService(repo, newFakeReferences(), nil)
		svc.SetQueue(queue)

		run, err := svc.EnqueueImport(ctx, ImportRequest{LeagueID: "l1", FileName: "m.csv", Data: data})
		require.NoError(t, err)
		assert.Equal(t, matchdb.ImportPending, run.Status)
		assert.True(t, run.Async)
		assert.Nil(t, run.FileData)
		assert.Equal(t, []string{run.ID}, queue.Enqueued)

		stored, err := repo.runs.Get(ctx, nil, run.ID)
		require.NoError(t, err)
		assert.Equal(t, data, stored.FileData)
		assert.Equal(t, 0, repo.matches.Len())
	})

	t.Run("queue failure marks run failed", func(t *testing.T) {
		repo := NewFakeMatchRepo()
		queue := &FakeQueue{EnqueueFunc: func(context.Context, string) error { return errBackend }}
		svc := newTestService(repo, newFakeReferences(), nil)
		svc.SetQueue(queue)

		_, err := svc.EnqueueImport(ctx, ImportRequest{LeagueID: "l1", FileName: "m.csv", Data: data})
		require.Error(t, err)
		assert.ErrorIs(t, err, errBackend)

		runs := importRuns(t, repo)
		require.Len(t, runs, 1)
		assert.Equal(t, matchdb.ImportFailed, runs[0].Status)
		assert.Nil(t, runs[0].FileData)
	})
}

func TestMatchService_ProcessImport(t *testing.T) {
	ctx := context.Background()

	enqueue := func(t *testing.T, repo *FakeMatchRepo, svc *MatchService, data string) string {
		t.Helper()
		svc.SetQueue(&FakeQueue{})
		sctx := authdomain.WithSession(ctx, &authdomain.Session{UserID: "u7", Role: authdomain.RoleAdmin})
		run, err := svc.EnqueueImport(sctx, ImportRequest{LeagueID: "l1", FileName: "m.csv", Data: []byte(data)})
		require.NoError(t, err)
		return run.ID
	}

	t.Run("completes pending run", func(t *testing.T) {
		repo := NewFakeMatchRepo()
		pub := &FakePublisher{}
		svc := newTestService(repo, newFakeReferences(), pub)
		id := enqueue(t, repo, svc, sheetHeader+"Lions,Tigers,2024-05-04,Main Stadium,1\n")

		require.NoError(t, svc.ProcessImport(ctx, id))

		run, err := svc.GetImportRun(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, matchdb.ImportCompleted, run.Status)
		assert.Equal(t, 1, run.Created)
		assert.Nil(t, run.FileData)
		assert.Equal(t, 1, repo.matches.Len())
		assert.Equal(t, 1, pub.Count(events.MatchImported))
		assert.Equal(t, []string{
			"UpdateImportStatus:RUNNING",
			"UpdateImportStatus:COMPLETED",
		}, repo.Trace())
	})

	t.Run("records pipeline failure without returning it", func(t *testing.T) {
		repo := NewFakeMatchRepo()
		svc := newTestService(repo, newFakeReferences(), nil)
		id := enqueue(t, repo, svc, sheetHeader+"Lions,Lions,2024-05-04,Main Stadium,9\n")

		require.NoError(t, svc.ProcessImport(ctx, id))

		run, err := svc.GetImportRun(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, matchdb.ImportFailed, run.Status)
		assert.Equal(t, importer.CodeDuplicateTeams, run.ErrorCode)
		assert.Equal(t, "match 9: home and away team are the same", run.ErrorMessage)
		assert.Equal(t, 0, repo.matches.Len())
	})

	t.Run("skips finished run", func(t *testing.T) {
		repo := NewFakeMatchRepo()
		svc := newTestService(repo, newFakeReferences(), nil)
		id := enqueue(t, repo, svc, sheetHeader+"Lions,Tigers,2024-05-04,Main Stadium,1\n")

		require.NoError(t, svc.ProcessImport(ctx, id))
		require.NoError(t, svc.ProcessImport(ctx, id))
		assert.Equal(t, 1, repo.matches.Len())
	})

	t.Run("missing run", func(t *testing.T) {
		svc := newTestService(NewFakeMatchRepo(), newFakeReferences(), nil)
		err := svc.ProcessImport(ctx, "nope")
		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})
}

func TestMatchService_GetImportRun(t *testing.T) {
	svc := newTestService(NewFakeMatchRepo(), newFakeReferences(), nil)
	_, err := svc.GetImportRun(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMatchService_ExportTemplate(t *testing.T) {
	svc := newTestService(NewFakeMatchRepo(), newFakeReferences(), nil)
	data, err := svc.ExportTemplate(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, []byte("PK"), data[:2])
}
