package matchintegrationtests

import (
	"context"
	"testing"

	authdomain "github.com/Black-And-White-Club/league-admin/app/modules/auth/domain"
	leagueservice "github.com/Black-And-White-Club/league-admin/app/modules/league/application"
	leaguedb "github.com/Black-And-White-Club/league-admin/app/modules/league/infrastructure/repositories"
	matchservice "github.com/Black-And-White-Club/league-admin/app/modules/match/application"
	matchdb "github.com/Black-And-White-Club/league-admin/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/integration_tests/testutils"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// TestDeps holds dependencies needed by individual tests.
type TestDeps struct {
	Ctx     context.Context
	BunDB   *bun.DB
	Leagues *leagueservice.LeagueService
	Service *matchservice.MatchService
	Data    *testutils.TestDataGenerator
}

// SetupTestMatchService resets the database and builds a MatchService over
// the shared environment, publishing to the real event bus.
func SetupTestMatchService(t *testing.T) TestDeps {
	t.Helper()
	require.NoError(t, testEnv.Reset(testEnv.Ctx))

	obs := testEnv.Obs
	leagues := leagueservice.NewLeagueService(leaguedb.NewRepository(testEnv.DB), obs.Provider.Logger, obs.Registry.Operations, obs.Registry.Tracer, testEnv.DB)
	service := matchservice.NewMatchService(matchdb.NewRepository(testEnv.DB), leagues, testEnv.EventBus,
		obs.Provider.Logger, obs.Registry.Operations, obs.Registry.Tracer, testEnv.DB)

	ctx := authdomain.WithSession(testEnv.Ctx, &authdomain.Session{UserID: "editor-1", Role: authdomain.RoleEditor})
	return TestDeps{
		Ctx:     ctx,
		BunDB:   testEnv.DB,
		Leagues: leagues,
		Service: service,
		Data:    testutils.NewTestDataGenerator(),
	}
}

// leagueMatches returns the stored matches of a league ordered by match number.
func leagueMatches(t *testing.T, deps TestDeps, leagueID string) []matchdb.Match {
	t.Helper()
	var matches []matchdb.Match
	err := deps.BunDB.NewSelect().Model(&matches).
		Where("league_id = ?", leagueID).
		Order("match_no ASC").
		Scan(deps.Ctx)
	require.NoError(t, err)
	return matches
}

// latestRun returns the most recent import run of a league.
func latestRun(t *testing.T, deps TestDeps, leagueID string) *matchdb.ImportRun {
	t.Helper()
	run := new(matchdb.ImportRun)
	err := deps.BunDB.NewSelect().Model(run).
		Where("league_id = ?", leagueID).
		Order("created_at DESC").
		Limit(1).
		Scan(deps.Ctx)
	require.NoError(t, err)
	return run
}

var sheetHeader = []string{"homeTeam", "awayTeam", "date", "venue", "matchNo", "status"}
