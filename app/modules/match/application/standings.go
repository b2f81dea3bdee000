package matchservice

import (
	"context"
	"fmt"
	"sort"
	"strings"

	matchdb "github.com/Black-And-White-Club/league-admin/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/results"
	"github.com/Black-And-White-Club/league-admin/app/shared/telemetry"
)

// Points awarded per result.
const (
	pointsWin  = 3
	pointsDraw = 1
)

// StandingRow is one team's line in a league table.
type StandingRow struct {
	Position       int    `json:"position"`
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
}

// ComputeStandings builds a league table from played matches. Teams are
// ordered by points, goal difference, goals scored and then name.
func ComputeStandings(matches []*matchdb.Match, teamNames map[string]string) []StandingRow {
	byTeam := map[string]*StandingRow{}
	row := func(id string) *StandingRow {
		r, ok := byTeam[id]
		if !ok {
			name := teamNames[id]
			if name == "" {
				name = id
			}
			r = &StandingRow{TeamID: id, TeamName: name}
			byTeam[id] = r
		}
		return r
	}

	for _, m := range matches {
		if m.Status != matchdb.StatusPlayed {
			continue
		}
		home, away := row(m.HomeTeamID), row(m.AwayTeamID)
		home.Played++
		away.Played++
		home.GoalsFor += m.HomeScore
		home.GoalsAgainst += m.AwayScore
		away.GoalsFor += m.AwayScore
		away.GoalsAgainst += m.HomeScore

		switch {
		case m.HomeScore > m.AwayScore:
			home.Won++
			away.Lost++
		case m.HomeScore < m.AwayScore:
			away.Won++
			home.Lost++
		default:
			home.Drawn++
			away.Drawn++
		}
	}

	table := make([]StandingRow, 0, len(byTeam))
	for _, r := range byTeam {
		r.GoalDifference = r.GoalsFor - r.GoalsAgainst
		r.Points = r.Won*pointsWin + r.Drawn*pointsDraw
		table = append(table, *r)
	}

	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return strings.ToLower(a.TeamName) < strings.ToLower(b.TeamName)
	})
	for i := range table {
		table[i].Position = i + 1
	}
	return table
}

// Standings returns the league table of a league.
func (s *MatchService) Standings(ctx context.Context, leagueID string) ([]StandingRow, error) {
	return telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "Standings", leagueID, func(ctx context.Context) (results.OperationResult[[]StandingRow, error], error) {
		return s.standingsLogic(ctx, leagueID)
	}))
}

// StandingsChart renders the league table as a PNG bar chart of points.
func (s *MatchService) StandingsChart(ctx context.Context, leagueID string) ([]byte, error) {
	return telemetry.Unwrap(telemetry.WithTelemetry(s.scope, ctx, "StandingsChart", leagueID, func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
		table, err := s.standingsLogic(ctx, leagueID)
		if err != nil || table.IsFailure() {
			return results.OperationResult[[]byte, error]{Failure: table.Failure}, err
		}
		png, err := GenerateStandingsChart(*table.Success, DefaultPalette)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, fmt.Errorf("failed to render standings chart: %w", err)
		}
		return results.SuccessResult[[]byte, error](png), nil
	}))
}

func (s *MatchService) standingsLogic(ctx context.Context, leagueID string) (results.OperationResult[[]StandingRow, error], error) {
	if _, failure, err := s.lookupLeague(ctx, leagueID); err != nil || failure != nil {
		return results.OperationResult[[]StandingRow, error]{Failure: failure}, err
	}

	played, err := s.repo.ListPlayed(ctx, nil, leagueID)
	if err != nil {
		return results.OperationResult[[]StandingRow, error]{}, err
	}
	teams, err := s.refs.ListTeams(ctx)
	if err != nil {
		return results.OperationResult[[]StandingRow, error]{}, fmt.Errorf("failed to list teams: %w", err)
	}
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}
	return results.SuccessResult[[]StandingRow, error](ComputeStandings(played, names)), nil
}
