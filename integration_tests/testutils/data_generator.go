package testutils

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	leaguedb "github.com/Black-And-White-Club/league-admin/app/modules/league/infrastructure/repositories"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/xuri/excelize/v2"
)

// TestDataGenerator creates reference data for integration tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
	used  map[string]bool
}

// NewTestDataGenerator creates a new test data generator with an optional seed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	s := time.Now().UnixNano()
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
		used:  map[string]bool{},
	}
}

// Seed returns the seed the generator was created with.
func (g *TestDataGenerator) Seed() int64 { return g.seed }

// unique keeps drawing from gen until it yields a name not handed out before.
// Names compare case-insensitively, the way teams and venues do.
func (g *TestDataGenerator) unique(gen func() string) string {
	for {
		name := gen()
		key := strings.ToLower(name)
		if !g.used[key] {
			g.used[key] = true
			return name
		}
	}
}

// GenerateLeague returns an unsaved league.
func (g *TestDataGenerator) GenerateLeague() *leaguedb.League {
	return &leaguedb.League{
		ID:          uuid.NewString(),
		Name:        g.unique(func() string { return g.faker.City() + " League" }),
		Competition: g.faker.RandomString([]string{"Premier", "Championship", "Cup"}),
		Season:      "2024/25",
		Year:        2024,
	}
}

// GenerateTeams returns n unsaved teams with distinct names.
func (g *TestDataGenerator) GenerateTeams(n int) []*leaguedb.Team {
	teams := make([]*leaguedb.Team, n)
	for i := range teams {
		teams[i] = &leaguedb.Team{
			ID:      uuid.NewString(),
			Name:    g.unique(func() string { return g.faker.City() + " " + g.faker.Animal() }),
			Founded: g.faker.Number(1880, 2010),
		}
	}
	return teams
}

// GenerateVenues returns n unsaved venues with distinct names.
func (g *TestDataGenerator) GenerateVenues(n int) []*leaguedb.Venue {
	venues := make([]*leaguedb.Venue, n)
	for i := range venues {
		venues[i] = &leaguedb.Venue{
			ID:       uuid.NewString(),
			Name:     g.unique(func() string { return g.faker.Street() + " Stadium" }),
			City:     g.faker.City(),
			Capacity: g.faker.Number(1000, 60000),
		}
	}
	return venues
}

// Fixture is a league with teams and venues stored in the database.
type Fixture struct {
	League *leaguedb.League
	Teams  []*leaguedb.Team
	Venues []*leaguedb.Venue
}

// SeedFixture inserts a league, teams and venues directly through bun.
func (g *TestDataGenerator) SeedFixture(ctx context.Context, t *testing.T, db bun.IDB, teams, venues int) Fixture {
	t.Helper()
	f := Fixture{
		League: g.GenerateLeague(),
		Teams:  g.GenerateTeams(teams),
		Venues: g.GenerateVenues(venues),
	}
	_, err := db.NewInsert().Model(f.League).Exec(ctx)
	require.NoError(t, err)
	if len(f.Teams) > 0 {
		_, err = db.NewInsert().Model(&f.Teams).Exec(ctx)
		require.NoError(t, err)
	}
	if len(f.Venues) > 0 {
		_, err = db.NewInsert().Model(&f.Venues).Exec(ctx)
		require.NoError(t, err)
	}
	return f
}

// SheetRow is one row of a match sheet keyed by column header.
type SheetRow map[string]string

// BuildCSV renders rows as CSV with the given header order.
func BuildCSV(header []string, rows []SheetRow) []byte {
	var sb strings.Builder
	sb.WriteString(strings.Join(header, ","))
	sb.WriteString("\n")
	for _, row := range rows {
		cells := make([]string, len(header))
		for i, col := range header {
			cells[i] = row[col]
		}
		sb.WriteString(strings.Join(cells, ","))
		sb.WriteString("\n")
	}
	return []byte(sb.String())
}

// BuildXLSX renders rows into the first sheet of a workbook.
func BuildXLSX(t *testing.T, header []string, rows []SheetRow) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	write := func(rowIdx int, values []string) {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	write(1, header)
	for i, row := range rows {
		values := make([]string, len(header))
		for c, col := range header {
			values[c] = row[col]
		}
		write(i+2, values)
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

// Schedule builds a round-robin of n matches between the fixture's teams,
// one week apart, numbered from 1.
func (f Fixture) Schedule(n int, start time.Time) []SheetRow {
	rows := make([]SheetRow, 0, n)
	for i := 0; i < n; i++ {
		home := f.Teams[i%len(f.Teams)]
		away := f.Teams[(i+1)%len(f.Teams)]
		rows = append(rows, SheetRow{
			"homeTeam": home.Name,
			"awayTeam": away.Name,
			"date":     start.AddDate(0, 0, 7*i).Format("2006-01-02"),
			"venue":    f.Venues[i%len(f.Venues)].Name,
			"matchNo":  fmt.Sprint(i + 1),
		})
	}
	return rows
}
