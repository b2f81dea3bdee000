package importer

import (
	"context"
	"sync"
)

// FakeMatchWriter records calls and delegates to CreateMatchesFunc when set.
type FakeMatchWriter struct {
	CreateMatchesFunc func(ctx context.Context, leagueID string, matches []Match) (int, error)

	mu    sync.Mutex
	trace []string
	got   [][]Match
}

func (f *FakeMatchWriter) CreateMatches(ctx context.Context, leagueID string, matches []Match) (int, error) {
	f.mu.Lock()
	f.trace = append(f.trace, "CreateMatches:"+leagueID)
	f.got = append(f.got, matches)
	f.mu.Unlock()

	if f.CreateMatchesFunc != nil {
		return f.CreateMatchesFunc(ctx, leagueID, matches)
	}
	return len(matches), nil
}

func (f *FakeMatchWriter) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeMatchWriter) Batches() [][]Match {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.got
}

var (
	testTeams = []TeamRef{
		{ID: "t1", Name: "Lions"},
		{ID: "t2", Name: "Tigers"},
		{ID: "t3", Name: "Lions FC"},
		{ID: "t4", Name: "Bears"},
	}
	testVenues = []VenueRef{
		{ID: "v1", Name: "Main Stadium"},
		{ID: "v2", Name: "North Park"},
	}
)
