package importer

import "strings"

// Resolver maps team and venue names to reference entities. Matching is
// case-insensitive on trimmed names; on duplicate reference names the first
// entry wins.
type Resolver struct {
	teams  map[string]TeamRef
	venues map[string]VenueRef
}

// NewResolver indexes the reference snapshots. The slices are not retained.
func NewResolver(teams []TeamRef, venues []VenueRef) *Resolver {
	r := &Resolver{
		teams:  make(map[string]TeamRef, len(teams)),
		venues: make(map[string]VenueRef, len(venues)),
	}
	for _, t := range teams {
		key := normalizeName(t.Name)
		if _, ok := r.teams[key]; !ok {
			r.teams[key] = t
		}
	}
	for _, v := range venues {
		key := normalizeName(v.Name)
		if _, ok := r.venues[key]; !ok {
			r.venues[key] = v
		}
	}
	return r
}

// Resolve stops at the first row that fails.
func (r *Resolver) Resolve(rows []MatchRow) ([]ResolvedRow, error) {
	out := make([]ResolvedRow, 0, len(rows))
	for _, row := range rows {
		resolved, err := r.resolveRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

func (r *Resolver) resolveRow(row MatchRow) (ResolvedRow, error) {
	home, ok := r.teams[normalizeName(row.HomeTeam)]
	if !ok {
		return ResolvedRow{}, &UnknownTeamError{Side: SideHome, Name: row.HomeTeam}
	}
	away, ok := r.teams[normalizeName(row.AwayTeam)]
	if !ok {
		return ResolvedRow{}, &UnknownTeamError{Side: SideAway, Name: row.AwayTeam}
	}
	venue, ok := r.venues[normalizeName(row.Venue)]
	if !ok {
		return ResolvedRow{}, &UnknownVenueError{Venue: row.Venue, MatchNo: row.MatchNo}
	}
	if home.ID == away.ID {
		return ResolvedRow{}, &DuplicateTeamsError{MatchNo: row.MatchNo}
	}

	return ResolvedRow{
		MatchRow:   row,
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		VenueName:  venue.Name,
	}, nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
