package leaguedb

import (
	"time"

	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/uptrace/bun"
)

// League is a competition instance spanning one season.
type League struct {
	bun.BaseModel `bun:"table:leagues,alias:l"`
	ID            string `bun:"id,pk" json:"id"`
	Name          string `bun:"name,notnull" json:"name"`
	Competition   string `bun:"competition,notnull" json:"competition"`
	Season        string `bun:"season,nullzero" json:"season,omitempty"`
	Year          int    `bun:"year,nullzero" json:"year,omitempty"`
	ImageURL      string `bun:"image_url,nullzero" json:"imageUrl,omitempty"`
	repository.Timestamps
}

func (l *League) PrimaryKey() string          { return l.ID }
func (l *League) AssignPrimaryKey(id string) { l.ID = id }

// Team names are unique case-insensitively.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`
	ID            string `bun:"id,pk" json:"id"`
	Name          string `bun:"name,notnull" json:"name"`
	ShortName     string `bun:"short_name,nullzero" json:"shortName,omitempty"`
	ImageURL      string `bun:"image_url,nullzero" json:"imageUrl,omitempty"`
	Founded       int    `bun:"founded,nullzero" json:"founded,omitempty"`
	repository.Timestamps
}

func (t *Team) PrimaryKey() string          { return t.ID }
func (t *Team) AssignPrimaryKey(id string) { t.ID = id }

// Player belongs to exactly one team.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`
	ID            string     `bun:"id,pk" json:"id"`
	TeamID        string     `bun:"team_id,notnull" json:"teamId"`
	FirstName     string     `bun:"first_name,notnull" json:"firstName"`
	LastName      string     `bun:"last_name,notnull" json:"lastName"`
	Position      string     `bun:"position,nullzero" json:"position,omitempty"`
	ShirtNumber   int        `bun:"shirt_number,nullzero" json:"shirtNumber,omitempty"`
	DateOfBirth   *time.Time `bun:"date_of_birth" json:"dateOfBirth,omitempty"`
	ImageURL      string     `bun:"image_url,nullzero" json:"imageUrl,omitempty"`
	repository.Timestamps
}

func (p *Player) PrimaryKey() string          { return p.ID }
func (p *Player) AssignPrimaryKey(id string) { p.ID = id }

// Venue names are unique case-insensitively.
type Venue struct {
	bun.BaseModel `bun:"table:venues,alias:v"`
	ID            string `bun:"id,pk" json:"id"`
	Name          string `bun:"name,notnull" json:"name"`
	City          string `bun:"city,nullzero" json:"city,omitempty"`
	Capacity      int    `bun:"capacity,nullzero" json:"capacity,omitempty"`
	repository.Timestamps
}

func (v *Venue) PrimaryKey() string          { return v.ID }
func (v *Venue) AssignPrimaryKey(id string) { v.ID = id }

type Referee struct {
	bun.BaseModel `bun:"table:referees,alias:rf"`
	ID            string `bun:"id,pk" json:"id"`
	Name          string `bun:"name,notnull" json:"name"`
	Level         string `bun:"level,nullzero" json:"level,omitempty"`
	repository.Timestamps
}

func (r *Referee) PrimaryKey() string          { return r.ID }
func (r *Referee) AssignPrimaryKey(id string) { r.ID = id }
