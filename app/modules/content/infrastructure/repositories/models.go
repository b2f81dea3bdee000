package contentdb

import (
	"time"

	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/uptrace/bun"
)

// News is a published article.
type News struct {
	bun.BaseModel `bun:"table:news,alias:n"`
	ID            string    `bun:"id,pk" json:"id"`
	Title         string    `bun:"title,notnull" json:"title"`
	Body          string    `bun:"body,notnull" json:"body"`
	ImageURL      string    `bun:"image_url,nullzero" json:"imageUrl,omitempty"`
	PublishedAt   time.Time `bun:"published_at,notnull" json:"publishedAt"`
	repository.Timestamps
}

func (n *News) PrimaryKey() string          { return n.ID }
func (n *News) AssignPrimaryKey(id string) { n.ID = id }

// CarouselSlide is shown on the public front page, ordered by Position.
type CarouselSlide struct {
	bun.BaseModel `bun:"table:carousel_slides,alias:cs"`
	ID            string `bun:"id,pk" json:"id"`
	Title         string `bun:"title,notnull" json:"title"`
	ImageURL      string `bun:"image_url,notnull" json:"imageUrl"`
	LinkURL       string `bun:"link_url,nullzero" json:"linkUrl,omitempty"`
	Position      int    `bun:"position,notnull,default:0" json:"position"`
	Active        bool   `bun:"active,notnull,default:true" json:"active"`
	repository.Timestamps
}

func (c *CarouselSlide) PrimaryKey() string          { return c.ID }
func (c *CarouselSlide) AssignPrimaryKey(id string) { c.ID = id }

// MediaObject is an uploaded image. Data is never serialized to JSON.
type MediaObject struct {
	bun.BaseModel `bun:"table:media_objects,alias:mo"`
	ID            string `bun:"id,pk" json:"id"`
	Name          string `bun:"name,notnull" json:"name"`
	ContentType   string `bun:"content_type,notnull" json:"contentType"`
	Size          int64  `bun:"size,notnull" json:"size"`
	Data          []byte `bun:"data,type:bytea,notnull" json:"-"`
	URL           string `bun:"-" json:"url"`
	repository.Timestamps
}

func (m *MediaObject) PrimaryKey() string          { return m.ID }
func (m *MediaObject) AssignPrimaryKey(id string) { m.ID = id }
