package activitydb

import (
	"time"

	"github.com/uptrace/bun"
)

// Entry is one recorded domain event. ID is the event's message id, so a
// redelivered event is stored once.
type Entry struct {
	bun.BaseModel `bun:"table:activity_log,alias:al"`
	ID            string         `bun:"id,pk" json:"id"`
	Topic         string         `bun:"topic,notnull" json:"topic"`
	Actor         string         `bun:"actor,nullzero" json:"actor,omitempty"`
	CorrelationID string         `bun:"correlation_id,nullzero" json:"correlationId,omitempty"`
	Payload       map[string]any `bun:"payload,type:jsonb" json:"payload"`
	OccurredAt    time.Time      `bun:"occurred_at,notnull" json:"occurredAt"`
}

func (e *Entry) PrimaryKey() string          { return e.ID }
func (e *Entry) AssignPrimaryKey(id string) { e.ID = id }
