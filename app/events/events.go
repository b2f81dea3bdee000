// Package events defines the domain events published on the event bus.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/league-admin/app/shared/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// Topics.
const (
	MatchImported = "match.imported"
	MatchUpdated  = "match.updated"
	NewsPublished = "news.published"
)

// AllTopics lists every topic the activity log records.
var AllTopics = []string{MatchImported, MatchUpdated, NewsPublished}

// Metadata keys set on every event.
const (
	MetaActor = "actor"
	MetaTopic = "topic"
)

// MatchImportedPayload is published after a bulk import commits.
type MatchImportedPayload struct {
	ImportID    string    `json:"importId"`
	LeagueID    string    `json:"leagueId"`
	FileName    string    `json:"fileName"`
	Created     int       `json:"created"`
	RequestedBy string    `json:"requestedBy,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// MatchUpdatedPayload is published when a match result changes.
type MatchUpdatedPayload struct {
	MatchID    string    `json:"matchId"`
	LeagueID   string    `json:"leagueId"`
	Status     string    `json:"status"`
	HomeScore  int       `json:"homeScore"`
	AwayScore  int       `json:"awayScore"`
	UpdatedBy  string    `json:"updatedBy,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewsPublishedPayload is published when a news article is created.
type NewsPublishedPayload struct {
	NewsID     string    `json:"newsId"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewMessage encodes payload as JSON and stamps topic, actor and the
// request's correlation id into the metadata.
func NewMessage(ctx context.Context, topic, actor string, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set(MetaTopic, topic)
	if actor != "" {
		msg.Metadata.Set(MetaActor, actor)
	}
	if id := attr.CorrelationIDFromContext(ctx); id != "" {
		middleware.SetCorrelationID(id, msg)
	}
	msg.SetContext(ctx)
	return msg, nil
}
