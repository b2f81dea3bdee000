package activityhandlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	activityservice "github.com/Black-And-White-Club/league-admin/app/modules/activity/application"
	activitydb "github.com/Black-And-White-Club/league-admin/app/modules/activity/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
	"github.com/Black-And-White-Club/league-admin/app/shared/httpx"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
)

// Service is the activity service as seen by its handlers.
type Service interface {
	Record(ctx context.Context, topic string, msg *message.Message) error
	List(ctx context.Context, q activityservice.ListQuery) ([]*activitydb.Entry, error)
}

// ActivityHandlers consumes bus events and serves the activity feed.
type ActivityHandlers struct {
	service Service
	logger  *slog.Logger
}

// NewActivityHandlers creates a new ActivityHandlers instance.
func NewActivityHandlers(service Service, logger *slog.Logger) *ActivityHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityHandlers{service: service, logger: logger}
}

// HandleEvent returns a consumer for topic. A returned error nacks the message.
func (h *ActivityHandlers) HandleEvent(topic string) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		return h.service.Record(msg.Context(), topic, msg)
	}
}

// RegisterRoutes mounts GET /activity.
func (h *ActivityHandlers) RegisterRoutes(r chi.Router) {
	r.Get("/activity", h.HandleList)
}

// HandleList serves the latest entries, optionally filtered by ?topic=.
func (h *ActivityHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	q := activityservice.ListQuery{Topic: r.URL.Query().Get("topic")}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httpx.WriteError(w, r, h.logger, apperr.Invalid("limit must be an integer"))
			return
		}
		q.Limit = n
	}

	entries, err := h.service.List(r.Context(), q)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entries)
}
