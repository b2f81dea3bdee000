package crud

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
	"github.com/Black-And-White-Club/league-admin/app/shared/httpx"
	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/go-chi/chi/v5"
)

// EntityService is the contract the HTTP handler depends on.
type EntityService[T any] interface {
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, opts repository.ListOptions) ([]*T, error)
	Create(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, id string, entity *T) (*T, error)
	Delete(ctx context.Context, id string) error
}

// FilterParam maps a query parameter to an equality filter on a column.
type FilterParam struct {
	Query  string
	Column string
}

// HandlerConfig describes how list requests are filtered and ordered.
type HandlerConfig struct {
	Filters []FilterParam
	OrderBy string
	Desc    bool
}

// Handler serves the REST routes of one entity type.
type Handler[T any] struct {
	svc    EntityService[T]
	logger *slog.Logger
	cfg    HandlerConfig
}

// NewHandler creates a Handler.
func NewHandler[T any](svc EntityService[T], logger *slog.Logger, cfg HandlerConfig) *Handler[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler[T]{svc: svc, logger: logger, cfg: cfg}
}

// Mount registers the routes on r. Writes are wrapped with guard.
func (h *Handler[T]) Mount(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Group(func(r chi.Router) {
		if guard != nil {
			r.Use(guard)
		}
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler[T]) list(w http.ResponseWriter, r *http.Request) {
	opts, err := h.listOptions(r)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	entities, err := h.svc.List(r.Context(), opts)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entities)
}

func (h *Handler[T]) get(w http.ResponseWriter, r *http.Request) {
	entity, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entity)
}

func (h *Handler[T]) create(w http.ResponseWriter, r *http.Request) {
	entity := new(T)
	if err := httpx.Decode(r, entity); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	created, err := h.svc.Create(r.Context(), entity)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler[T]) update(w http.ResponseWriter, r *http.Request) {
	entity := new(T)
	if err := httpx.Decode(r, entity); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	updated, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), entity)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler[T]) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler[T]) listOptions(r *http.Request) (repository.ListOptions, error) {
	q := r.URL.Query()
	opts := repository.ListOptions{OrderBy: h.cfg.OrderBy, Desc: h.cfg.Desc}
	for _, f := range h.cfg.Filters {
		if v := q.Get(f.Query); v != "" {
			opts.Filters = append(opts.Filters, repository.Filter{Column: f.Column, Value: v})
		}
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, apperr.Invalid("limit must be a non-negative integer")
		}
		opts.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, apperr.Invalid("offset must be a non-negative integer")
		}
		opts.Offset = n
	}
	return opts, nil
}
