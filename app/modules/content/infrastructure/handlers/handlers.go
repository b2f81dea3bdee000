package contenthandlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	contentdb "github.com/Black-And-White-Club/league-admin/app/modules/content/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
	"github.com/Black-And-White-Club/league-admin/app/shared/crud"
	"github.com/Black-And-White-Club/league-admin/app/shared/httpx"
	"github.com/go-chi/chi/v5"
)

// MediaStore is the blob side of the content service.
type MediaStore interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (*contentdb.MediaObject, error)
	GetMedia(ctx context.Context, id string) (*contentdb.MediaObject, error)
	DeleteMedia(ctx context.Context, id string) error
	MaxMediaBytes() int64
}

// Handlers serves news, carousel and media routes.
type Handlers struct {
	news   crud.EntityService[contentdb.News]
	slides crud.EntityService[contentdb.CarouselSlide]
	media  MediaStore
	logger *slog.Logger
}

// NewHandlers creates the content handlers.
func NewHandlers(
	news crud.EntityService[contentdb.News],
	slides crud.EntityService[contentdb.CarouselSlide],
	media MediaStore,
	logger *slog.Logger,
) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{news: news, slides: slides, media: media, logger: logger}
}

// RegisterRoutes mounts the authenticated content routes. Writes are wrapped with guard.
func (h *Handlers) RegisterRoutes(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Route("/news", func(r chi.Router) {
		crud.NewHandler[contentdb.News](h.news, h.logger, crud.HandlerConfig{
			OrderBy: "published_at",
			Desc:    true,
		}).Mount(r, guard)
	})
	r.Route("/carousel", func(r chi.Router) {
		crud.NewHandler[contentdb.CarouselSlide](h.slides, h.logger, crud.HandlerConfig{
			Filters: []crud.FilterParam{{Query: "active", Column: "active"}},
			OrderBy: "position",
		}).Mount(r, guard)
	})
	r.With(guard).Post("/media", h.HandleUpload)
	r.With(guard).Delete("/media/{id}", h.HandleDeleteMedia)
}

// RegisterPublicRoutes mounts media downloads, which need no session.
func (h *Handlers) RegisterPublicRoutes(r chi.Router) {
	r.Get("/media/{id}", h.HandleGetMedia)
}

// HandleUpload stores the multipart "file" field.
func (h *Handlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	limit := h.media.MaxMediaBytes()
	// Multipart framing needs headroom beyond the blob itself.
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.Error(w, http.StatusRequestEntityTooLarge, httpx.ErrorBody{Error: fmt.Sprintf("file exceeds %d bytes", limit)})
			return
		}
		httpx.WriteError(w, r, h.logger, apperr.Invalid("malformed upload: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.WriteError(w, r, h.logger, apperr.Invalid("a file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httpx.WriteError(w, r, h.logger, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	obj, err := h.media.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, obj)
}

// HandleGetMedia streams the stored bytes.
func (h *Handlers) HandleGetMedia(w http.ResponseWriter, r *http.Request) {
	obj, err := h.media.GetMedia(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if obj.ContentType == "image/svg+xml" {
		w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(obj.Data)
}

func (h *Handlers) HandleDeleteMedia(w http.ResponseWriter, r *http.Request) {
	if err := h.media.DeleteMedia(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
