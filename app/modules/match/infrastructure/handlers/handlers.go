package matchhandlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	matchservice "github.com/Black-And-White-Club/league-admin/app/modules/match/application"
	"github.com/Black-And-White-Club/league-admin/app/modules/match/application/importer"
	matchdb "github.com/Black-And-White-Club/league-admin/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
	"github.com/Black-And-White-Club/league-admin/app/shared/crud"
	"github.com/Black-And-White-Club/league-admin/app/shared/httpx"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DefaultMaxUploadBytes bounds an import upload when no limit is configured.
const DefaultMaxUploadBytes = 10 << 20

// Handlers serves the match, standings and import routes.
type Handlers struct {
	svc            matchservice.Service
	logger         *slog.Logger
	maxUploadBytes int64
}

// NewHandlers creates Handlers.
func NewHandlers(svc matchservice.Service, logger *slog.Logger, maxUploadBytes int64) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handlers{svc: svc, logger: logger, maxUploadBytes: maxUploadBytes}
}

// RegisterRoutes mounts the match routes on r. Writes are wrapped with guard.
func (h *Handlers) RegisterRoutes(r chi.Router, guard func(http.Handler) http.Handler) {
	if guard == nil {
		guard = func(next http.Handler) http.Handler { return next }
	}

	r.Route("/matches", func(r chi.Router) {
		crud.NewHandler(h.svc.Matches(), h.logger, crud.HandlerConfig{
			Filters: []crud.FilterParam{
				{Query: "leagueId", Column: "league_id"},
				{Query: "status", Column: "status"},
				{Query: "competition", Column: "competition"},
			},
			OrderBy: "date",
		}).Mount(r, guard)
		r.With(guard).Patch("/{id}/result", h.updateResult)
	})

	r.Get("/leagues/{leagueID}/standings", h.standings)
	r.Get("/leagues/{leagueID}/standings.png", h.standingsChart)
	r.Get("/leagues/{leagueID}/imports/template", h.template)
	r.With(guard).Post("/leagues/{leagueID}/imports", h.importMatches)
	r.Get("/imports/{importID}", h.importRun)
}

func (h *Handlers) updateResult(w http.ResponseWriter, r *http.Request) {
	var update matchservice.ResultUpdate
	if err := httpx.Decode(r, &update); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	match, err := h.svc.UpdateResult(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, match)
}

func (h *Handlers) standings(w http.ResponseWriter, r *http.Request) {
	table, err := h.svc.Standings(r.Context(), chi.URLParam(r, "leagueID"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, table)
}

func (h *Handlers) standingsChart(w http.ResponseWriter, r *http.Request) {
	png, err := h.svc.StandingsChart(r.Context(), chi.URLParam(r, "leagueID"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(png)
}

func (h *Handlers) template(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.ExportTemplate(r.Context())
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="matches_template.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

func (h *Handlers) importMatches(w http.ResponseWriter, r *http.Request) {
	req, err := h.readUpload(w, r)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	var run *matchdb.ImportRun
	if r.URL.Query().Get("async") == "true" {
		run, err = h.svc.EnqueueImport(r.Context(), req)
		if err == nil {
			httpx.JSON(w, http.StatusAccepted, run)
			return
		}
	} else {
		run, err = h.svc.ImportMatches(r.Context(), req)
		if err == nil {
			httpx.JSON(w, http.StatusCreated, run)
			return
		}
	}

	if stage, ok := importer.FailedStage(err); ok {
		httpx.Error(w, http.StatusUnprocessableEntity, httpx.ErrorBody{
			Error: err.Error(),
			Code:  importer.ErrorCode(err),
			Stage: string(stage),
		})
		return
	}
	httpx.WriteError(w, r, h.logger, err)
}

func (h *Handlers) readUpload(w http.ResponseWriter, r *http.Request) (matchservice.ImportRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return matchservice.ImportRequest{}, apperr.Invalid("file exceeds %d bytes", h.maxUploadBytes)
		}
		return matchservice.ImportRequest{}, apperr.Invalid("malformed upload: %v", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return matchservice.ImportRequest{}, apperr.Invalid("a file is required")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return matchservice.ImportRequest{}, fmt.Errorf("failed to read upload: %w", err)
	}
	return matchservice.ImportRequest{
		LeagueID: chi.URLParam(r, "leagueID"),
		FileName: header.Filename,
		Data:     data,
	}, nil
}

func (h *Handlers) importRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.svc.GetImportRun(r.Context(), chi.URLParam(r, "importID"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, run)
}
