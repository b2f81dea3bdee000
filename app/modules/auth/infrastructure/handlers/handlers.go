package authhandlers

import (
	"log/slog"
	"net/http"
	"time"

	authservice "github.com/Black-And-White-Club/league-admin/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/league-admin/app/modules/auth/domain"
	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
	"github.com/Black-And-White-Club/league-admin/app/shared/httpx"
	"github.com/go-chi/chi/v5"
)

// AuthHandlers serves the session and token endpoints.
type AuthHandlers struct {
	service authservice.Service
	logger  *slog.Logger
}

// NewAuthHandlers creates a new AuthHandlers instance.
func NewAuthHandlers(service authservice.Service, logger *slog.Logger) *AuthHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandlers{service: service, logger: logger}
}

// TokenRequest is the body of POST /auth/token.
type TokenRequest struct {
	UserID     string `json:"userId,omitempty"`
	Email      string `json:"email,omitempty"`
	TTLSeconds int    `json:"ttlSeconds,omitempty"`
}

// RegisterRoutes mounts /auth. Issuing tokens is restricted by adminGuard.
func (h *AuthHandlers) RegisterRoutes(r chi.Router, adminGuard func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Get("/session", h.HandleSession)
		r.With(adminGuard).Post("/token", h.HandleIssueToken)
	})
}

// HandleSession returns the caller's session.
func (h *AuthHandlers) HandleSession(w http.ResponseWriter, r *http.Request) {
	session, ok := authdomain.SessionFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, r, h.logger, authservice.ErrMissingToken)
		return
	}
	httpx.JSON(w, http.StatusOK, session)
}

// HandleIssueToken mints a token for another user.
func (h *AuthHandlers) HandleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	if req.TTLSeconds < 0 {
		httpx.WriteError(w, r, h.logger, apperr.Invalid("ttlSeconds must not be negative"))
		return
	}

	resp, err := h.service.IssueToken(r.Context(), authservice.TokenRequest{
		UserID: req.UserID,
		Email:  req.Email,
		TTL:    time.Duration(req.TTLSeconds) * time.Second,
	})
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Issued token",
		"user_id", resp.Session.UserID,
		"issued_by", authdomain.ActorFromContext(r.Context()),
		"expires_at", resp.ExpiresAt,
	)
	httpx.JSON(w, http.StatusCreated, resp)
}
