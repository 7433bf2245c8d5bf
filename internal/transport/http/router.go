// Package httptransport is the thin HTTP layer standing in for the mobile
// screens. It delegates to the identity manager and report repository without
// embedding business logic so transport concerns remain isolated.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"campusreport/internal/identity"
	"campusreport/internal/report"
	"campusreport/internal/token"
	"campusreport/pkg/domainerrors"
	authmw "campusreport/pkg/platform/middleware/auth"
	"campusreport/pkg/platform/middleware/device"
	"campusreport/pkg/platform/middleware/requesttime"
	"campusreport/pkg/requestcontext"
)

type Handler struct {
	manager   *identity.Manager
	reports   *report.Repository
	tokens    *token.Service
	exportDir string
	logger    *slog.Logger
}

func NewHandler(manager *identity.Manager, reports *report.Repository, tokens *token.Service,
	exportDir string, logger *slog.Logger) *Handler {
	return &Handler{
		manager:   manager,
		reports:   reports,
		tokens:    tokens,
		exportDir: exportDir,
		logger:    logger,
	}
}

// NewRouter wires all endpoints. Everything except health, metrics, and the
// auth entry points requires a bearer token.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requesttime.Middleware)
	r.Use(device.Middleware)

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/register", h.handleRegister)

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(tokenValidator{h.tokens}, h.logger))

		r.Post("/auth/logout", h.handleLogout)
		r.Get("/auth/me", h.handleMe)

		r.Get("/admins", h.handleListAdmins)
		r.Post("/admins", h.handleCreateAdmin)
		r.Patch("/admins/{id}", h.handleEditAdmin)
		r.Delete("/admins/{id}", h.handleDeleteAdmin)

		r.Post("/reports", h.handleCreateReport)
		r.Get("/reports", h.handleListReports)
		r.Patch("/reports/{id}/status", h.handleUpdateStatus)
		r.Patch("/reports/{id}/college", h.handleUpdateCollege)

		r.Get("/reports/export", h.handleExport)
		r.Get("/stats", h.handleStats)
	})

	return r
}

// tokenValidator adapts the token service to the middleware's claim shape.
type tokenValidator struct {
	tokens *token.Service
}

func (v tokenValidator) Validate(tokenString string) (*authmw.Claims, error) {
	claims, err := v.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return &authmw.Claims{UserID: claims.UserID, Role: claims.Role}, nil
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// actingUser resolves the bearer identity to the live user record. A token
// for a since-deleted user is rejected, not trusted.
func (h *Handler) actingUser(r *http.Request) (identity.User, error) {
	id := requestcontext.UserID(r.Context())
	if id == "" {
		return identity.User{}, domainerrors.New(domainerrors.CodeUnauthorized, "authentication required")
	}
	user, ok := h.manager.FindUser(id)
	if !ok {
		return identity.User{}, domainerrors.New(domainerrors.CodeUnauthorized, "unknown user")
	}
	return user, nil
}
