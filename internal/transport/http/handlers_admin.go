package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusreport/internal/domain"
	"campusreport/internal/identity"
	"campusreport/internal/view"
	"campusreport/pkg/domainerrors"
)

type createAdminRequest struct {
	Email    string `json:"email"`
	College  string `json:"college"`
	Password string `json:"password"`
}

type editAdminRequest struct {
	Email    string `json:"email"`
	College  string `json:"college"`
	Password string `json:"password"`
}

func (h *Handler) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	acting, err := h.actingUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	visible := view.VisibleUsers(acting, h.manager.Users())
	if visible == nil {
		writeError(w, domainerrors.New(domainerrors.CodeForbidden, "super-admin role required"))
		return
	}

	out := make([]userResponse, 0, len(visible))
	for _, u := range visible {
		if u.Role != identity.RoleAdmin {
			continue
		}
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	acting, err := h.actingUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domainerrors.New(domainerrors.CodeBadRequest, "malformed request body"))
		return
	}

	admin, err := h.manager.CreateAdmin(r.Context(), acting, req.Email, domain.College(req.College), req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(admin))
}

func (h *Handler) handleEditAdmin(w http.ResponseWriter, r *http.Request) {
	acting, err := h.actingUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req editAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domainerrors.New(domainerrors.CodeBadRequest, "malformed request body"))
		return
	}

	admin, err := h.manager.EditAdmin(r.Context(), acting, chi.URLParam(r, "id"), identity.AdminUpdate{
		Email:    req.Email,
		College:  domain.College(req.College),
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(admin))
}

func (h *Handler) handleDeleteAdmin(w http.ResponseWriter, r *http.Request) {
	acting, err := h.actingUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.manager.DeleteAdmin(r.Context(), acting, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
