package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campusreport/internal/domain"
	"campusreport/internal/report"
	"campusreport/internal/view"
	"campusreport/pkg/domainerrors"
)

type createReportRequest struct {
	Location    report.Location `json:"location"`
	ImageURIs   []string        `json:"imageUris"`
	Description string          `json:"description"`
	College     string          `json:"college"`
	Category    string          `json:"category"`
	Urgency     string          `json:"urgency"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updateCollegeRequest struct {
	College string `json:"college"`
}

func (h *Handler) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	acting, err := h.actingUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domainerrors.New(domainerrors.CodeBadRequest, "malformed request body"))
		return
	}

	created, err := h.reports.Add(r.Context(), acting, report.Input{
		Location:    req.Location,
		ImageURIs:   req.ImageURIs,
		Description: req.Description,
		College:     domain.College(req.College),
		Category:    req.Category,
		Urgency:     report.Urgency(req.Urgency),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleListReports returns the caller's role-scoped slice: students see
// their own, admins their college, super-admins everything.
func (h *Handler) handleListReports(w http.ResponseWriter, r *http.Request) {
	acting, err := h.actingUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	visible := view.VisibleReports(acting, h.reports.List())
	if visible == nil {
		visible = []report.Report{}
	}
	writeJSON(w, http.StatusOK, visible)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	acting, err := h.actingUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domainerrors.New(domainerrors.CodeBadRequest, "malformed request body"))
		return
	}

	if err := h.reports.UpdateStatus(r.Context(), acting, chi.URLParam(r, "id"), report.Status(req.Status)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpdateCollege(w http.ResponseWriter, r *http.Request) {
	acting, err := h.actingUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateCollegeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domainerrors.New(domainerrors.CodeBadRequest, "malformed request body"))
		return
	}

	if err := h.reports.UpdateCollege(r.Context(), acting, chi.URLParam(r, "id"), domain.College(req.College)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	acting, err := h.actingUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	visible := view.VisibleReports(acting, h.reports.List())
	writeJSON(w, http.StatusOK, view.Summarize(visible))
}
