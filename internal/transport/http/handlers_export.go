package httptransport

import (
	"fmt"
	"net/http"

	"campusreport/internal/export"
	"campusreport/internal/identity"
	"campusreport/internal/report"
	"campusreport/internal/view"
	"campusreport/pkg/domainerrors"
	"campusreport/pkg/requestcontext"
)

// handleExport streams the summary CSV for the caller's visible reports,
// optionally narrowed by status and college query parameters. Students and
// college-less admins cannot export.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	acting, err := h.actingUser(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if acting.Role == identity.RoleStudent {
		writeError(w, domainerrors.New(domainerrors.CodeForbidden, "students cannot export reports"))
		return
	}
	if acting.Role == identity.RoleAdmin && acting.College == "" {
		writeError(w, domainerrors.New(domainerrors.CodeForbidden, "admin has no assigned college"))
		return
	}

	filter := export.Filter{
		Status:  report.Status(r.URL.Query().Get("status")),
		College: r.URL.Query().Get("college"),
	}
	visible := filter.Apply(view.VisibleReports(acting, h.reports.List()))

	now := requestcontext.Now(r.Context())
	if h.exportDir != "" {
		if _, err := export.WriteFile(h.exportDir, visible, now); err != nil {
			h.logger.Error("export file write failed", "error", err)
		}
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("reports-summary-%d.csv", now.UnixMilli())))
	_, _ = w.Write(export.Render(visible))
}
