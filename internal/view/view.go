// Package view derives the role-scoped slice of data a session may see. Pure
// functions, recomputed on every read: the source lists are small and live in
// memory, so there is nothing to cache.
package view

import (
	"campusreport/internal/domain"
	"campusreport/internal/identity"
	"campusreport/internal/report"
)

// VisibleReports scopes reports to the session user: students see their own
// submissions, admins their college's, the super-admin everything.
//
// An admin without an assigned college sees an empty view. That mirrors the
// historical behavior; whether it should instead be an error is an open call
// recorded in DESIGN.md.
func VisibleReports(user identity.User, reports []report.Report) []report.Report {
	switch user.Role {
	case identity.RoleStudent:
		return filter(reports, func(r report.Report) bool { return r.StudentID == user.ID })
	case identity.RoleAdmin:
		return filter(reports, func(r report.Report) bool { return r.College == user.College && user.College != "" })
	case identity.RoleSuperAdmin:
		return append([]report.Report{}, reports...)
	default:
		return nil
	}
}

// VisibleUsers backs the admin-management screen: only the super-admin sees
// the user list.
func VisibleUsers(user identity.User, users []identity.User) []identity.User {
	if user.Role != identity.RoleSuperAdmin {
		return nil
	}
	return append([]identity.User{}, users...)
}

// Stats are the super-admin dashboard counters.
type Stats struct {
	Total          int `json:"total"`
	Pending        int `json:"pending"`
	InProgress     int `json:"inProgress"`
	Resolved       int `json:"resolved"`
	UnknownCollege int `json:"unknownCollege"`
}

func Summarize(reports []report.Report) Stats {
	s := Stats{Total: len(reports)}
	for _, r := range reports {
		switch r.Status {
		case report.StatusPending:
			s.Pending++
		case report.StatusInProgress:
			s.InProgress++
		case report.StatusResolved:
			s.Resolved++
		}
		if r.College == domain.CollegeUnknown {
			s.UnknownCollege++
		}
	}
	return s
}

func filter(reports []report.Report, keep func(report.Report) bool) []report.Report {
	out := []report.Report{}
	for _, r := range reports {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
