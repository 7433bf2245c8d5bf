// Package audit records who did what to the campus report data. Events are
// append-only; nothing in the application reads them on the hot path.
package audit

import "time"

// Action names follow feature.verb so dashboards can group by prefix.
type Action string

const (
	ActionUserLogin            Action = "user.login"
	ActionUserLogout           Action = "user.logout"
	ActionUserRegistered       Action = "user.registered"
	ActionAdminCreated         Action = "admin.created"
	ActionAdminUpdated         Action = "admin.updated"
	ActionAdminDeleted         Action = "admin.deleted"
	ActionReportCreated        Action = "report.created"
	ActionReportStatusChanged  Action = "report.status_changed"
	ActionReportCollegeChanged Action = "report.college_changed"
)

// Event is one audit record. ActorID is the acting user, Subject the affected
// record (a user or report ID). Device is the parsed user-agent display name
// when the action arrived over HTTP.
type Event struct {
	ID        string
	Action    Action
	ActorID   string
	Subject   string
	Device    string
	Detail    string
	Timestamp time.Time
}
