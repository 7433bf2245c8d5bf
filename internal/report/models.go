// Package report owns incident records: creation, status transitions, and
// college reassignment.
package report

import (
	"time"

	"campusreport/internal/domain"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Report is one submitted incident. JSON field names are the compatibility
// surface with previously persisted blobs; do not rename.
//
// The store permits any status transition; the forward-only progression is a
// UI convention, not an invariant.
type Report struct {
	ID          string         `json:"id"`
	StudentID   string         `json:"studentId"`
	Location    Location       `json:"location"`
	ImageURIs   []string       `json:"imageUris"`
	Date        time.Time      `json:"date"`
	Description string         `json:"description"`
	Status      Status         `json:"status"`
	College     domain.College `json:"college"`
	Category    string         `json:"category"`
	Urgency     Urgency        `json:"urgency"`
}

// Input is what a student submits; ID, status, and date are assigned by the
// repository.
type Input struct {
	Location    Location
	ImageURIs   []string
	Description string
	College     domain.College
	Category    string
	Urgency     Urgency
}

// storedReport adds the legacy single-image field so loads can migrate
// records written before multi-image support.
type storedReport struct {
	Report
	LegacyImageURI string `json:"imageUri,omitempty"`
}
