package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"campusreport/internal/storage"
	"campusreport/pkg/platform/sentinel"
)

// Store mirrors the report list in memory and writes through to the blob
// store on every mutation, same contract as the identity store.
type Store struct {
	mu      sync.RWMutex
	blobs   storage.BlobStore
	logger  *slog.Logger
	reports []Report
}

// NewStore loads and migrates the report list. Records persisted before
// multi-image support carry a single imageUri; they are rewritten to a
// one-element imageUris, and records with neither field get an empty list.
// The migrated list is written back once so the migration never runs twice.
// An unreadable blob is logged and treated as empty.
func NewStore(ctx context.Context, blobs storage.BlobStore, logger *slog.Logger) (*Store, error) {
	s := &Store{blobs: blobs, logger: logger}

	blob, ok, err := blobs.Get(ctx, storage.KeyReports)
	if err != nil {
		logger.Warn("could not read report list, starting empty", "error", err)
		return s, nil
	}
	if !ok {
		return s, nil
	}

	var stored []storedReport
	if err := json.Unmarshal(blob, &stored); err != nil {
		logger.Warn("corrupt report list, starting empty", "error", err)
		return s, nil
	}

	reports := make([]Report, 0, len(stored))
	migrated := false
	for _, sr := range stored {
		r := sr.Report
		if r.ImageURIs == nil {
			migrated = true
			if sr.LegacyImageURI != "" {
				r.ImageURIs = []string{sr.LegacyImageURI}
			} else {
				r.ImageURIs = []string{}
			}
		}
		reports = append(reports, r)
	}
	s.reports = reports

	if migrated {
		if err := s.persist(ctx, reports); err != nil {
			return nil, fmt.Errorf("write back migrated reports: %w", err)
		}
		logger.Info("migrated legacy report records", "count", len(reports))
	}
	return s, nil
}

func (s *Store) persist(ctx context.Context, reports []Report) error {
	blob, err := json.Marshal(reports)
	if err != nil {
		return fmt.Errorf("encode report list: %w", err)
	}
	return s.blobs.Set(ctx, storage.KeyReports, blob)
}

// List returns a copy of the report list.
func (s *Store) List() []Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Report{}, s.reports...)
}

func (s *Store) FindByID(id string) (Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reports {
		if r.ID == id {
			return r, true
		}
	}
	return Report{}, false
}

// Append adds a report and persists the list before returning.
func (s *Store) Append(ctx context.Context, report Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(append([]Report{}, s.reports...), report)
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.reports = next
	return nil
}

// Mutate applies fn to the report with the given ID and persists the result.
// Returns sentinel.ErrNotFound when the ID is absent.
func (s *Store) Mutate(ctx context.Context, id string, fn func(*Report)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := append([]Report{}, s.reports...)
	found := false
	for i := range next {
		if next[i].ID == id {
			fn(&next[i])
			found = true
			break
		}
	}
	if !found {
		return sentinel.ErrNotFound
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.reports = next
	return nil
}
