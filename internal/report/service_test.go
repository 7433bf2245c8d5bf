package report

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"campusreport/internal/domain"
	"campusreport/internal/identity"
	"campusreport/internal/storage"
	"campusreport/pkg/domainerrors"
	"campusreport/pkg/requestcontext"
)

type RepositorySuite struct {
	suite.Suite
	repo *Repository
}

func (s *RepositorySuite) SetupTest() {
	logger := slog.New(slog.DiscardHandler)
	store, err := NewStore(context.Background(), storage.NewInMemory(), logger)
	s.Require().NoError(err)
	s.repo = NewRepository(store, nil, nil, logger)
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

var (
	student = identity.User{ID: "student-1", Role: identity.RoleStudent}
	admin   = identity.User{ID: "admin-1", Role: identity.RoleAdmin, College: domain.CollegeCAS}
	super   = identity.User{ID: "1", Role: identity.RoleSuperAdmin}
)

func validInput() Input {
	return Input{
		Location:    Location{Lat: 14.19, Lng: 120.88},
		ImageURIs:   []string{"file:///img0.jpg"},
		Description: "broken railing",
		College:     domain.CollegeCAS,
		Category:    "facilities",
		Urgency:     UrgencyHigh,
	}
}

func (s *RepositorySuite) TestAdd() {
	ctx := context.Background()

	s.Run("assigns a fresh id, pending status, and submission time", func() {
		now := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
		rec, err := s.repo.Add(requestcontext.WithTime(ctx, now), student, validInput())
		s.Require().NoError(err)
		s.NotEmpty(rec.ID)
		s.Equal(StatusPending, rec.Status)
		s.Equal(now, rec.Date)
		s.Equal(student.ID, rec.StudentID)
	})

	s.Run("round-trip: the new report appears in the list with a unique id", func() {
		first, err := s.repo.Add(ctx, student, validInput())
		s.Require().NoError(err)
		second, err := s.repo.Add(ctx, student, validInput())
		s.Require().NoError(err)
		s.NotEqual(first.ID, second.ID)

		ids := map[string]bool{}
		for _, r := range s.repo.List() {
			s.False(ids[r.ID], "duplicate id %s", r.ID)
			ids[r.ID] = true
		}
		s.True(ids[first.ID])
		s.True(ids[second.ID])
	})

	s.Run("empty college defaults to the unknown sentinel", func() {
		input := validInput()
		input.College = ""
		rec, err := s.repo.Add(ctx, student, input)
		s.Require().NoError(err)
		s.Equal(domain.CollegeUnknown, rec.College)
	})

	s.Run("non-students are forbidden", func() {
		_, err := s.repo.Add(ctx, admin, validInput())
		s.True(domainerrors.HasCode(err, domainerrors.CodeForbidden))
		_, err = s.repo.Add(ctx, super, validInput())
		s.True(domainerrors.HasCode(err, domainerrors.CodeForbidden))
	})

	s.Run("image count is bounded to 1..5", func() {
		input := validInput()
		input.ImageURIs = nil
		_, err := s.repo.Add(ctx, student, input)
		s.True(domainerrors.HasCode(err, domainerrors.CodeBadRequest))

		input.ImageURIs = []string{"a", "b", "c", "d", "e", "f"}
		_, err = s.repo.Add(ctx, student, input)
		s.True(domainerrors.HasCode(err, domainerrors.CodeBadRequest))
	})
}

func (s *RepositorySuite) TestUpdateStatus() {
	ctx := context.Background()
	rec, err := s.repo.Add(ctx, student, validInput())
	s.Require().NoError(err)

	s.Run("admin overwrites status", func() {
		s.Require().NoError(s.repo.UpdateStatus(ctx, admin, rec.ID, StatusInProgress))
		got, ok := s.repo.Get(rec.ID)
		s.Require().True(ok)
		s.Equal(StatusInProgress, got.Status)
	})

	s.Run("repeating the same status is idempotent", func() {
		s.Require().NoError(s.repo.UpdateStatus(ctx, admin, rec.ID, StatusResolved))
		once, _ := s.repo.Get(rec.ID)
		s.Require().NoError(s.repo.UpdateStatus(ctx, admin, rec.ID, StatusResolved))
		twice, _ := s.repo.Get(rec.ID)
		s.Equal(once, twice)
	})

	s.Run("backward transitions are permitted by the store", func() {
		s.Require().NoError(s.repo.UpdateStatus(ctx, super, rec.ID, StatusPending))
		got, _ := s.repo.Get(rec.ID)
		s.Equal(StatusPending, got.Status)
	})

	s.Run("students are forbidden", func() {
		err := s.repo.UpdateStatus(ctx, student, rec.ID, StatusResolved)
		s.True(domainerrors.HasCode(err, domainerrors.CodeForbidden))
	})

	s.Run("missing id is an explicit not-found, not a silent no-op", func() {
		err := s.repo.UpdateStatus(ctx, admin, "ghost", StatusResolved)
		s.True(domainerrors.HasCode(err, domainerrors.CodeNotFound))
	})
}

func (s *RepositorySuite) TestUpdateCollege() {
	ctx := context.Background()
	input := validInput()
	input.College = ""
	rec, err := s.repo.Add(ctx, student, input)
	s.Require().NoError(err)

	s.Run("reassigns an unknown-college report", func() {
		s.Require().NoError(s.repo.UpdateCollege(ctx, super, rec.ID, domain.CollegeCEIT))
		got, _ := s.repo.Get(rec.ID)
		s.Equal(domain.CollegeCEIT, got.College)
	})

	s.Run("rejects codes outside the enumeration", func() {
		err := s.repo.UpdateCollege(ctx, super, rec.ID, "NOPE")
		s.True(domainerrors.HasCode(err, domainerrors.CodeBadRequest))
	})

	s.Run("missing id is not found", func() {
		err := s.repo.UpdateCollege(ctx, super, "ghost", domain.CollegeCAS)
		s.True(domainerrors.HasCode(err, domainerrors.CodeNotFound))
	})
}
