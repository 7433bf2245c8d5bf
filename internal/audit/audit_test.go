package audit

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"campusreport/pkg/requestcontext"
)

type AuditSuite struct {
	suite.Suite
	logger *slog.Logger
}

func (s *AuditSuite) SetupTest() {
	s.logger = slog.New(slog.DiscardHandler)
}

func TestAuditSuite(t *testing.T) {
	suite.Run(t, new(AuditSuite))
}

func (s *AuditSuite) TestPublisherStampsEvents() {
	inbox := make(chan Event, 1)
	pub := NewPublisher(inbox, s.logger)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithUserID(ctx, "user-1")
	ctx = requestcontext.WithDeviceName(ctx, "Chrome on Mac OS X")

	pub.Emit(ctx, Event{Action: ActionUserLogin, Subject: "user-1"})

	got := <-inbox
	s.NotEmpty(got.ID)
	s.Equal("user-1", got.ActorID)
	s.Equal("Chrome on Mac OS X", got.Device)
	s.Equal(now, got.Timestamp)
}

func (s *AuditSuite) TestPublisherDropsWhenInboxFull() {
	inbox := make(chan Event, 1)
	pub := NewPublisher(inbox, s.logger)

	pub.Emit(context.Background(), Event{Action: ActionUserLogin})
	pub.Emit(context.Background(), Event{Action: ActionUserLogout}) // must not block
	s.Len(inbox, 1)
}

func (s *AuditSuite) TestWorkerPersistsUntilCancelled() {
	inbox := make(chan Event, 4)
	store := NewInMemoryStore()
	worker := NewWorker(store, inbox, s.logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	inbox <- Event{ID: "e1", Action: ActionReportCreated, ActorID: "student-1"}
	inbox <- Event{ID: "e2", Action: ActionReportStatusChanged, ActorID: "admin-1"}

	s.Eventually(func() bool {
		return len(store.All()) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	s.ErrorIs(<-done, context.Canceled)

	byActor, err := store.ListByActor(context.Background(), "student-1")
	s.Require().NoError(err)
	s.Len(byActor, 1)
	s.Equal("e1", byActor[0].ID)
}
