package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"campusreport/pkg/requestcontext"
)

// Publisher hands events to the worker inbox without blocking callers. A full
// inbox drops the event and logs; audit must never stall a user action.
type Publisher struct {
	inbox  chan<- Event
	logger *slog.Logger
}

func NewPublisher(inbox chan<- Event, logger *slog.Logger) *Publisher {
	return &Publisher{inbox: inbox, logger: logger}
}

// Emit stamps identity and time, then enqueues. The actor and device are read
// from the context when not set explicitly.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.ActorID == "" {
		event.ActorID = requestcontext.UserID(ctx)
	}
	if event.Device == "" {
		event.Device = requestcontext.DeviceName(ctx)
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}

	select {
	case p.inbox <- event:
	default:
		p.logger.Warn("audit inbox full, dropping event",
			"action", event.Action, "subject", event.Subject)
	}
}
