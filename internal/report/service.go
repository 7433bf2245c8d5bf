package report

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"campusreport/internal/audit"
	"campusreport/internal/domain"
	"campusreport/internal/identity"
	reportmetrics "campusreport/internal/report/metrics"
	"campusreport/pkg/domainerrors"
	"campusreport/pkg/platform/sentinel"
	"campusreport/pkg/requestcontext"
)

const maxImages = 5

var tracer = otel.Tracer("campusreport/internal/report")

// Repository owns the report list. Role checks live here: students submit,
// admins and the super-admin mutate. A missing ID on update is an explicit
// not-found error, never a silent no-op.
type Repository struct {
	store   *Store
	auditor *audit.Publisher
	metrics *reportmetrics.Metrics
	logger  *slog.Logger
}

func NewRepository(store *Store, auditor *audit.Publisher, metrics *reportmetrics.Metrics, logger *slog.Logger) *Repository {
	return &Repository{store: store, auditor: auditor, metrics: metrics, logger: logger}
}

// Add creates a report for the acting student: fresh ID, pending status,
// submission time from the request context.
func (r *Repository) Add(ctx context.Context, acting identity.User, input Input) (Report, error) {
	ctx, span := tracer.Start(ctx, "report.Add")
	defer span.End()

	if acting.Role != identity.RoleStudent {
		return Report{}, domainerrors.New(domainerrors.CodeForbidden, "only students submit reports")
	}
	if err := validateInput(input); err != nil {
		return Report{}, err
	}

	college := input.College
	if college == "" {
		college = domain.CollegeUnknown
	}

	rec := Report{
		ID:          uuid.NewString(),
		StudentID:   acting.ID,
		Location:    input.Location,
		ImageURIs:   append([]string{}, input.ImageURIs...),
		Date:        requestcontext.Now(ctx),
		Description: input.Description,
		Status:      StatusPending,
		College:     college,
		Category:    input.Category,
		Urgency:     input.Urgency,
	}

	if err := r.persistAppend(ctx, span, rec); err != nil {
		return Report{}, err
	}

	r.emit(ctx, audit.Event{Action: audit.ActionReportCreated, ActorID: acting.ID, Subject: rec.ID})
	if r.metrics != nil {
		r.metrics.ReportsCreated.Inc()
	}
	r.logger.Info("report submitted", "report_id", rec.ID, "college", rec.College, "urgency", rec.Urgency)
	return rec, nil
}

// UpdateStatus overwrites the status of an existing report. Any transition is
// permitted, including a repeat of the current status.
func (r *Repository) UpdateStatus(ctx context.Context, acting identity.User, id string, status Status) error {
	ctx, span := tracer.Start(ctx, "report.UpdateStatus")
	defer span.End()

	if err := requireReviewer(acting); err != nil {
		return err
	}
	if !status.Valid() {
		return domainerrors.New(domainerrors.CodeBadRequest, "unknown status")
	}

	if err := r.mutate(ctx, span, id, func(rec *Report) { rec.Status = status }); err != nil {
		return err
	}

	r.emit(ctx, audit.Event{
		Action: audit.ActionReportStatusChanged, ActorID: acting.ID,
		Subject: id, Detail: string(status),
	})
	if r.metrics != nil {
		r.metrics.StatusUpdates.WithLabelValues(string(status)).Inc()
	}
	return nil
}

// UpdateCollege reassigns a report, the administrative correction for records
// submitted under the unknown sentinel.
func (r *Repository) UpdateCollege(ctx context.Context, acting identity.User, id string, college domain.College) error {
	ctx, span := tracer.Start(ctx, "report.UpdateCollege")
	defer span.End()

	if err := requireReviewer(acting); err != nil {
		return err
	}
	if !college.Valid() {
		return domainerrors.New(domainerrors.CodeBadRequest, "unknown college")
	}

	if err := r.mutate(ctx, span, id, func(rec *Report) { rec.College = college }); err != nil {
		return err
	}

	r.emit(ctx, audit.Event{
		Action: audit.ActionReportCollegeChanged, ActorID: acting.ID,
		Subject: id, Detail: string(college),
	})
	return nil
}

// List returns the full report list; role scoping is the view package's job.
func (r *Repository) List() []Report {
	return r.store.List()
}

func (r *Repository) Get(id string) (Report, bool) {
	return r.store.FindByID(id)
}

func (r *Repository) persistAppend(ctx context.Context, span trace.Span, rec Report) error {
	start := time.Now()
	err := r.store.Append(ctx, rec)
	r.observePersist(start)
	if err != nil {
		span.RecordError(err)
		r.logger.Error("persist report list", "error", err)
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "persist report list")
	}
	return nil
}

func (r *Repository) mutate(ctx context.Context, span trace.Span, id string, fn func(*Report)) error {
	start := time.Now()
	err := r.store.Mutate(ctx, id, fn)
	r.observePersist(start)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domainerrors.New(domainerrors.CodeNotFound, "report not found")
		}
		span.RecordError(err)
		r.logger.Error("persist report list", "error", err)
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "persist report list")
	}
	return nil
}

func (r *Repository) observePersist(start time.Time) {
	if r.metrics != nil {
		r.metrics.PersistSeconds.Observe(time.Since(start).Seconds())
	}
}

func (r *Repository) emit(ctx context.Context, event audit.Event) {
	if r.auditor != nil {
		r.auditor.Emit(ctx, event)
	}
}

func validateInput(input Input) error {
	if input.Description == "" {
		return domainerrors.New(domainerrors.CodeBadRequest, "description is required")
	}
	if len(input.ImageURIs) == 0 || len(input.ImageURIs) > maxImages {
		return domainerrors.New(domainerrors.CodeBadRequest, "between 1 and 5 images required")
	}
	if !input.Urgency.Valid() {
		return domainerrors.New(domainerrors.CodeBadRequest, "unknown urgency")
	}
	if input.College != "" && !input.College.Valid() {
		return domainerrors.New(domainerrors.CodeBadRequest, "unknown college")
	}
	return nil
}

func requireReviewer(acting identity.User) error {
	if acting.Role == identity.RoleStudent {
		return domainerrors.New(domainerrors.CodeForbidden, "students cannot modify reports")
	}
	if !acting.Role.Valid() {
		return domainerrors.New(domainerrors.CodeForbidden, "authenticated role required")
	}
	return nil
}
