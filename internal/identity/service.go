package identity

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"campusreport/internal/audit"
	"campusreport/internal/credential"
	"campusreport/internal/domain"
	identitymetrics "campusreport/internal/identity/metrics"
	"campusreport/pkg/domainerrors"
	"campusreport/pkg/platform/sentinel"
)

var tracer = otel.Tracer("campusreport/internal/identity")

// Manager is the identity and session state machine: Anonymous or
// Authenticated(role). Every mutating transition persists the affected keys
// before returning, so callers may assume durability on success.
//
// Capability checks live here, not in callers: admin lifecycle operations
// verify the acting user themselves.
type Manager struct {
	users   *UserStore
	hasher  credential.Hasher
	domain  string
	auditor *audit.Publisher
	metrics *identitymetrics.Metrics
	logger  *slog.Logger
}

func NewManager(users *UserStore, hasher credential.Hasher, institutionDomain string,
	auditor *audit.Publisher, metrics *identitymetrics.Metrics, logger *slog.Logger) *Manager {
	return &Manager{
		users:   users,
		hasher:  hasher,
		domain:  institutionDomain,
		auditor: auditor,
		metrics: metrics,
		logger:  logger,
	}
}

// CurrentUser returns the restored or live session pointer.
func (m *Manager) CurrentUser() (User, bool) {
	return m.users.Current()
}

// Login authenticates against the exact (email, role) pair. A stored digest
// makes the password mandatory. Students must use an institutional address.
func (m *Manager) Login(ctx context.Context, email string, role Role, password string) (User, error) {
	ctx, span := tracer.Start(ctx, "identity.Login")
	defer span.End()

	if !role.Valid() {
		return User{}, domainerrors.New(domainerrors.CodeBadRequest, "unknown role")
	}
	if role == RoleStudent && !credential.IsInstitutionalEmail(email, m.domain) {
		return User{}, domainerrors.New(domainerrors.CodeInvalidEmail, "students must use an institutional email")
	}

	user, ok := m.users.FindByEmailRole(email, role)
	if !ok {
		m.countLoginFailure()
		return User{}, domainerrors.New(domainerrors.CodeInvalidCredentials, "invalid credentials")
	}

	if user.HasPassword() {
		if m.hasher == nil {
			return User{}, domainerrors.New(domainerrors.CodeMissingDependency, "no digest algorithm configured")
		}
		if password == "" || !m.hasher.Verify(password, user.PasswordDigest) {
			m.countLoginFailure()
			return User{}, domainerrors.New(domainerrors.CodeInvalidCredentials, "invalid credentials")
		}
	}

	if err := m.users.SetCurrent(ctx, user); err != nil {
		return User{}, m.persistErr(span, err, "persist session")
	}

	m.emit(ctx, audit.Event{Action: audit.ActionUserLogin, ActorID: user.ID, Subject: user.ID})
	if m.metrics != nil {
		m.metrics.Logins.WithLabelValues(string(user.Role)).Inc()
	}
	m.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Logout transitions to Anonymous unconditionally and clears the persisted
// pointer.
func (m *Manager) Logout(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "identity.Logout")
	defer span.End()

	current, had := m.users.Current()
	if err := m.users.ClearCurrent(ctx); err != nil {
		return m.persistErr(span, err, "clear session")
	}
	if had {
		m.emit(ctx, audit.Event{Action: audit.ActionUserLogout, ActorID: current.ID, Subject: current.ID})
	}
	return nil
}

// Register creates a student account and makes it the current session. On any
// failure no user or session state changes.
func (m *Manager) Register(ctx context.Context, email, password string, opts RegisterOptions) (User, error) {
	ctx, span := tracer.Start(ctx, "identity.Register")
	defer span.End()

	if !credential.IsInstitutionalEmail(email, m.domain) {
		return User{}, domainerrors.New(domainerrors.CodeInvalidEmail, "email must end in "+m.domain)
	}

	digest, err := m.digest(password)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:             uuid.NewString(),
		Email:          email,
		Role:           RoleStudent,
		PasswordDigest: digest,
		Name:           opts.Name,
		StudentID:      opts.StudentID,
		College:        opts.College,
	}

	if err := m.users.Append(ctx, user); err != nil {
		return User{}, m.persistErr(span, err, "persist user list")
	}
	if err := m.users.SetCurrent(ctx, user); err != nil {
		return User{}, m.persistErr(span, err, "persist session")
	}

	m.emit(ctx, audit.Event{Action: audit.ActionUserRegistered, ActorID: user.ID, Subject: user.ID})
	if m.metrics != nil {
		m.metrics.Registrations.Inc()
	}
	m.logger.Info("student registered", "user_id", user.ID)
	return user, nil
}

// CreateAdmin creates an admin scoped to a college. Only a super-admin may
// call it; the current session is left untouched.
func (m *Manager) CreateAdmin(ctx context.Context, acting User, email string, college domain.College, password string) (User, error) {
	ctx, span := tracer.Start(ctx, "identity.CreateAdmin")
	defer span.End()

	if err := requireSuperAdmin(acting); err != nil {
		return User{}, err
	}
	if email == "" {
		return User{}, domainerrors.New(domainerrors.CodeBadRequest, "email is required")
	}
	if !college.Valid() {
		return User{}, domainerrors.New(domainerrors.CodeBadRequest, "unknown college")
	}

	digest, err := m.digest(password)
	if err != nil {
		return User{}, err
	}

	admin := User{
		ID:             uuid.NewString(),
		Email:          email,
		Role:           RoleAdmin,
		PasswordDigest: digest,
		College:        college,
	}

	if err := m.users.Append(ctx, admin); err != nil {
		return User{}, m.persistErr(span, err, "persist user list")
	}

	m.emit(ctx, audit.Event{Action: audit.ActionAdminCreated, ActorID: acting.ID, Subject: admin.ID})
	if m.metrics != nil {
		m.metrics.AdminsCreated.Inc()
	}
	return admin, nil
}

// EditAdmin applies a partial update: email and college only when non-empty,
// password re-hashed when provided. Editing the session user refreshes the
// persisted pointer in place.
func (m *Manager) EditAdmin(ctx context.Context, acting User, id string, update AdminUpdate) (User, error) {
	ctx, span := tracer.Start(ctx, "identity.EditAdmin")
	defer span.End()

	if err := requireSuperAdmin(acting); err != nil {
		return User{}, err
	}

	user, ok := m.users.FindByID(id)
	if !ok {
		return User{}, domainerrors.New(domainerrors.CodeNotFound, "user not found")
	}

	if update.Email != "" {
		user.Email = update.Email
	}
	if update.College != "" {
		if !update.College.Valid() {
			return User{}, domainerrors.New(domainerrors.CodeBadRequest, "unknown college")
		}
		user.College = update.College
	}
	if update.Password != "" {
		digest, err := m.digest(update.Password)
		if err != nil {
			return User{}, err
		}
		user.PasswordDigest = digest
	}

	if err := m.users.Update(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return User{}, domainerrors.New(domainerrors.CodeNotFound, "user not found")
		}
		return User{}, m.persistErr(span, err, "persist user list")
	}

	if current, ok := m.users.Current(); ok && current.ID == id {
		if err := m.users.SetCurrent(ctx, user); err != nil {
			return User{}, m.persistErr(span, err, "refresh session")
		}
	}

	m.emit(ctx, audit.Event{Action: audit.ActionAdminUpdated, ActorID: acting.ID, Subject: id})
	return user, nil
}

// DeleteAdmin removes the user by ID. Deleting the session user forces an
// implicit logout.
func (m *Manager) DeleteAdmin(ctx context.Context, acting User, id string) error {
	ctx, span := tracer.Start(ctx, "identity.DeleteAdmin")
	defer span.End()

	if err := requireSuperAdmin(acting); err != nil {
		return err
	}

	if err := m.users.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domainerrors.New(domainerrors.CodeNotFound, "user not found")
		}
		return m.persistErr(span, err, "persist user list")
	}

	if current, ok := m.users.Current(); ok && current.ID == id {
		if err := m.users.ClearCurrent(ctx); err != nil {
			return m.persistErr(span, err, "clear session")
		}
	}

	m.emit(ctx, audit.Event{Action: audit.ActionAdminDeleted, ActorID: acting.ID, Subject: id})
	return nil
}

// Users returns the full user list for the authorization view.
func (m *Manager) Users() []User {
	return m.users.List()
}

// FindUser resolves an ID to its live user record, for callers that carry
// identity out-of-band (the HTTP adapter's bearer tokens).
func (m *Manager) FindUser(id string) (User, bool) {
	return m.users.FindByID(id)
}

func (m *Manager) digest(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	if m.hasher == nil {
		return "", domainerrors.New(domainerrors.CodeMissingDependency, "no digest algorithm configured")
	}
	return m.hasher.Hash(password)
}

func (m *Manager) emit(ctx context.Context, event audit.Event) {
	if m.auditor != nil {
		m.auditor.Emit(ctx, event)
	}
}

func (m *Manager) countLoginFailure() {
	if m.metrics != nil {
		m.metrics.LoginFailures.Inc()
	}
}

func (m *Manager) persistErr(span trace.Span, err error, message string) error {
	span.RecordError(err)
	m.logger.Error(message, "error", err)
	return domainerrors.Wrap(err, domainerrors.CodeInternal, message)
}

func requireSuperAdmin(acting User) error {
	if acting.Role != RoleSuperAdmin {
		return domainerrors.New(domainerrors.CodeForbidden, "super-admin role required")
	}
	return nil
}
