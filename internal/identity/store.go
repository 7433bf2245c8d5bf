package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"campusreport/internal/storage"
	"campusreport/pkg/platform/sentinel"
)

// SeedSuperAdminID is the fixed ID of the bootstrap account created on first
// run, matching previously persisted data.
const SeedSuperAdminID = "1"

// UserStore mirrors the user list and the current-user pointer in memory and
// writes through to the blob store on every mutation. The mirror is the fast
// path; the blob store is durability only.
type UserStore struct {
	mu      sync.RWMutex
	blobs   storage.BlobStore
	logger  *slog.Logger
	users   []User
	current *User
}

// NewUserStore loads both keys, seeding a single super-admin when no user
// list exists yet. Unreadable blobs are logged and treated as absent so a
// corrupt store never prevents startup.
func NewUserStore(ctx context.Context, blobs storage.BlobStore, superAdminEmail string, logger *slog.Logger) (*UserStore, error) {
	s := &UserStore{blobs: blobs, logger: logger}

	users, ok := s.loadUsers(ctx)
	if !ok {
		seed := User{ID: SeedSuperAdminID, Email: superAdminEmail, Role: RoleSuperAdmin}
		users = []User{seed}
		if err := s.persistUsers(ctx, users); err != nil {
			return nil, fmt.Errorf("persist seed super-admin: %w", err)
		}
		logger.Info("seeded super-admin", "email", superAdminEmail)
	}
	s.users = users

	s.current = s.loadCurrent(ctx)
	return s, nil
}

func (s *UserStore) loadUsers(ctx context.Context) ([]User, bool) {
	blob, ok, err := s.blobs.Get(ctx, storage.KeyUsers)
	if err != nil {
		s.logger.Warn("could not read user list, falling back to seed", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var users []User
	if err := json.Unmarshal(blob, &users); err != nil {
		s.logger.Warn("corrupt user list, falling back to seed", "error", err)
		return nil, false
	}
	return users, true
}

func (s *UserStore) loadCurrent(ctx context.Context) *User {
	blob, ok, err := s.blobs.Get(ctx, storage.KeyCurrentUser)
	if err != nil || !ok {
		if err != nil {
			s.logger.Warn("could not restore session pointer", "error", err)
		}
		return nil
	}
	var u User
	if err := json.Unmarshal(blob, &u); err != nil {
		s.logger.Warn("corrupt session pointer, starting anonymous", "error", err)
		return nil
	}
	return &u
}

func (s *UserStore) persistUsers(ctx context.Context, users []User) error {
	blob, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode user list: %w", err)
	}
	return s.blobs.Set(ctx, storage.KeyUsers, blob)
}

// List returns a copy of the user list.
func (s *UserStore) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]User{}, s.users...)
}

// FindByEmailRole matches exactly on the (email, role) pair, the lookup login
// uses.
func (s *UserStore) FindByEmailRole(email string, role Role) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email && u.Role == role {
			return u, true
		}
	}
	return User{}, false
}

func (s *UserStore) FindByID(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// Append adds a user and persists the list before returning.
func (s *UserStore) Append(ctx context.Context, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(append([]User{}, s.users...), user)
	if err := s.persistUsers(ctx, next); err != nil {
		return err
	}
	s.users = next
	return nil
}

// Update replaces the stored user with the same ID.
func (s *UserStore) Update(ctx context.Context, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := append([]User{}, s.users...)
	found := false
	for i := range next {
		if next[i].ID == user.ID {
			next[i] = user
			found = true
			break
		}
	}
	if !found {
		return sentinel.ErrNotFound
	}
	if err := s.persistUsers(ctx, next); err != nil {
		return err
	}
	s.users = next
	return nil
}

// Delete removes the user by ID.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]User, 0, len(s.users))
	found := false
	for _, u := range s.users {
		if u.ID == id {
			found = true
			continue
		}
		next = append(next, u)
	}
	if !found {
		return sentinel.ErrNotFound
	}
	if err := s.persistUsers(ctx, next); err != nil {
		return err
	}
	s.users = next
	return nil
}

// Current returns the restored or live session pointer.
func (s *UserStore) Current() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return User{}, false
	}
	return *s.current, true
}

// SetCurrent persists the session pointer before updating the mirror.
func (s *UserStore) SetCurrent(ctx context.Context, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session pointer: %w", err)
	}
	if err := s.blobs.Set(ctx, storage.KeyCurrentUser, blob); err != nil {
		return err
	}
	s.current = &user
	return nil
}

// ClearCurrent removes the persisted pointer; always succeeds in memory.
func (s *UserStore) ClearCurrent(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.blobs.Remove(ctx, storage.KeyCurrentUser); err != nil {
		return err
	}
	s.current = nil
	return nil
}
