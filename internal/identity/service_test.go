package identity

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"campusreport/internal/credential"
	"campusreport/internal/domain"
	"campusreport/internal/storage"
	"campusreport/pkg/domainerrors"
)

type ManagerSuite struct {
	suite.Suite
	blobs   *storage.InMemory
	store   *UserStore
	manager *Manager
}

func (s *ManagerSuite) SetupTest() {
	s.blobs = storage.NewInMemory()
	logger := slog.New(slog.DiscardHandler)
	store, err := NewUserStore(context.Background(), s.blobs, testSuperAdminEmail, logger)
	s.Require().NoError(err)
	s.store = store
	s.manager = NewManager(store, credential.SHA256Hasher{}, "@cvsu.edu.ph", nil, nil, logger)
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) superAdmin() User {
	u, ok := s.store.FindByID(SeedSuperAdminID)
	s.Require().True(ok)
	return u
}

func (s *ManagerSuite) TestLogin() {
	ctx := context.Background()

	s.Run("seed super-admin logs in with no password", func() {
		user, err := s.manager.Login(ctx, testSuperAdminEmail, RoleSuperAdmin, "")
		s.Require().NoError(err)
		s.Equal(SeedSuperAdminID, user.ID)

		current, ok := s.manager.CurrentUser()
		s.Require().True(ok)
		s.Equal(user, current)
	})

	s.Run("unknown identity fails with invalid credentials", func() {
		_, err := s.manager.Login(ctx, "nobody@cvsu.edu.ph", RoleStudent, "")
		s.True(domainerrors.HasCode(err, domainerrors.CodeInvalidCredentials))
	})

	s.Run("matching email under the wrong role fails", func() {
		_, err := s.manager.Login(ctx, testSuperAdminEmail, RoleAdmin, "")
		s.True(domainerrors.HasCode(err, domainerrors.CodeInvalidCredentials))
	})

	s.Run("student with non-institutional email is rejected before lookup", func() {
		_, err := s.manager.Login(ctx, "student@gmail.com", RoleStudent, "")
		s.True(domainerrors.HasCode(err, domainerrors.CodeInvalidEmail))
	})

	s.Run("password-protected account requires the right password", func() {
		registered, err := s.manager.Register(ctx, "student1@cvsu.edu.ph", "secret", RegisterOptions{})
		s.Require().NoError(err)
		s.Require().NoError(s.manager.Logout(ctx))

		user, err := s.manager.Login(ctx, "student1@cvsu.edu.ph", RoleStudent, "secret")
		s.Require().NoError(err)
		s.Equal(registered.ID, user.ID)

		_, err = s.manager.Login(ctx, "student1@cvsu.edu.ph", RoleStudent, "wrong")
		s.True(domainerrors.HasCode(err, domainerrors.CodeInvalidCredentials))

		_, err = s.manager.Login(ctx, "student1@cvsu.edu.ph", RoleStudent, "")
		s.True(domainerrors.HasCode(err, domainerrors.CodeInvalidCredentials))
	})

	s.Run("session matches the stored user record exactly", func() {
		user, err := s.manager.Login(ctx, testSuperAdminEmail, RoleSuperAdmin, "")
		s.Require().NoError(err)
		stored, ok := s.store.FindByEmailRole(testSuperAdminEmail, RoleSuperAdmin)
		s.Require().True(ok)
		s.Equal(stored, user)
	})
}

func (s *ManagerSuite) TestLogout() {
	ctx := context.Background()
	_, err := s.manager.Login(ctx, testSuperAdminEmail, RoleSuperAdmin, "")
	s.Require().NoError(err)

	s.Require().NoError(s.manager.Logout(ctx))
	_, ok := s.manager.CurrentUser()
	s.False(ok)

	// Logging out while anonymous is still fine.
	s.Require().NoError(s.manager.Logout(ctx))
}

func (s *ManagerSuite) TestRegister() {
	ctx := context.Background()

	s.Run("non-institutional email fails and changes no state", func() {
		before := len(s.store.List())
		_, err := s.manager.Register(ctx, "someone@gmail.com", "pw", RegisterOptions{})
		s.True(domainerrors.HasCode(err, domainerrors.CodeInvalidEmail))
		s.Len(s.store.List(), before)
		_, ok := s.manager.CurrentUser()
		s.False(ok)
	})

	s.Run("successful registration creates a student and becomes the session", func() {
		user, err := s.manager.Register(ctx, "student1@cvsu.edu.ph", "secret", RegisterOptions{
			Name: "Jane", StudentID: "2026-0001", College: domain.CollegeCAS,
		})
		s.Require().NoError(err)
		s.Equal(RoleStudent, user.Role)
		s.NotEmpty(user.ID)
		s.True(user.HasPassword())
		s.NotEqual("secret", user.PasswordDigest)

		current, ok := s.manager.CurrentUser()
		s.Require().True(ok)
		s.Equal(user.ID, current.ID)
	})

	s.Run("registration without a password stores no digest", func() {
		user, err := s.manager.Register(ctx, "student2@cvsu.edu.ph", "", RegisterOptions{})
		s.Require().NoError(err)
		s.False(user.HasPassword())
	})
}

func (s *ManagerSuite) TestAdminLifecycle() {
	ctx := context.Background()
	super := s.superAdmin()

	s.Run("only a super-admin may create admins", func() {
		student, err := s.manager.Register(ctx, "student1@cvsu.edu.ph", "", RegisterOptions{})
		s.Require().NoError(err)

		_, err = s.manager.CreateAdmin(ctx, student, "admin@example.com", domain.CollegeCAS, "")
		s.True(domainerrors.HasCode(err, domainerrors.CodeForbidden))
	})

	s.Run("create admin does not change the current session", func() {
		_, err := s.manager.Login(ctx, testSuperAdminEmail, RoleSuperAdmin, "")
		s.Require().NoError(err)

		admin, err := s.manager.CreateAdmin(ctx, super, "cas-admin@example.com", domain.CollegeCAS, "pw")
		s.Require().NoError(err)
		s.Equal(RoleAdmin, admin.Role)
		s.Equal(domain.CollegeCAS, admin.College)

		current, ok := s.manager.CurrentUser()
		s.Require().True(ok)
		s.Equal(SeedSuperAdminID, current.ID)
	})

	s.Run("admin may use any email domain", func() {
		admin, err := s.manager.CreateAdmin(ctx, super, "admin@gmail.com", domain.CollegeCCJ, "")
		s.Require().NoError(err)
		_, err = s.manager.Login(ctx, admin.Email, RoleAdmin, "")
		s.Require().NoError(err)
	})

	s.Run("invalid college is rejected", func() {
		_, err := s.manager.CreateAdmin(ctx, super, "x@example.com", "NOPE", "")
		s.True(domainerrors.HasCode(err, domainerrors.CodeBadRequest))
	})
}

func (s *ManagerSuite) TestEditAdmin() {
	ctx := context.Background()
	super := s.superAdmin()
	admin, err := s.manager.CreateAdmin(ctx, super, "admin@example.com", domain.CollegeCAS, "old")
	s.Require().NoError(err)

	s.Run("empty fields are left untouched", func() {
		updated, err := s.manager.EditAdmin(ctx, super, admin.ID, AdminUpdate{College: domain.CollegeCCJ})
		s.Require().NoError(err)
		s.Equal("admin@example.com", updated.Email)
		s.Equal(domain.CollegeCCJ, updated.College)
	})

	s.Run("password change re-hashes and old password stops working", func() {
		_, err := s.manager.EditAdmin(ctx, super, admin.ID, AdminUpdate{Password: "new"})
		s.Require().NoError(err)

		_, err = s.manager.Login(ctx, "admin@example.com", RoleAdmin, "old")
		s.True(domainerrors.HasCode(err, domainerrors.CodeInvalidCredentials))
		_, err = s.manager.Login(ctx, "admin@example.com", RoleAdmin, "new")
		s.Require().NoError(err)
	})

	s.Run("editing the session user refreshes the pointer in place", func() {
		_, err := s.manager.Login(ctx, "admin@example.com", RoleAdmin, "new")
		s.Require().NoError(err)

		_, err = s.manager.EditAdmin(ctx, super, admin.ID, AdminUpdate{Email: "renamed@example.com"})
		s.Require().NoError(err)

		current, ok := s.manager.CurrentUser()
		s.Require().True(ok)
		s.Equal("renamed@example.com", current.Email)
	})

	s.Run("unknown id is not found", func() {
		_, err := s.manager.EditAdmin(ctx, super, "ghost", AdminUpdate{Email: "x@y"})
		s.True(domainerrors.HasCode(err, domainerrors.CodeNotFound))
	})

	s.Run("non-super-admin is forbidden", func() {
		_, err := s.manager.EditAdmin(ctx, admin, admin.ID, AdminUpdate{Email: "x@y"})
		s.True(domainerrors.HasCode(err, domainerrors.CodeForbidden))
	})
}

func (s *ManagerSuite) TestDeleteAdmin() {
	ctx := context.Background()
	super := s.superAdmin()

	s.Run("deleting the session user forces an implicit logout", func() {
		admin, err := s.manager.CreateAdmin(ctx, super, "admin@example.com", domain.CollegeCAS, "")
		s.Require().NoError(err)
		_, err = s.manager.Login(ctx, admin.Email, RoleAdmin, "")
		s.Require().NoError(err)

		s.Require().NoError(s.manager.DeleteAdmin(ctx, super, admin.ID))
		_, ok := s.manager.CurrentUser()
		s.False(ok)
	})

	s.Run("unknown id is not found", func() {
		err := s.manager.DeleteAdmin(ctx, super, "ghost")
		s.True(domainerrors.HasCode(err, domainerrors.CodeNotFound))
	})

	s.Run("non-super-admin is forbidden", func() {
		student, err := s.manager.Register(ctx, "student9@cvsu.edu.ph", "", RegisterOptions{})
		s.Require().NoError(err)
		err = s.manager.DeleteAdmin(ctx, student, SeedSuperAdminID)
		s.True(domainerrors.HasCode(err, domainerrors.CodeForbidden))
	})
}
