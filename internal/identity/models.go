// Package identity owns users and the single persisted session pointer.
package identity

import "campusreport/internal/domain"

// Role is fixed at creation; no role-change operation exists.
type Role string

const (
	RoleStudent    Role = "student"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// User is the identity record. JSON field names are the compatibility surface
// with blobs persisted by earlier releases; do not rename.
//
// PasswordDigest is present only if a password was set. College is required
// semantically for admins and optional elsewhere.
type User struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	Role           Role           `json:"role"`
	PasswordDigest string         `json:"password,omitempty"`
	Name           string         `json:"name,omitempty"`
	StudentID      string         `json:"studentId,omitempty"`
	College        domain.College `json:"college,omitempty"`
}

func (u User) HasPassword() bool {
	return u.PasswordDigest != ""
}

// RegisterOptions carries the optional student profile fields.
type RegisterOptions struct {
	Name      string
	StudentID string
	College   domain.College
}

// AdminUpdate is a partial update: zero-valued fields are left untouched.
type AdminUpdate struct {
	Email    string
	College  domain.College
	Password string
}
