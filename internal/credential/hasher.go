// Package credential owns password digests and the institutional email gate.
package credential

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"campusreport/internal/platform/config"
	dErrors "campusreport/pkg/domainerrors"
)

// Hasher turns a plaintext password into a stored digest and verifies later
// attempts against it.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// ForAlgorithm resolves the configured digest algorithm. An unknown or empty
// algorithm is surfaced as a missing dependency so login/register fail loudly
// instead of silently accepting anything.
func ForAlgorithm(algorithm string) (Hasher, error) {
	switch algorithm {
	case config.DigestSHA256:
		return SHA256Hasher{}, nil
	case config.DigestBcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, dErrors.New(dErrors.CodeMissingDependency,
			fmt.Sprintf("unsupported digest algorithm %q", algorithm))
	}
}

// SHA256Hasher reproduces the historical credential check: a single unsalted
// SHA-256 pass, hex encoded. It exists for compatibility with digests already
// persisted under the users key; new deployments should prefer BcryptHasher.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(password, digest string) bool {
	computed, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}

// BcryptHasher is the hardened option: salted, iterated, and self-describing
// in the digest format.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeBadRequest, "password is too long")
		}
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hashed), nil
}

func (BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
