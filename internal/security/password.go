//go:generate mockery --name PasswordHasher --output ./mocks --outpkg mocks --case=underscore
package security

import (
	"golang.org/x/crypto/bcrypt"
)

// StoredCredentialCost is the bcrypt work factor for persisted password
// hashes.
const StoredCredentialCost = 12

// PasswordHasher is the one-way adaptive hash used for stored credentials.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

type bcryptHasher struct {
	cost int
}

func NewPasswordHasher() PasswordHasher {
	return &bcryptHasher{cost: StoredCredentialCost}
}

func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A malformed digest is a
// mismatch, never an error.
func (h *bcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
