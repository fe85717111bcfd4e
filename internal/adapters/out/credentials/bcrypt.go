// Package credentials hashes and verifies courier passwords with bcrypt.
package credentials

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 12

var ErrEmptySecret = errors.New("secret must not be empty")

// BcryptVerifier implements ports.CredentialVerifier.
type BcryptVerifier struct {
	cost int
}

// NewBcryptVerifier clamps cost into bcrypt's accepted range; 0 means DefaultCost.
func NewBcryptVerifier(cost int) BcryptVerifier {
	switch {
	case cost == 0:
		cost = DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return BcryptVerifier{cost: cost}
}

func (v BcryptVerifier) Cost() int {
	return v.cost
}

// Hash returns a salted bcrypt digest. Secrets longer than 72 bytes are rejected
// by bcrypt itself.
func (v BcryptVerifier) Hash(secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	h, err := bcrypt.GenerateFromPassword([]byte(secret), v.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify never fails loudly: a mismatch and a corrupt digest both return false.
func (v BcryptVerifier) Verify(secret, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
