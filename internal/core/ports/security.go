package ports

import (
	"time"
)

// CredentialVerifier hashes and checks secrets.
type CredentialVerifier interface {
	// Hash returns a salted digest; two calls on the same secret differ.
	Hash(secret string) (string, error)

	// Verify reports whether secret matches digest. A malformed digest is a
	// mismatch, never an error.
	Verify(secret, digest string) bool
}

// Registered claim names.
const (
	ClaimSubject   = "sub"
	ClaimExpiresAt = "exp"
	ClaimIssuedAt  = "iat"
	ClaimTokenID   = "jti"
	ClaimIssuer    = "iss"
)

// Claims is the payload of an access token.
type Claims map[string]any

// Subject returns the "sub" claim or "".
func (c Claims) Subject() string {
	s, _ := c[ClaimSubject].(string)
	return s
}

// TokenCodec issues and decodes signed, time-bounded access tokens.
type TokenCodec interface {
	// Issue signs claims with an expiry of now+ttl. A ttl <= 0 uses the
	// configured default.
	Issue(claims Claims, ttl time.Duration) (token string, expiresAt time.Time, err error)

	// Decode verifies signature and expiry. Every failure returns the same
	// invalid-token error.
	Decode(token string) (Claims, error)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}
