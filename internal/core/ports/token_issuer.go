package ports

import "time"

// TokenIssuer signs and verifies time-limited bearer tokens.
type TokenIssuer interface {
	// Issue returns a signed token embedding subject and an expiry ttl
	// from now.
	Issue(subject string, ttl time.Duration) (string, error)
	// Verify validates signature and expiry and returns the subject.
	// Fails with domain.ErrInvalidToken or domain.ErrExpiredToken.
	Verify(token string) (string, error)
}

// PasswordHasher is a slow one-way credential hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
