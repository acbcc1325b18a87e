package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mongotech/users-api/internal/core/domain"
)

// JWTIssuer signs and verifies HS256 bearer tokens carrying the user id as
// the subject claim.
type JWTIssuer struct {
	secret     []byte
	defaultTTL time.Duration
}

func NewJWTIssuer(secret string, defaultTTL time.Duration) *JWTIssuer {
	if defaultTTL <= 0 {
		defaultTTL = 24 * time.Hour
	}
	return &JWTIssuer{secret: []byte(secret), defaultTTL: defaultTTL}
}

// DefaultTTL returns the configured token lifetime.
func (i *JWTIssuer) DefaultTTL() time.Duration {
	return i.defaultTTL
}

func (i *JWTIssuer) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = i.defaultTTL
	}
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify validates signature and expiry and returns the subject claim.
// Tokens signed with any other algorithm are rejected outright.
func (i *JWTIssuer) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrExpiredToken
		}
		return "", domain.ErrInvalidToken
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
