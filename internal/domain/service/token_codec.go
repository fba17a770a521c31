package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"userhub/internal/domain/entity"
)

// Token decode failures, internal to the codec. The credential usecase maps
// all of them to a single unauthenticated outcome before they reach callers.
var (
	// ErrTokenMalformed means the three-part token structure did not parse.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenSignatureInvalid means the signature did not match the secret.
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	// ErrTokenExpired means the signature checked out but the token is past
	// its expiry.
	ErrTokenExpired = errors.New("token is expired")
)

// Claims is the signed token payload identifying a session. A Claims value is
// immutable once constructed and never persisted server-side.
type Claims struct {
	UserID    int64    `json:"user_id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	IssuedAt  int64    `json:"iat"`
	ExpiresAt int64    `json:"exp"`
}

// NewClaims builds the claims for a user session issued at now with the given
// lifetime. Expiry is always strictly after issuance for a positive lifetime.
func NewClaims(user *entity.User, now time.Time, lifetime time.Duration) *Claims {
	return &Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Roles:     user.Roles.ToStrings(),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(lifetime).Unix(),
	}
}

// HasRole reports whether the claims carry the given role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}

	return false
}

// GetExpirationTime implements jwt.Claims.
func (c *Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.ExpiresAt, 0)), nil
}

// GetIssuedAt implements jwt.Claims.
func (c *Claims) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.IssuedAt, 0)), nil
}

// GetNotBefore implements jwt.Claims. Tokens carry no nbf claim.
func (c *Claims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

// GetIssuer implements jwt.Claims.
func (c *Claims) GetIssuer() (string, error) {
	return "", nil
}

// GetSubject implements jwt.Claims.
func (c *Claims) GetSubject() (string, error) {
	return "", nil
}

// GetAudience implements jwt.Claims.
func (c *Claims) GetAudience() (jwt.ClaimStrings, error) {
	return nil, nil
}

// TokenCodec encodes and decodes the signed claims payload. Implementations
// hold the secret and algorithm fixed at construction time; nothing is read
// from ambient state per call.
type TokenCodec interface {
	// Encode serializes and signs the claims into an opaque token string.
	Encode(claims *Claims) (string, error)

	// Decode parses and verifies a token. The signature is checked before any
	// claims field is trusted; expiry is checked only after the signature
	// verifies. Failures are ErrTokenMalformed, ErrTokenSignatureInvalid or
	// ErrTokenExpired.
	Decode(token string) (*Claims, error)
}
