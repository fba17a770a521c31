// Package usecase defines the application-facing interfaces for the business logic layer.
package usecase

import (
	"context"

	"userhub/internal/domain/entity"
	"userhub/internal/domain/service"
)

// RegisterInput carries the registration request data.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Age      *int
}

// CredentialUsecase turns a password into a durable, verifiable session
// identity: registration, login, token verification.
type CredentialUsecase interface {
	// Register creates a new user account with a hashed password and default
	// roles. Fails with the already-exists error when username or email is
	// taken, including when a concurrent registration wins the race at the
	// storage layer.
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)

	// Login authenticates by username or email plus password and returns a
	// signed token. Unknown identifier and wrong password are
	// indistinguishable in the returned error.
	Login(ctx context.Context, usernameOrEmail, password string) (string, error)

	// VerifyToken establishes the request identity from a presented token.
	// It is stateless and safe for concurrent use from any number of handlers.
	VerifyToken(ctx context.Context, token string) (*service.Claims, error)

	// Logout acknowledges a client logout. Tokens are stateless and
	// self-expiring; there is nothing to revoke server-side.
	Logout(ctx context.Context, token string) error
}
