// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"userhub/internal/domain/entity"
)

// Domain-specific errors for user persistence.
// This allows the application layer to handle specific outcomes without depending on database-specific errors.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when an insert violates the username or
	// email uniqueness constraint. Concurrent registrations can both pass the
	// service-level pre-check, so this is surfaced as a first-class outcome.
	ErrDuplicateUser = errors.New("username or email already taken")
)

// NewUser carries the fields the service supplies for an insert. Generated
// fields (id, timestamps) are owned by the store.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	Age          *int
	Roles        entity.Roles
	IsActive     bool
}

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByUsernameOrEmail retrieves a user whose username or email matches
	// the identifier. When activeOnly is true, inactive users are treated as
	// not found.
	FindByUsernameOrEmail(ctx context.Context, identifier string, activeOnly bool) (*entity.User, error)

	// Insert persists a new user and returns the generated id. Returns
	// ErrDuplicateUser when the uniqueness constraint rejects the row.
	Insert(ctx context.Context, user *NewUser) (int64, error)

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// List retrieves users ordered by id with the given limit and offset.
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)

	// UsernameExists reports whether a user with the given username exists.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// EmailExists reports whether a user with the given email exists.
	EmailExists(ctx context.Context, email string) (bool, error)

	// UpdateStatus sets the is_active flag and returns the updated user.
	UpdateStatus(ctx context.Context, id int64, isActive bool) (*entity.User, error)

	// Delete removes a user by id. Returns ErrUserNotFound when no row matched.
	Delete(ctx context.Context, id int64) error
}
