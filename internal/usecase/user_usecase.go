package usecase

import (
	"context"

	"userhub/internal/domain/entity"
)

// UserUsecase exposes the administrative user operations.
type UserUsecase interface {
	// ListUsers returns users ordered by id. Limit is clamped to a sane
	// ceiling; a non-positive limit selects the default page size.
	ListUsers(ctx context.Context, limit, offset int) ([]*entity.User, error)

	// GetUser returns a user by id, or the not-found error.
	GetUser(ctx context.Context, id int64) (*entity.User, error)

	// UsernameExists reports whether the username is taken.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// EmailExists reports whether the email is taken.
	EmailExists(ctx context.Context, email string) (bool, error)

	// UpdateUserStatus activates or deactivates an account.
	UpdateUserStatus(ctx context.Context, id int64, isActive bool) (*entity.User, error)

	// DeleteUser removes an account.
	DeleteUser(ctx context.Context, id int64) error
}
