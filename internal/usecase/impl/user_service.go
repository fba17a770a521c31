package impl

import (
	"context"
	"log/slog"

	"userhub/internal/domain/entity"
	domainerrors "userhub/internal/domain/errors"
	"userhub/internal/domain/repository"
	"userhub/internal/errors"
	"userhub/internal/usecase"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(userRepo repository.UserRepository, logger *slog.Logger) usecase.UserUsecase {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (srv *userService) ListUsers(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	users, err := srv.userRepo.List(ctx, limit, offset)
	if err != nil {
		srv.logger.Error("Failed to list users", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to list users")
	}

	return users, nil
}

func (srv *userService) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}
		srv.logger.Error("Failed to get user", slog.Int64("user_id", id), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to get user")
	}

	return user, nil
}

func (srv *userService) UsernameExists(ctx context.Context, username string) (bool, error) {
	exists, err := srv.userRepo.UsernameExists(ctx, username)
	if err != nil {
		srv.logger.Error("Failed to check username", slog.Any("error", err))

		return false, domainerrors.ErrInternalError.WrapMessage("failed to check username")
	}

	return exists, nil
}

func (srv *userService) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := srv.userRepo.EmailExists(ctx, email)
	if err != nil {
		srv.logger.Error("Failed to check email", slog.Any("error", err))

		return false, domainerrors.ErrInternalError.WrapMessage("failed to check email")
	}

	return exists, nil
}

func (srv *userService) UpdateUserStatus(ctx context.Context, id int64, isActive bool) (*entity.User, error) {
	user, err := srv.userRepo.UpdateStatus(ctx, id, isActive)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}
		srv.logger.Error("Failed to update user status", slog.Int64("user_id", id), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to update user status")
	}

	srv.logger.Info("User status updated", slog.Int64("user_id", id), slog.Bool("is_active", isActive))

	return user, nil
}

func (srv *userService) DeleteUser(ctx context.Context, id int64) error {
	if err := srv.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.WithStack(domainerrors.ErrUserNotFound)
		}
		srv.logger.Error("Failed to delete user", slog.Int64("user_id", id), slog.Any("error", err))

		return domainerrors.ErrInternalError.WrapMessage("failed to delete user")
	}

	srv.logger.Info("User deleted", slog.Int64("user_id", id))

	return nil
}
