// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"userhub/config"
	"userhub/internal/domain/entity"
	domainerrors "userhub/internal/domain/errors"
	"userhub/internal/domain/repository"
	"userhub/internal/domain/service"
	"userhub/internal/errors"
	"userhub/internal/usecase"
)

// credentialService implements the CredentialUsecase interface. It holds no
// state beyond its dependencies and the configured token lifetime, so a
// single instance is shared by all request handlers.
type credentialService struct {
	userRepo      repository.UserRepository
	hasher        service.PasswordHasher
	codec         service.TokenCodec
	tokenLifetime time.Duration
	logger        *slog.Logger
}

// NewCredentialService is the constructor for credentialService. It receives all dependencies as interfaces.
func NewCredentialService(
	userRepo repository.UserRepository,
	hasher service.PasswordHasher,
	codec service.TokenCodec,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.CredentialUsecase {
	return &credentialService{
		userRepo:      userRepo,
		hasher:        hasher,
		codec:         codec,
		tokenLifetime: cfg.JWT.Expiry(),
		logger:        logger,
	}
}

// Register orchestrates the complete user registration process. The existence
// pre-check and the insert are not one atomic transaction; a concurrent
// registration racing on the same username or email is caught by the storage
// uniqueness constraint and reported as the same already-exists outcome. A
// request cancelled after the insert committed is not rolled back.
func (srv *credentialService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	srv.logger.Info("Starting registration", slog.String("username", input.Username), slog.String("email", input.Email))

	taken, err := srv.identifierTaken(ctx, input.Username, input.Email)
	if err != nil {
		srv.logger.Error("Failed to check existing users", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to check existing users")
	}
	if taken {
		return nil, errors.WithStack(domainerrors.ErrUserAlreadyExists)
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to hash password")
	}

	id, err := srv.userRepo.Insert(ctx, &repository.NewUser{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Age:          input.Age,
		Roles:        entity.DefaultRoles(),
		IsActive:     true,
	})
	if err != nil {
		// The pre-check passed but the unique constraint rejected the row:
		// a concurrent registration won the race.
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, errors.WithStack(domainerrors.ErrUserAlreadyExists)
		}
		srv.logger.Error("Failed to insert user", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to insert user")
	}

	// Re-read the inserted row; the store owns generated fields such as id
	// and timestamps.
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		srv.logger.Error("Failed to read back registered user", slog.Int64("user_id", id), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to read back registered user")
	}

	srv.logger.Info("User registered", slog.Int64("user_id", user.ID), slog.String("username", user.Username))

	return user, nil
}

// Login authenticates a user and issues a signed token. A missing account, an
// inactive account, a wrong password, and an unreadable stored hash all
// produce the same invalid-credentials error so callers cannot enumerate
// accounts.
func (srv *credentialService) Login(ctx context.Context, usernameOrEmail, password string) (string, error) {
	user, err := srv.userRepo.FindByUsernameOrEmail(ctx, usernameOrEmail, true)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", errors.WithStack(domainerrors.ErrInvalidCredentials)
		}
		srv.logger.Error("Failed to find user during login", slog.Any("error", err))

		return "", domainerrors.ErrInternalError.WrapMessage("failed to find user")
	}

	ok, err := srv.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		// Unparseable stored hash. Logged distinctly for auditing, but the
		// client-facing outcome is the same as a wrong password.
		srv.logger.Warn("Stored password hash is malformed",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err),
		)

		return "", errors.WithStack(domainerrors.ErrInvalidCredentials)
	}
	if !ok {
		return "", errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	claims := service.NewClaims(user, time.Now(), srv.tokenLifetime)

	token, err := srv.codec.Encode(claims)
	if err != nil {
		srv.logger.Error("Failed to encode token", slog.Int64("user_id", user.ID), slog.Any("error", err))

		return "", domainerrors.ErrInternalError.WrapMessage("failed to encode token")
	}

	srv.logger.Info("User logged in", slog.Int64("user_id", user.ID), slog.String("username", user.Username))

	return token, nil
}

// VerifyToken decodes and validates a presented token, mapping every decode
// failure to the single unauthenticated outcome.
func (srv *credentialService) VerifyToken(_ context.Context, token string) (*service.Claims, error) {
	claims, err := srv.codec.Decode(token)
	if err != nil {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage(err.Error())
	}

	return claims, nil
}

// Logout is a stateless acknowledgement. Tokens self-expire; revocation
// before natural expiry is not supported.
func (srv *credentialService) Logout(_ context.Context, _ string) error {
	return nil
}

func (srv *credentialService) identifierTaken(ctx context.Context, username, email string) (bool, error) {
	usernameTaken, err := srv.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return false, errors.Wrap(err, "check username")
	}
	if usernameTaken {
		return true, nil
	}

	emailTaken, err := srv.userRepo.EmailExists(ctx, email)
	if err != nil {
		return false, errors.Wrap(err, "check email")
	}

	return emailTaken, nil
}
