// Command server runs the userhub HTTP service.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"userhub/config"
	delivery "userhub/internal/delivery/http"
	"userhub/internal/delivery/http/middleware"
	"userhub/internal/delivery/http/router"
	"userhub/internal/delivery/http/router/handler"
	"userhub/internal/domain/repository"
	"userhub/internal/domain/service"
	"userhub/internal/errors"
	"userhub/internal/infra/auth"
	logs "userhub/internal/infra/log"
	"userhub/internal/infra/persistence/postgres"
	"userhub/internal/infra/registry"
	"userhub/internal/usecase"
	"userhub/internal/usecase/impl"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	logger, err := logs.New(cfg)
	if err != nil {
		return errors.Wrap(err, "build logger")
	}
	slog.SetDefault(logger)

	reg, err := buildRegistry(cfg, logger)
	if err != nil {
		return errors.Wrap(err, "build service registry")
	}

	authHandler := handler.NewAuthHandler(registry.MustResolve[usecase.CredentialUsecase](reg))
	userHandler := handler.NewUserHandler(registry.MustResolve[usecase.UserUsecase](reg))
	authMiddleware := middleware.NewAuthMiddleware(registry.MustResolve[usecase.CredentialUsecase](reg))

	server := delivery.NewServer(cfg, logger, router.NewRouter(authHandler, userHandler, authMiddleware))

	return serve(server, logger)
}

// buildRegistry is the single build phase of the service registry. Shared
// infrastructure is registered eagerly; repositories and services are
// provided lazily and resolve their own dependencies from the registry on
// first use.
func buildRegistry(cfg *config.Config, logger *slog.Logger) (*registry.Registry, error) {
	reg := registry.New()

	if err := registry.Register(reg, cfg); err != nil {
		return nil, err
	}
	if err := registry.Register(reg, logger); err != nil {
		return nil, err
	}

	db, err := postgres.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := registry.Register(reg, db); err != nil {
		return nil, err
	}

	if err := registry.Register(reg, auth.NewArgon2Hasher()); err != nil {
		return nil, err
	}

	codec, err := auth.NewJWTCodec(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := registry.Register(reg, codec); err != nil {
		return nil, err
	}

	if err := registry.Provide(reg, func() (repository.UserRepository, error) {
		return postgres.NewUserRepository(registry.MustResolve[*gorm.DB](reg)), nil
	}); err != nil {
		return nil, err
	}

	if err := registry.Provide(reg, func() (usecase.CredentialUsecase, error) {
		return impl.NewCredentialService(
			registry.MustResolve[repository.UserRepository](reg),
			registry.MustResolve[service.PasswordHasher](reg),
			registry.MustResolve[service.TokenCodec](reg),
			registry.MustResolve[*config.Config](reg),
			registry.MustResolve[*slog.Logger](reg),
		), nil
	}); err != nil {
		return nil, err
	}

	if err := registry.Provide(reg, func() (usecase.UserUsecase, error) {
		return impl.NewUserService(
			registry.MustResolve[repository.UserRepository](reg),
			registry.MustResolve[*slog.Logger](reg),
		), nil
	}); err != nil {
		return nil, err
	}

	return reg, nil
}

func serve(server *delivery.Server, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(errors.Cause(err), http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
		logger.Info("Shutdown signal received")

		return server.Shutdown(context.Background())
	}
}
