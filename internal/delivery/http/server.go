// Package http assembles and runs the echo HTTP server.
package http

import (
	"context"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"

	"userhub/config"
	"userhub/internal/delivery/http/middleware"
	"userhub/internal/delivery/http/router"
	"userhub/internal/delivery/http/validator"
	"userhub/internal/errors"
)

const defaultShutdownTimeout = 10 * time.Second

// Server wraps the echo instance with its configuration.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// NewServer builds the echo server with middleware and routes registered.
func NewServer(cfg *config.Config, logger *slog.Logger, r *router.Router) *Server {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Validator = validator.New()
	echoServer.Use(middleware.RequestID)
	echoServer.Use(slogecho.New(logger))
	echoServer.Use(echomiddleware.Recover())
	echoServer.Use(echomiddleware.CORS())

	if t := cfg.HTTP.Timeouts.ReadTimeout; t > 0 {
		echoServer.Server.ReadTimeout = t
	}
	if t := cfg.HTTP.Timeouts.ReadHeaderTimeout; t > 0 {
		echoServer.Server.ReadHeaderTimeout = t
	}
	if t := cfg.HTTP.Timeouts.WriteTimeout; t > 0 {
		echoServer.Server.WriteTimeout = t
	}
	if t := cfg.HTTP.Timeouts.IdleTimeout; t > 0 {
		echoServer.Server.IdleTimeout = t
	}

	r.RegisterRoutes(echoServer)

	return &Server{
		cfg:    cfg,
		logger: logger,
		server: echoServer,
	}
}

// Serve starts the listener and blocks until the server stops.
func (s *Server) Serve() error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting HTTP server", slog.String("hostPort", hostPort))

	if err := s.server.Start(hostPort); err != nil {
		return errors.Wrap(err, "failed to serve http")
	}

	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, defaultShutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
