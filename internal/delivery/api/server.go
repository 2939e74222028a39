package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"coursemart/config"
	"coursemart/internal/delivery"
	apimiddleware "coursemart/internal/delivery/api/middleware"
	"coursemart/internal/delivery/api/router"
	"coursemart/internal/delivery/api/validator"
	"coursemart/internal/delivery/middleware"
	"coursemart/internal/domain/lifecycle"
	"coursemart/internal/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

type apiServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
}

// ServerParams holds dependencies for HTTP server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc              fx.Lifecycle
	Cfg             *config.Config
	Logger          *slog.Logger
	ErrorMiddleware *apimiddleware.ErrorMiddleware
	RouterParams    router.RouterParams
}

// NewServer builds the HTTP API and registers its shutdown hook.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	echoServer := NewEcho(params.Cfg, params.Logger, params.ErrorMiddleware)

	r := router.NewRouter(params.RouterParams)
	r.RegisterRoutes(echoServer)

	timeouts := params.Cfg.HTTP.Timeouts
	h2Server := &http2.Server{IdleTimeout: timeouts.IdleTimeout}
	srv := &apiServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: &http.Server{
			Addr:              net.JoinHostPort("0.0.0.0", strconv.Itoa(params.Cfg.HTTP.Port)),
			Handler:           h2c.NewHandler(echoServer, h2Server),
			ReadTimeout:       timeouts.ReadTimeout,
			ReadHeaderTimeout: timeouts.ReadHeaderTimeout,
			WriteTimeout:      timeouts.WriteTimeout,
			IdleTimeout:       timeouts.IdleTimeout,
		},
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// NewEcho builds the echo instance with the shared middleware chain. Routes
// are registered by the caller.
func NewEcho(cfg *config.Config, logger *slog.Logger, errorMiddleware *apimiddleware.ErrorMiddleware) *echo.Echo {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true

	// Recover first so panics in any later middleware are caught.
	echoServer.Use(echomiddleware.Recover())
	// Request id before the logger so access logs carry it.
	echoServer.Use(middleware.NewRequestIDMiddleware(logger).Process)
	echoServer.Use(middleware.NewLoggerMiddleware(logger, cfg).Handle)
	echoServer.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     allowOrigins(cfg.HTTP.AllowOrigins),
		AllowCredentials: len(cfg.HTTP.AllowOrigins) > 0,
	}))
	echoServer.Use(echomiddleware.BodyLimit(cfg.HTTP.MaxRequestBodySize))

	echoServer.HTTPErrorHandler = errorMiddleware.HandleHTTPError
	echoServer.Validator = validator.New()

	return echoServer
}

func allowOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}

	return origins
}

func (s *apiServer) Serve(ctx context.Context) error {
	s.logger.Info("Starting API HTTP server", slog.String("host_port", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *apiServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down API HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
