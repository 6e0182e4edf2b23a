package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"probank/internal/config"
	"probank/internal/database"
	"probank/internal/handlers"
	"probank/internal/middleware"
	"probank/internal/repositories"
	"probank/internal/services"
	"probank/web"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the ledger stack behind an echo HTTP server
type Server struct {
	echo   *echo.Echo
	db     *database.DB
	config *config.Config
	logger *slog.Logger
}

// New builds the full stack: database, repository, service, handlers, routes.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := database.Initialize(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		db.Close()
		return nil, err
	}

	accountRepo := repositories.NewAccountRepository(db.DB)
	metrics := services.NewPrometheusMetrics()
	ledger := services.NewLedgerService(accountRepo, metrics, logger)

	dashboardHandler := handlers.NewDashboardHandler(ledger)
	accountHandler := handlers.NewAccountHandler(ledger)
	transactionHandler := handlers.NewTransactionHandler(ledger)
	healthHandler := handlers.NewHealthCheckHandler(db.DB)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.Renderer = renderer
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(
		cfg.Security.RateLimitPerSecond,
		cfg.Security.RateLimitBurst,
	))
	e.Use(requestLogger(logger))

	// Web UI
	e.GET("/", dashboardHandler.Index)
	e.GET("/create", accountHandler.CreateAccountPage)
	e.POST("/create", accountHandler.CreateAccount)
	e.GET("/transaction", transactionHandler.TransactionPage)
	e.POST("/transaction", transactionHandler.PerformTransaction)
	e.GET("/search", accountHandler.SearchPage)
	e.POST("/search", accountHandler.SearchAccount)
	e.GET("/details/:account_id", accountHandler.AccountDetails)
	e.GET("/close", accountHandler.ClosePage)
	e.POST("/close", accountHandler.CloseAccount)

	// Operational endpoints
	e.GET("/healthz", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	return &Server{
		echo:   e,
		db:     db,
		config: cfg,
		logger: logger,
	}, nil
}

// Start begins serving; it blocks until the server stops
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("Server listening", "addr", addr)

	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop drains in-flight requests and closes the database
func (s *Server) Stop(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("database close failed: %w", err)
	}
	return nil
}

// requestLogger logs each completed request with its trace ID
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			logger.Info("request completed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration", time.Since(start),
				"trace_id", middleware.GetTraceID(c),
			)

			return err
		}
	}
}
