package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/interpolice/interpolice-backend/internal/adapter/filestore"
	"github.com/interpolice/interpolice-backend/internal/adapter/postgres"
	citationrepo "github.com/interpolice/interpolice-backend/internal/adapter/postgres/citation"
	citizenrepo "github.com/interpolice/interpolice-backend/internal/adapter/postgres/citizen"
	recordrepo "github.com/interpolice/interpolice-backend/internal/adapter/postgres/criminalrecord"
	planetrepo "github.com/interpolice/interpolice-backend/internal/adapter/postgres/planet"
	statsrepo "github.com/interpolice/interpolice-backend/internal/adapter/postgres/stats"
	tokenrepo "github.com/interpolice/interpolice-backend/internal/adapter/postgres/token"
	userrepo "github.com/interpolice/interpolice-backend/internal/adapter/postgres/user"
	authpkg "github.com/interpolice/interpolice-backend/internal/auth"
	"github.com/interpolice/interpolice-backend/internal/config"
	"github.com/interpolice/interpolice-backend/internal/metrics"
	authsvc "github.com/interpolice/interpolice-backend/internal/service/auth"
	citationsvc "github.com/interpolice/interpolice-backend/internal/service/citation"
	citizensvc "github.com/interpolice/interpolice-backend/internal/service/citizen"
	recordsvc "github.com/interpolice/interpolice-backend/internal/service/record"
	statssvc "github.com/interpolice/interpolice-backend/internal/service/stats"
	"github.com/interpolice/interpolice-backend/internal/transport/middleware"
	"github.com/interpolice/interpolice-backend/internal/transport/rest"
)

const tokenCleanupInterval = time.Hour

// Run is the application entry point. It loads configuration, wires every
// repository, service, and handler, and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	// Repositories.
	citizenRepo := citizenrepo.New(pool)
	citationRepo := citationrepo.New(pool)
	recordRepo := recordrepo.New(pool)
	planetRepo := planetrepo.New(pool)
	userRepo := userrepo.New(pool)
	tokenRepo := tokenrepo.New(pool)
	statsRepo := statsrepo.New(pool)

	avatarStore, err := filestore.NewAvatarStore(cfg.Uploads.Dir, cfg.Uploads.BaseURL)
	if err != nil {
		return fmt.Errorf("init avatar store: %w", err)
	}

	m := metrics.New()

	jwtMgr := authpkg.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	// Services.
	authService := authsvc.NewService(logger, userRepo, tokenRepo, jwtMgr, cfg.Auth)
	citizenService := citizensvc.NewService(logger, citizenRepo, planetRepo, avatarStore, m, cfg.Uploads)
	citationService := citationsvc.NewService(logger, citizenRepo, citationRepo, recordRepo, txm, m, cfg.Citation)
	recordService := recordsvc.NewService(logger, recordRepo, citizenRepo)
	statsService := statssvc.NewService(logger, statsRepo)

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	handlers := rest.Handlers{
		Auth:     rest.NewAuthHandler(authService, logger),
		Citizens: rest.NewCitizenHandler(citizenService, cfg.Uploads.MaxSizeBytes, logger),
		Citation: rest.NewCitationHandler(citationService, logger),
		Records:  rest.NewRecordHandler(recordService, logger),
		Planets:  rest.NewPlanetHandler(planetRepo, logger),
		Stats:    rest.NewStatsHandler(statsService, logger),
		Health:   rest.NewHealthHandler(pool, BuildVersion()),
	}

	router := rest.NewRouter(handlers, rest.RouterDeps{
		Logger:     logger,
		Metrics:    m,
		Validator:  authService,
		CORS:       cfg.CORS,
		UploadsDir: avatarStore.Dir(),
		RateLimit:  rateLimiter,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go cleanupTokensLoop(ctx, logger, authService)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// cleanupTokensLoop periodically deletes expired refresh tokens so the
// table does not grow without bound.
func cleanupTokensLoop(ctx context.Context, logger *slog.Logger, svc *authsvc.Service) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svc.CleanupExpiredTokens(ctx); err != nil {
				logger.Error("cleanup expired tokens", slog.String("error", err.Error()))
			}
		}
	}
}
