package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/football-api/config"
	"github.com/Dosada05/football-api/db"
	"github.com/Dosada05/football-api/events"
	"github.com/Dosada05/football-api/handlers"
	"github.com/Dosada05/football-api/middleware"
	"github.com/Dosada05/football-api/repositories"
	api "github.com/Dosada05/football-api/routes"
	"github.com/Dosada05/football-api/services"
	"github.com/Dosada05/football-api/storage"
	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.LogFormat == config.LogFormatText {
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:      cfg.LogLevel,
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
}

func newUploader(ctx context.Context, cfg *config.Config) (storage.FileUploader, string, error) {
	if cfg.StorageDriver == config.StorageDriverR2 {
		uploader, err := storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		return uploader, "", err
	}
	local, err := storage.NewLocalDiskUploader(cfg.StorageLocalDir, cfg.StoragePublicBaseURL)
	if err != nil {
		return nil, "", err
	}
	return local, local.RootDir(), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("storage_driver", cfg.StorageDriver),
	)

	if err := run(cfg, logger); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx, dbConn, logger); err != nil {
			return err
		}
	}

	uploader, localDir, err := newUploader(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}

	hub := events.NewHub(logger)

	leagueRepo := repositories.NewPostgresLeagueRepository(dbConn)
	clubRepo := repositories.NewPostgresClubRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	fanRepo := repositories.NewPostgresFanRepository(dbConn)
	txManager := repositories.NewTxManager(dbConn)

	leagueService := services.NewLeagueService(leagueRepo, hub)
	clubService := services.NewClubService(clubRepo, leagueRepo, hub)
	playerService := services.NewPlayerService(playerRepo, uploader, hub, logger)
	fanService := services.NewFanService(fanRepo, clubRepo, txManager, hub)

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		League:    handlers.NewLeagueHandler(leagueService),
		Club:      handlers.NewClubHandler(clubService),
		Player:    handlers.NewPlayerHandler(playerService),
		Fan:       handlers.NewFanHandler(fanService),
		User:      handlers.NewUserHandler(),
		WebSocket: handlers.NewWebSocketHandler(hub, cfg.CORSAllowedOrigins),
		Health:    handlers.NewHealthHandler(dbConn),
	}, api.Options{
		Logger:             logger,
		Metrics:            middleware.NewMetrics(),
		JWTSecret:          []byte(cfg.JWTSecretKey),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		LocalStorageDir:    localDir,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return hub.Run(gctx)
	})

	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}
