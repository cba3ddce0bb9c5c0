// Command api runs the vidshare HTTP API.
//
// Startup order: environment, logger, MongoDB (with indexes), Redis, blob
// storage, view dispatcher, services, router. SIGINT and SIGTERM trigger a
// graceful shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/vidshare/platform/internal/api"
	"github.com/vidshare/platform/internal/api/handler"
	"github.com/vidshare/platform/internal/core/ports"
	"github.com/vidshare/platform/internal/core/service"
	"github.com/vidshare/platform/internal/infrastructure/db/mongo"
	"github.com/vidshare/platform/internal/infrastructure/db/redis"
	"github.com/vidshare/platform/internal/infrastructure/queue"
	"github.com/vidshare/platform/internal/infrastructure/storage"
	"github.com/vidshare/platform/internal/pkg/config"
	"github.com/vidshare/platform/pkg/logger"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 15 * time.Second
)

func main() {
	// Used until the configured logger exists.
	boot := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// A missing .env is fine; real deployments use the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		boot.Fatal().Err(err).Msg("load .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "vidshare-api",
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("configuration loaded")

	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	mongoClient, db, err := mongo.Connect(startupCtx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	must(log, err, "connect to mongo")
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()
	must(log, mongo.EnsureIndexes(startupCtx, db), "ensure mongo indexes")

	rdb, err := redis.Connect(startupCtx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	must(log, err, "connect to redis")
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	blobs, mediaDir, err := openBlobStore(startupCtx, cfg.Storage)
	must(log, err, "open blob storage")
	log.Info().Str("backend", cfg.Storage.Backend).Msg("blob storage ready")

	userRepo := mongo.NewUserRepository(db)
	videoRepo := mongo.NewVideoRepository(db)
	commentRepo := mongo.NewCommentRepository(db)
	sessions := redis.NewSessionStore(rdb)

	views := queue.NewViewDispatcher(cfg.ViewWorkers, videoRepo, log)
	views.Start(ctx)

	lifecycle := service.NewLifecycle(userRepo, videoRepo, commentRepo, blobs, sessions, views, log)

	router := api.NewRouter(api.Deps{
		Auth:     service.NewAuthService(userRepo, sessions, cfg.JWTSecret, cfg.TokenTTL, log),
		Users:    service.NewUserService(userRepo, videoRepo, commentRepo, lifecycle, log),
		Videos:   service.NewVideoService(videoRepo, commentRepo, blobs, lifecycle, log),
		Comments: service.NewCommentService(commentRepo, videoRepo, lifecycle, log),
		Admin:    service.NewAdminService(userRepo, videoRepo, commentRepo),
		Health: []handler.Dependency{
			{Name: "mongo", Check: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }},
			{Name: "redis", Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		},
		Log:             log,
		MediaDir:        mediaDir,
		MaxUploadBytes:  cfg.Storage.MaxBytes,
		LoginRatePerSec: cfg.LoginRatePerSec,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serverErr:
		log.Error().Err(err).Msg("http server failed")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	log.Info().Msg("server stopped")
}

// openBlobStore builds the configured backend. The returned directory is
// non-empty only for the local backend, whose files are served under /media.
func openBlobStore(ctx context.Context, cfg config.StorageConfig) (ports.BlobStore, string, error) {
	if cfg.Backend == config.StorageS3 {
		s3, err := storage.NewS3(ctx, cfg.Bucket, cfg.Prefix, cfg.MaxBytes)
		if err != nil {
			return nil, "", err
		}
		return s3, "", nil
	}
	local, err := storage.NewLocal(cfg.Dir, cfg.MaxBytes)
	if err != nil {
		return nil, "", err
	}
	return local, local.Dir(), nil
}

func must(log zerolog.Logger, err error, step string) {
	if err != nil {
		log.Fatal().Err(err).Str("step", step).Msg("startup failure")
	}
}
