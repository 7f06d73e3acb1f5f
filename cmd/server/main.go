package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/d60-Lab/cinesocial/config"
	"github.com/d60-Lab/cinesocial/internal/api"
	"github.com/d60-Lab/cinesocial/internal/api/handler"
	"github.com/d60-Lab/cinesocial/internal/cache"
	"github.com/d60-Lab/cinesocial/internal/repository"
	"github.com/d60-Lab/cinesocial/internal/service"
	"github.com/d60-Lab/cinesocial/pkg/database"
	"github.com/d60-Lab/cinesocial/pkg/logger"
	"github.com/d60-Lab/cinesocial/pkg/tracing"
)

// @title           CineSocial API
// @version         1.0
// @description     影迷社交后端：帖子流、动态流、评分与关系链。
// @BasePath        /
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN, Environment: cfg.Sentry.Environment}); err != nil {
			logger.Warn("sentry disabled", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer func() { _ = database.Close(db) }()
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Redis 不可用时不启用评分缓存
	var ratingCache cache.RatingCache
	rdb, err := database.InitRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, running without rating cache", zap.Error(err))
	} else if rdb != nil {
		defer rdb.Close()
		ratingCache = cache.NewRatingCache(rdb, cfg.Redis.RatingTTL)
	}

	postRepo := repository.NewPostRepository(db)
	userRepo := repository.NewUserRepository(db)
	fanRepo := repository.NewFanRepository(db)
	followRepo := repository.NewFollowRepository(db)
	replicator := service.NewFanReplicator(followRepo, fanRepo, cfg.Relation.ReplicatorWorkers, cfg.Relation.ReplicatorQueue)
	stopReplicator := replicator.Start()

	h := handler.NewHandler(handler.Services{
		Posts:      service.NewPostService(postRepo),
		Activity:   service.NewActivityService(repository.NewActivityRepository(db)),
		Ratings:    service.NewRatingService(repository.NewRatingRepository(db), ratingCache),
		Relations:  service.NewRelationshipService(followRepo, fanRepo, replicator),
		Engagement: service.NewEngagementService(postRepo, repository.NewPostLikeRepository(db), repository.NewCommentRepository(db)),
		Library:    service.NewLibraryService(userRepo, repository.NewFavouriteRepository(db), repository.NewWatchedRepository(db)),
		Users:      service.NewUserService(userRepo),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(cfg, h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case serveErr = <-errCh:
		if serveErr != nil {
			logger.Error("server error", zap.Error(serveErr))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := stopReplicator(shutdownCtx); err != nil {
		logger.Warn("replicator stop", zap.Error(err), zap.Int("pending", replicator.QueueLen()))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
	return serveErr
}
