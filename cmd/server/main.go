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

	"go.uber.org/zap"

	"ete-kpi/config"
	"ete-kpi/internal/api/handler"
	"ete-kpi/internal/api/middleware"
	"ete-kpi/internal/api/router"
	"ete-kpi/internal/cache"
	"ete-kpi/internal/observability"
	"ete-kpi/internal/repository"
	"ete-kpi/internal/service"
	"ete-kpi/pkg/database"
	applogger "ete-kpi/pkg/logger"
	"ete-kpi/pkg/redis"
)

func main() {
	// 1. configuration
	cfg, err := config.Load(os.Getenv("ETE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting ete-kpi",
		zap.Int("port", cfg.Server.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. record store
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.RunMigrations(db, cfg.Database.Driver, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	metrics := observability.NewMetrics()

	// 4. Redis (optional: without it reports are computed on every request
	// and the KPI routes are not rate limited)
	var (
		rdb     *redis.Client
		store   cache.Store = cache.Noop{}
		limiter middleware.RateLimiter
	)
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, running without report cache", zap.Error(err))
		} else {
			store = cache.NewRedisStore(rdb, cfg.Report.CacheTTL, metrics, logger)
			limiter = rdb
		}
	}

	// 5. wiring: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, store, metrics, logger)
	h := handler.NewHandler(svc)

	// 6. router
	engine := router.Setup(cfg, h, metrics, limiter, logger)

	// 7. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if sqlDB, _ := db.DB(); sqlDB != nil {
		sqlDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
