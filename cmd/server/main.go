package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/config"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/api/handler"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/api/router"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/reference"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/repository"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/seed"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/service"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/database"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/jwt"
	applogger "github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/logger"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/redis"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/session"
)

func main() {
	configPath := flag.String("config", "", "path to a config file")
	flag.Parse()

	// 1. config
	cfg, err := config.Load(*configPath)
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

	logger.Info("starting fwfps api",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// 3. database and migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, cfg.Database.Driver, logger); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	// 4. redis: required for the redis session backend, optional otherwise
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			if cfg.Auth.SessionBackend == "redis" {
				logger.Fatal("connect redis", zap.Error(err))
			}
			logger.Warn("redis unavailable, login rate limiting disabled", zap.Error(err))
			rdb = nil
		}
	}

	var sessions session.Store
	if cfg.Auth.SessionBackend == "redis" {
		sessions = session.NewRedisStore(rdb, cfg.Auth.SessionTTL)
	} else {
		sessions = session.NewMemoryStore(cfg.Auth.SessionTTL)
	}

	// 5. repository → service → handler
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, sessions, jwt.NewManager(&cfg.Auth), reference.Default(), logger)

	if cfg.Seed.Enabled {
		seeded, err := seed.Run(context.Background(), repo, logger)
		if err != nil {
			logger.Fatal("seed sample data", zap.Error(err))
		}
		if !seeded {
			logger.Info("database already has users, skipping seed")
		}
	}

	h := handler.NewHandler(svc, cfg, database.Checker{DB: db}, logger)
	engine := router.Setup(cfg, h, svc.Auth, rdb, logger)

	// 6. http server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("close database", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("server stopped")
}
