package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/config"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/api/handler"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/api/router"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/repository"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/service"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/pkg/database"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/pkg/jwt"
	applogger "github.com/fibidydev01-sys/administrasi-pkbm-sub001/pkg/logger"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/pkg/redis"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/pkg/validation"
)

func main() {
	// 1. configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting up",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database + migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("unwrap sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	// 4. Redis: optional, auth degrades without revocation when unavailable
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, token revocation disabled", zap.Error(err))
		rdb = nil
	}

	// 5. JWT
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. dependency wiring: repository -> service -> handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	h := handler.NewHandler(svc)

	// 7. router
	if err := validation.Register(); err != nil {
		logger.Fatal("register validations", zap.Error(err))
	}
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. background sweeper
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	if cfg.Attendance.SweeperEnabled {
		go svc.Sweeper.Run(sweepCtx)
		logger.Info("auto check-out sweeper started")
	}

	// 9. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", zap.String("signal", sig.String()))

	stopSweeper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
