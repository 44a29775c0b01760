package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dstclan/config"
	"dstclan/internal/api"
	"dstclan/internal/repository"
	"dstclan/internal/site"
	"dstclan/pkg/database"
	"dstclan/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := logger.NewLoggerWithConfig(cfg.LogLevel, cfg.LogFile)
	defer logger.Close()

	db, err := database.NewMySQLConnection(cfg.Database)
	if err != nil {
		logger.Fatal("cannot connect to database", "error", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatal("database migration failed", "error", err)
	}

	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Fatal("cannot connect to redis", "error", err)
	}
	defer redisClient.Close()

	services := api.NewServices(cfg, logger, repository.NewRepositories(db), redisClient)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := services.Auth.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		logger.Fatal("failed to create bootstrap admin", "error", err)
	}
	if ok, err := services.Auth.HasAdmins(ctx); err == nil && !ok {
		logger.Warn("no administrator exists; the first registration will be accepted")
	}
	cancel()

	router := api.SetupRouter(cfg, logger, services, redisClient)

	if cfg.Site.Enabled {
		pages, err := site.New(cfg.Site, logger)
		if err != nil {
			logger.Fatal("failed to load site templates", "error", err)
		}
		pages.Register(router)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.APIPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.APIPort, "site", cfg.Site.Enabled)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}

	logger.Info("server stopped")
}
