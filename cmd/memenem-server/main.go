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

	"github.com/s9b/memenem/internal/api"
	"github.com/s9b/memenem/internal/client"
	"github.com/s9b/memenem/internal/config"
	"github.com/s9b/memenem/internal/logger"
	"github.com/s9b/memenem/internal/metrics"
	"github.com/s9b/memenem/internal/repository"
	"github.com/s9b/memenem/internal/service"
)

const version = "1.0.0"

func main() {
	// Logger first, with server defaults, so config errors are logged too
	appLogger := logger.NewFromEnv(logger.LoadFromEnv(api.ServiceName, "info", "json"))
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// CONFIG_PATH is honoured for container deployments
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	// Rebuild with the config file's log section applied
	appLogger = logger.NewFromEnv(loggerConfig(&cfg.Log))
	logger.SetDefaultLogger(appLogger)

	store, err := repository.OpenKVStore(&cfg.Storage)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize storage")
	}
	defer store.Close()

	apiClient := client.New(&cfg.API)
	collection := service.NewCollectionService(repository.NewCollectionRepository(store))
	memes := service.NewMemeService(apiClient, collection)

	metrics.Init(api.ServiceName, version)

	router := api.SetupRouter(&api.Services{
		Collection: collection,
		Memes:      memes,
	}, &cfg.Server, appLogger, version)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.WithFields(logger.Fields{
			"port":    cfg.Server.Port,
			"mode":    cfg.Server.Mode,
			"api_url": apiClient.BaseURL(),
			"storage": cfg.Storage.Driver,
		}).Info("Starting memenem server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}

// loggerConfig applies the log section over the server defaults. LOG_*
// variables still take precedence.
func loggerConfig(cfg *config.LogConfig) *logger.EnvConfig {
	logCfg := cfg.Resolve("info", "json")
	return logger.LoadFromEnv(api.ServiceName, logCfg.Level, logCfg.Format)
}
