// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dquispe/sismed-analytics/internal/api"
	"github.com/dquispe/sismed-analytics/internal/config"
	"github.com/dquispe/sismed-analytics/internal/repository"
	"github.com/dquispe/sismed-analytics/internal/repository/csvsource"
	"github.com/dquispe/sismed-analytics/internal/service"
	"github.com/dquispe/sismed-analytics/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	if cfg.Server.Mode == "debug" {
		logger.SetLevel("debug")
		gin.SetMode(gin.DebugMode)
	} else {
		logger.SetLevel("info")
		gin.SetMode(gin.ReleaseMode)
	}

	// Record source: plain per-request reads, or mtime-invalidated snapshots
	var source repository.RecordSource = csvsource.New(cfg.Data.Dir)
	if cfg.Data.CacheEnabled {
		source = csvsource.NewCached(csvsource.New(cfg.Data.Dir))
	}

	summaryService := service.NewSummaryService(source)

	router := api.NewRouter(&api.Services{SummaryService: summaryService}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Str("data_dir", cfg.Data.Dir).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
