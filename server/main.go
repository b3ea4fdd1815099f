package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lequocbao/image-cropping/internal/config"
	"github.com/lequocbao/image-cropping/internal/http/handlers"
	"github.com/lequocbao/image-cropping/internal/http/routes"
	"github.com/lequocbao/image-cropping/internal/logging"
	"github.com/lequocbao/image-cropping/internal/services/processor"
	"github.com/lequocbao/image-cropping/internal/services/queue"
	"github.com/lequocbao/image-cropping/internal/services/storage"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Initialize services
	imageProcessor := processor.NewImageProcessor(cfg.Crop.DefaultFraction)

	storageService, err := storage.NewStorageService(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage service", zap.Error(err))
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	storageService.StartCacheJanitor(workerCtx, cfg.Storage.CacheDuration, logger)

	queueService, err := queue.NewQueueService(cfg.RabbitMQ.URL, imageProcessor, storageService, logger)
	if err != nil {
		logger.Warn("Failed to initialize queue service, async jobs disabled", zap.Error(err))
		queueService = nil
	} else {
		defer queueService.Close()
		for i := 1; i <= cfg.RabbitMQ.Workers; i++ {
			if err := queueService.StartWorker(workerCtx, i); err != nil {
				logger.Error("Failed to start worker", zap.Int("worker_id", i), zap.Error(err))
			}
		}
	}

	// Initialize handlers
	imageHandler := handlers.NewImageHandler(imageProcessor, storageService, queueService, logger, cfg)

	router := routes.NewRouter(imageHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	// Start server
	go func() {
		logger.Info("Starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stopWorkers()

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
