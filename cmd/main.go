package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arzan03/bssm-backend/internal/config"
	"github.com/arzan03/bssm-backend/internal/db"
	"github.com/arzan03/bssm-backend/internal/handlers"
	"github.com/arzan03/bssm-backend/internal/logging"
	"github.com/arzan03/bssm-backend/internal/server"
	"github.com/arzan03/bssm-backend/internal/services"
	"github.com/arzan03/bssm-backend/internal/storage"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store db.Store
	if cfg.StoreDriver == "memory" {
		log.Warn("Using in-memory store, data is lost on exit")
		store = db.NewMemoryStore()
	} else {
		mongoStore := db.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoTimeout, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoStore.Disconnect(shutdownCtx); err != nil {
				log.WithError(err).Warn("MongoDB disconnect failed")
			}
		}()
		store = mongoStore
	}

	services.Bootstrap(ctx, store, log)

	// Reports stay disabled unless MinIO is configured and reachable.
	var objects services.ObjectStore
	if cfg.ReportsEnabled() {
		minioStorage, err := storage.NewMinio(ctx, storage.MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		}, log)
		if err != nil {
			log.WithError(err).Warn("MinIO unavailable, report export disabled")
		} else {
			objects = minioStorage
		}
	}

	h := handlers.New(
		services.NewAuthService(store, services.NewTokenIssuer(cfg)),
		services.NewTransactionService(store),
		services.NewStatusService(store),
		services.NewReportService(store, objects, cfg.ReportURLExpiry),
		log,
	)
	app := server.New(cfg, h, log)

	go func() {
		<-ctx.Done()
		log.Info("Shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Shutdown failed")
		}
	}()

	log.WithField("port", cfg.Port).Info("Server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Error("Server stopped")
	}
}
