package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"go-inventory-qr/internal/model"
	"go-inventory-qr/internal/server"
	"go-inventory-qr/internal/ws"
	"go-inventory-qr/pkg/config"
	"go-inventory-qr/pkg/database"
	"go-inventory-qr/pkg/logger"
	"go-inventory-qr/pkg/storage"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: cfg.App.Name,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "server exited with error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	// 2. Setup Database
	db, err := database.Connect(cfg.DB, logg)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		return err
	}

	disk, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	// 3. Setup WebSocket Hub
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := ws.NewHub(logg)
	go hub.Run(hubCtx)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv, err := server.New(server.Deps{
		Config:   cfg,
		DB:       db,
		Logger:   logg,
		Disk:     disk,
		Hub:      hub,
		Registry: registry,
	})
	if err != nil {
		return err
	}

	// 4. Seed default categories and admin user
	if _, err := srv.Bootstrap.Run(ctx); err != nil {
		return err
	}

	// 5. Graceful Shutdown
	listenErr := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "http server starting")
		listenErr <- srv.App.Listen(":" + cfg.App.Port)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(context.Background(), "shutting down server")
	stopHub()
	if err := srv.App.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logg.Info(context.Background(), "server exited")
	return nil
}
