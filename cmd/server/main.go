package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"haulageBackoffice/internal/config"
	"haulageBackoffice/internal/db"
	"haulageBackoffice/internal/httpapi"
	"haulageBackoffice/repository"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "config", cfg.String())

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.Error("close db", "err", err)
		}
	}()

	dispatchers := repository.NewDispatcherRepository(d)
	jobTypes := repository.NewJobTypeRepository(d)
	drivers := repository.NewDriverRepository(d)
	jobs := repository.NewJobRepository(d)
	invoices := repository.NewInvoiceRepository(d)

	srv := httpapi.New(logger, dispatchers, jobTypes, drivers, jobs, invoices)
	shutdown, err := httpapi.Start(cfg, srv)
	if err != nil {
		log.Fatalf("start http: %v", err)
	}
	logger.Info("http server listening", "addr", cfg.HTTP.Address)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
