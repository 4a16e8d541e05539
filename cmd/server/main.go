package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anshulm/prepdeck/internal/api"
	"github.com/anshulm/prepdeck/internal/config"
	"github.com/anshulm/prepdeck/internal/content"
	"github.com/anshulm/prepdeck/internal/db"
	"github.com/anshulm/prepdeck/internal/jobs"
	"github.com/anshulm/prepdeck/internal/logger"
	"github.com/anshulm/prepdeck/internal/repository/sqlite"
	"github.com/anshulm/prepdeck/internal/services"
	"github.com/anshulm/prepdeck/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("PrepDeck Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("content_dir=%s", cfg.ContentDir)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("reload_worker_count=%d", cfg.ReloadWorkerCount)
	log.Debug("reload_queue_size=%d", cfg.ReloadQueueSize)
	log.Debug("due_limit=%d", cfg.DueLimit)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	library, err := content.Open(cfg.ContentDir)
	if err != nil {
		log.Error("failed to load content library: %v", err)
		os.Exit(1)
	}
	snap := library.Snapshot()
	log.Info("content loaded: %d problems, %d quiz cards", len(snap.Problems), len(snap.MCQs))

	reloadPool := worker.NewPool(cfg.ReloadWorkerCount, cfg.ReloadQueueSize)

	reviewStore := sqlite.NewReviewStore(database.DB)
	historyStore := sqlite.NewHistoryStore(database.DB)
	sessionStore := sqlite.NewSessionStore(database.DB)
	progressStore := sqlite.NewProgressStore(database.DB)

	schedulerService := services.NewSchedulerService(reviewStore, historyStore)
	sessionService := services.NewSessionService(sessionStore, progressStore, schedulerService, library)
	statsService := services.NewStatsService(schedulerService, library)

	srv := &api.Server{
		Sessions:  sessionService,
		Scheduler: schedulerService,
		Stats:     statsService,
		History:   historyStore,
		Progress:  progressStore,
		Library:   library,
		Jobs:      jobs.NewWorkerQueue(reloadPool, library),
		DB:        database.DB,
		DueLimit:  cfg.DueLimit,
	}

	ctx, cancel := context.WithCancel(context.Background())
	reloadPool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping worker pool")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	reloadPool.Stop()

	log.Info("===========================================")
	log.Info("PrepDeck Server Stopped")
	log.Info("===========================================")
}
