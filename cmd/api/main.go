package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"committee-tracker/backend/internal/config"
	"committee-tracker/backend/internal/database"
	"committee-tracker/backend/internal/routes"
	"committee-tracker/backend/internal/seed"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := cfg.NewLogger()
	gin.SetMode(cfg.GinMode)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		logger.Fatalf("database: %v", err)
	}
	defer db.Close()

	seeded, err := seed.Run(context.Background(), db, logger)
	if err != nil {
		logger.Fatalf("seed: %v", err)
	}
	logger.WithFields(log.Fields{"db_path": cfg.DBPath, "seeded": seeded}).Info("database ready")

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           routes.SetupRouter(db, cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown")
	}
	if err := database.Checkpoint(shutdownCtx, db); err != nil {
		logger.WithError(err).Warn("wal checkpoint")
	}
}
