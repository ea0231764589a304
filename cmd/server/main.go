package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"

	"etfingest/internal/alphavantage"
	"etfingest/internal/config"
	"etfingest/internal/handler"
	"etfingest/internal/ingest"
	"etfingest/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize object store: %v", err)
	}

	source, err := alphavantage.NewClient(cfg.AlphavantageAPIKey, cfg.AlphavantageBaseURL)
	if err != nil {
		log.Fatalf("Failed to create AlphaVantage client: %v", err)
	}

	orch := ingest.New(source, storage.NewWriter(store), ingest.DefaultPolicy)

	router := gin.New()
	router.Use(gin.Recovery())
	router.HandleMethodNotAllowed = true
	handler.New(orch).RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

// newStore selects the artifact store: a local directory when STORAGE_DIR is
// set, the configured GCS bucket otherwise.
func newStore(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error) {
	if cfg.StorageDir != "" {
		return storage.NewFileStore(afero.NewOsFs(), cfg.StorageDir), nil
	}
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return storage.NewGCSStore(client, cfg.BucketName), nil
}
