// Command batch runs one scheduled ingestion over a list of ETF symbols.
// The symbol list comes from an event JSON file passed as the first argument
// ("-" for stdin), falling back to the configured ETF_SYMBOLS. Per-symbol
// failures are logged and do not change the exit code; configuration errors
// abort before any work begins.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	gcs "cloud.google.com/go/storage"
	"github.com/spf13/afero"

	"etfingest/internal/alphavantage"
	"etfingest/internal/config"
	"etfingest/internal/ingest"
	"etfingest/internal/storage"
)

// event mirrors the scheduler payload.
type event struct {
	Symbols         []string `json:"symbols"`
	IncludeHoldings *bool    `json:"include_holdings"`
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	symbols := cfg.Symbols
	includeHoldings := cfg.IncludeHoldings
	if len(os.Args) > 1 {
		evt, err := readEvent(os.Args[1])
		if err != nil {
			log.Fatalf("Failed to read event: %v", err)
		}
		symbols = evt.Symbols
		if evt.IncludeHoldings != nil {
			includeHoldings = *evt.IncludeHoldings
		}
	}

	if len(symbols) == 0 {
		log.Fatal("No ETF symbols provided")
	}

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("interrupt received, canceling")
		cancel()
	}()

	store, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize object store: %v", err)
	}

	source, err := alphavantage.NewClient(cfg.AlphavantageAPIKey, cfg.AlphavantageBaseURL)
	if err != nil {
		log.Fatalf("Failed to create AlphaVantage client: %v", err)
	}

	runner := ingest.NewRunner(ingest.New(source, storage.NewWriter(store), ingest.DefaultPolicy))

	outcomes, err := runner.Run(ctx, symbols, includeHoldings)
	if err != nil {
		log.Fatalf("Batch run failed: %v", err)
	}

	failures := 0
	for _, outcome := range outcomes {
		if outcome.Status == ingest.StatusSuccess {
			slog.Info("symbol ingested",
				"symbol", outcome.Symbol,
				"files", len(outcome.Locations))
		} else {
			failures++
			slog.Error("symbol failed",
				"symbol", outcome.Symbol,
				"error", outcome.ErrorMessage,
				"files", len(outcome.Locations))
		}
	}
	slog.Info("batch complete", "symbols", len(outcomes), "failures", failures)
}

func readEvent(path string) (*event, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var evt event
	if err := json.NewDecoder(r).Decode(&evt); err != nil {
		return nil, fmt.Errorf("event payload must be valid JSON: %w", err)
	}
	return &evt, nil
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
