package testutil

import (
	"context"
	"fmt"
	"time"

	"etfingest/internal/alphavantage"
)

// Call records one fetch or write the stub received.
type Call struct {
	Symbol string
	Kind   alphavantage.QueryKind
}

// StubSource is a DataSource stub for orchestrator tests. It records every
// fetch and delegates to FetchFunc when set, returning a canned payload
// otherwise.
type StubSource struct {
	FetchFunc func(ctx context.Context, symbol string, kind alphavantage.QueryKind) (alphavantage.Payload, error)
	Calls     []Call
}

// Fetch implements the DataSource interface
func (s *StubSource) Fetch(ctx context.Context, symbol string, kind alphavantage.QueryKind) (alphavantage.Payload, error) {
	s.Calls = append(s.Calls, Call{Symbol: symbol, Kind: kind})
	if s.FetchFunc != nil {
		return s.FetchFunc(ctx, symbol, kind)
	}
	return alphavantage.Payload{"symbol": symbol}, nil
}

// StubWriter is an ArtifactWriter stub for orchestrator tests. It records
// every write and delegates to WriteFunc when set, returning a synthetic
// location otherwise.
type StubWriter struct {
	WriteFunc func(ctx context.Context, payload alphavantage.Payload, symbol string, kind alphavantage.QueryKind, ts time.Time) (string, error)
	Calls     []Call
}

// Write implements the ArtifactWriter interface
func (w *StubWriter) Write(ctx context.Context, payload alphavantage.Payload, symbol string, kind alphavantage.QueryKind, ts time.Time) (string, error) {
	w.Calls = append(w.Calls, Call{Symbol: symbol, Kind: kind})
	if w.WriteFunc != nil {
		return w.WriteFunc(ctx, payload, symbol, kind, ts)
	}
	return fmt.Sprintf("gs://test-bucket/etf_data/%s/%s", kind, symbol), nil
}
