package ingest

import (
	"context"
	"log/slog"
	"time"

	"etfingest/internal/alphavantage"
)

// Status classifies a per-symbol ingestion outcome.
type Status string

const (
	// StatusSuccess means every requested fetch and write completed
	StatusSuccess Status = "success"
	// StatusFailure means at least one required fetch or write failed
	StatusFailure Status = "error"
)

// DataSource fetches one categorized payload for a symbol.
type DataSource interface {
	Fetch(ctx context.Context, symbol string, kind alphavantage.QueryKind) (alphavantage.Payload, error)
}

// ArtifactWriter persists one payload and returns its canonical location.
type ArtifactWriter interface {
	Write(ctx context.Context, payload alphavantage.Payload, symbol string, kind alphavantage.QueryKind, ts time.Time) (string, error)
}

// SymbolOutcome records what happened for one symbol in one run. It is
// complete when returned and never mutated afterwards. Locations lists the
// successfully written objects in write order, even when the outcome as a
// whole is a failure.
type SymbolOutcome struct {
	Symbol       string    `json:"symbol"`
	Timestamp    time.Time `json:"timestamp"`
	Locations    []string  `json:"files_created"`
	Status       Status    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// Policy controls how the orchestrator reacts when a step fails mid-sequence.
// With HaltOnFailure set, the first failed fetch or write stops the remaining
// steps for that symbol. With it unset, a failed profile leg still attempts
// the holdings leg. The outcome is a failure either way; only whether later
// steps run differs.
type Policy struct {
	HaltOnFailure bool
}

// DefaultPolicy halts a symbol's sequence at the first failure.
var DefaultPolicy = Policy{HaltOnFailure: true}

// Orchestrator runs the fetch-then-persist sequence for single symbols.
// It holds no state across invocations.
type Orchestrator struct {
	source DataSource
	writer ArtifactWriter
	policy Policy
	logger *slog.Logger
}

// New creates an orchestrator over the given collaborators.
func New(source DataSource, writer ArtifactWriter, policy Policy) *Orchestrator {
	return &Orchestrator{
		source: source,
		writer: writer,
		policy: policy,
		logger: slog.Default().With("component", "ingest"),
	}
}

// Ingest fetches and persists the profile for symbol, then the holdings when
// includeHoldings is set. Steps run in order:
//
//	fetch profile -> write profile -> fetch holdings -> write holdings
//
// Failures are captured in the outcome, never returned as errors. A write is
// only attempted for a payload whose fetch succeeded.
func (o *Orchestrator) Ingest(ctx context.Context, symbol string, includeHoldings bool) SymbolOutcome {
	outcome := SymbolOutcome{
		Symbol:    symbol,
		Timestamp: time.Now().UTC(),
		Status:    StatusSuccess,
	}

	kinds := []alphavantage.QueryKind{alphavantage.KindProfile}
	if includeHoldings {
		kinds = append(kinds, alphavantage.KindHoldings)
	}

	for _, kind := range kinds {
		if err := o.ingestKind(ctx, &outcome, kind); err != nil {
			outcome.Status = StatusFailure
			if outcome.ErrorMessage == "" {
				outcome.ErrorMessage = err.Error()
			}
			o.logger.Error("ingestion step failed",
				"symbol", symbol,
				"kind", string(kind),
				"error", err)
			if o.policy.HaltOnFailure {
				break
			}
		}
	}

	return outcome
}

func (o *Orchestrator) ingestKind(ctx context.Context, outcome *SymbolOutcome, kind alphavantage.QueryKind) error {
	payload, err := o.source.Fetch(ctx, outcome.Symbol, kind)
	if err != nil {
		return err
	}

	location, err := o.writer.Write(ctx, payload, outcome.Symbol, kind, outcome.Timestamp)
	if err != nil {
		return err
	}

	outcome.Locations = append(outcome.Locations, location)
	o.logger.Info("artifact written",
		"symbol", outcome.Symbol,
		"kind", string(kind),
		"location", location)
	return nil
}
