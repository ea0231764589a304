package ingest

import (
	"context"
	"errors"
)

// ErrNoSymbols is returned when a batch run is requested without any symbols.
var ErrNoSymbols = errors.New("no symbols configured")

// Runner applies the orchestrator across a list of symbols.
type Runner struct {
	orch *Orchestrator
}

// NewRunner creates a Runner over the given orchestrator.
func NewRunner(orch *Orchestrator) *Runner {
	return &Runner{orch: orch}
}

// Run ingests each symbol sequentially, in request order. A failed symbol
// never aborts the rest: every requested symbol produces exactly one outcome,
// and the result order matches the input order. An empty symbol list is a
// configuration error, not a per-symbol outcome.
func (r *Runner) Run(ctx context.Context, symbols []string, includeHoldings bool) ([]SymbolOutcome, error) {
	if len(symbols) == 0 {
		return nil, ErrNoSymbols
	}

	outcomes := make([]SymbolOutcome, 0, len(symbols))
	for _, symbol := range symbols {
		outcomes = append(outcomes, r.orch.Ingest(ctx, symbol, includeHoldings))
	}
	return outcomes, nil
}
