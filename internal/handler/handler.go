package handler

import (
	"context"
	"net/http"

	"etfingest/internal/ingest"

	"github.com/gin-gonic/gin"
)

// Ingestor runs the fetch-then-persist pipeline for one symbol.
type Ingestor interface {
	Ingest(ctx context.Context, symbol string, includeHoldings bool) ingest.SymbolOutcome
}

// Handler serves the request-triggered ingestion endpoint.
type Handler struct {
	ingestor Ingestor
}

func New(ingestor Ingestor) *Handler {
	return &Handler{ingestor: ingestor}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/ingest", h.Ingest)
}

type ingestRequest struct {
	Symbol          string `json:"symbol"`
	IncludeHoldings *bool  `json:"include_holdings"`
}

// Ingest handles a single-symbol ingestion request. Malformed or missing JSON
// and a missing symbol are client errors; an ingestion failure returns the
// outcome with a server-error status.
func (h *Handler) Ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be valid JSON"})
		return
	}
	if req.Symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "parameter symbol is required"})
		return
	}

	includeHoldings := true
	if req.IncludeHoldings != nil {
		includeHoldings = *req.IncludeHoldings
	}

	outcome := h.ingestor.Ingest(c.Request.Context(), req.Symbol, includeHoldings)

	status := http.StatusOK
	if outcome.Status != ingest.StatusSuccess {
		status = http.StatusInternalServerError
	}
	c.JSON(status, outcome)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
