package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"resty.dev/v3"
)

// DefaultBaseURL is the production query endpoint.
const DefaultBaseURL = "https://www.alphavantage.co/query"

const requestTimeout = 30 * time.Second

// Field names the upstream uses inside 200-status bodies. An "Error Message"
// is a hard failure; "Note" and "Information" are advisories (usually call
// frequency warnings) that still accompany a usable payload.
const (
	errorField       = "Error Message"
	noteField        = "Note"
	informationField = "Information"
)

// QueryKind selects which upstream resource to fetch for a symbol.
type QueryKind string

const (
	// KindProfile fetches descriptive fund metadata (issuer, expense ratio, ...)
	KindProfile QueryKind = "profile"
	// KindHoldings fetches the fund's constituent assets and weights
	KindHoldings QueryKind = "holdings"
)

// Function returns the upstream function name for this query kind.
func (k QueryKind) Function() string {
	switch k {
	case KindProfile:
		return "ETF_PROFILE"
	case KindHoldings:
		return "ETF_HOLDINGS"
	default:
		return ""
	}
}

// Payload is a decoded upstream response body.
type Payload map[string]any

// Client issues categorized ETF queries against the AlphaVantage API.
// It is idempotent and safe to share across calls within one process.
type Client struct {
	apiKey string
	client *resty.Client
	logger *slog.Logger
}

// NewClient creates a new AlphaVantage client. An empty API key is a
// configuration error and fails construction. An empty baseURL selects the
// production endpoint.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("alphavantage API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(requestTimeout)

	return &Client{
		apiKey: apiKey,
		client: client,
		logger: slog.Default().With("component", "alphavantage"),
	}, nil
}

// Fetch retrieves one resource for the symbol. The returned error, when not
// nil, is always a *FetchError: transport for network-level failures and
// non-2xx statuses, parse for malformed bodies, and api for failures the
// upstream signals inside a successful HTTP response. Advisory "Note" and
// "Information" fields are logged as warnings, not treated as failures.
func (c *Client) Fetch(ctx context.Context, symbol string, kind QueryKind) (Payload, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": kind.Function(),
			"symbol":   symbol,
			"apikey":   c.apiKey,
		}).
		Get("")

	if err != nil {
		return nil, NewTransportError(fmt.Sprintf("request for %s %s failed: %v", symbol, kind, err), err)
	}

	if !resp.IsSuccess() {
		return nil, NewTransportError(fmt.Sprintf("alphavantage API returned status %d", resp.StatusCode()), nil)
	}

	var payload Payload
	if err := json.Unmarshal(resp.Bytes(), &payload); err != nil {
		return nil, NewParseError(err)
	}

	if msg, ok := payload[errorField].(string); ok {
		return nil, NewAPIError(msg)
	}

	for _, field := range []string{noteField, informationField} {
		if note, ok := payload[field].(string); ok {
			c.logger.Warn("alphavantage advisory",
				"symbol", symbol,
				"kind", string(kind),
				"note", note)
		}
	}

	return payload, nil
}
