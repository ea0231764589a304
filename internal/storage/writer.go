package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"etfingest/internal/alphavantage"
)

// ObjectStore is the capability the writer needs from the underlying store:
// write bytes with metadata to a keyed location, and name that location.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) error
	URI(key string) string
}

const (
	keyPrefix       = "etf_data"
	contentTypeJSON = "application/json"
	sourceName      = "alphavantage"
	timestampLayout = "20060102_150405"
)

// Writer serializes fetched payloads and persists each one as a new
// timestamped object with descriptive metadata.
type Writer struct {
	store ObjectStore
}

// NewWriter creates a writer over the given object store.
func NewWriter(store ObjectStore) *Writer {
	return &Writer{store: store}
}

// Write persists one payload and returns the canonical URI of the written
// object. Every call creates a new object; a store failure propagates as an
// error without any internal retry.
func (w *Writer) Write(ctx context.Context, payload alphavantage.Payload, symbol string, kind alphavantage.QueryKind, ts time.Time) (string, error) {
	data, err := serialize(payload)
	if err != nil {
		return "", fmt.Errorf("failed to serialize %s %s payload: %w", symbol, kind, err)
	}

	key := objectKey(symbol, kind, ts)
	metadata := map[string]string{
		"symbol":              symbol,
		"data_type":           string(kind),
		"ingestion_timestamp": ts.Format(timestampLayout),
		"source":              sourceName,
	}

	if err := w.store.Put(ctx, key, data, contentTypeJSON, metadata); err != nil {
		return "", fmt.Errorf("failed to store %s %s payload: %w", symbol, kind, err)
	}

	return w.store.URI(key), nil
}

// objectKey builds the date-partitioned storage key:
//
//	etf_data/{kind}/{symbol}/{YYYY/MM/DD}/{symbol}_{kind}_{YYYYMMDD_HHMMSS}_{uuid8}.json
//
// The uuid fragment keeps keys unique when two writes for the same symbol
// and kind land within the same second.
func objectKey(symbol string, kind alphavantage.QueryKind, ts time.Time) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s_%s_%s_%s.json",
		keyPrefix, kind, symbol,
		ts.Format("2006/01/02"),
		symbol, kind, ts.Format(timestampLayout),
		uuid.NewString()[:8])
}

// serialize renders the payload as two-space-indented JSON with HTML escaping
// off, so non-ASCII content survives byte-for-byte for human inspection.
func serialize(payload alphavantage.Payload) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
