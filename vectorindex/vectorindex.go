// Package vectorindex abstracts the ANN store backing chunk retrieval
// (C5). The default backend is the teacher's embedded sqlite-vec table;
// an optional remote Qdrant collection can be selected via
// Config.VectorBackend for larger corpora.
package vectorindex

import (
	"context"
	"errors"
	"time"

	"github.com/ragserve/core/store"
)

// ErrIndexUnavailable is returned when the configured backend (sqlite-vec
// table or remote Qdrant collection) cannot be reached or created.
var ErrIndexUnavailable = errors.New("vectorindex: index unavailable")

// Result is a single nearest-neighbor hit.
type Result struct {
	ChunkID  int64
	Score    float64
	Metadata map[string]string
}

// Stats reports index health and sizing, surfaced on the /health and
// /documents endpoints.
type Stats struct {
	VectorCount int64
	Dimension   int
	Backend     string // "sqlite-vec" | "qdrant"
	Tier        string // fixed per backend: "embedded" (sqlite-vec) | "enterprise" (qdrant); VectorCount does not change it
}

// Index is the interface every ANN backend implements: get-or-create a
// collection, upsert batches of vectors, run a KNN query, delete vectors
// belonging to a document, and report size.
type Index interface {
	// EnsureCollection creates the backing collection/table if absent.
	// Idempotent.
	EnsureCollection(ctx context.Context) error

	// Upsert writes a batch of chunk embeddings. Implementations pace
	// large batches and retry transient failures (see batchUpsert below).
	Upsert(ctx context.Context, items []UpsertItem) error

	// Query returns the k nearest chunks to queryEmbedding.
	Query(ctx context.Context, queryEmbedding []float32, k int) ([]Result, error)

	// DeleteDocument removes all vectors belonging to a document.
	DeleteDocument(ctx context.Context, documentID int64) error

	// Count returns the number of indexed vectors, best-effort.
	Count(ctx context.Context) (int64, error)

	// Stats reports backend/tier info for operational visibility.
	Stats(ctx context.Context) (Stats, error)

	// Optimize runs a backend-specific maintenance pass (index
	// statistics refresh, compaction, segment merge). Invoked
	// periodically by the background worker, never on the request path.
	Optimize(ctx context.Context) error
}

// UpsertItem is one vector to write, keyed by chunk ID.
type UpsertItem struct {
	ChunkID   int64
	DocumentID int64
	Embedding []float32
}

// upsertBatchSize and upsertPacingDelay bound how aggressively large
// ingests hit the index: batches are capped and paced to avoid
// saturating embedded SQLite or a remote Qdrant node during bulk loads.
const (
	upsertBatchSize   = 50
	upsertPacingDelay = 500 * time.Millisecond
	upsertMaxRetries  = 3
)

// batchUpsert splits items into upsertBatchSize-sized batches, calling
// writeBatch for each with exponential-backoff retry, pacing between
// batches so a large ingest does not monopolize the index.
func batchUpsert(ctx context.Context, items []UpsertItem, writeBatch func(context.Context, []UpsertItem) error) error {
	for start := 0; start < len(items); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(items) {
			end = len(items)
		}
		batch := items[start:end]

		var lastErr error
		backoff := 200 * time.Millisecond
		for attempt := 0; attempt < upsertMaxRetries; attempt++ {
			if attempt > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
			}
			lastErr = writeBatch(ctx, batch)
			if lastErr == nil {
				break
			}
		}
		if lastErr != nil {
			return lastErr
		}

		if end < len(items) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(upsertPacingDelay):
			}
		}
	}
	return nil
}

// New constructs the Index selected by backend ("sqlite-vec" or
// "qdrant"). For sqlite-vec it wraps the already-open store; for qdrant
// it dials the configured collection.
func New(backend string, st *store.Store, qdrantAddr, qdrantCollection string, dim int) (Index, error) {
	switch backend {
	case "qdrant":
		return newQdrantIndex(qdrantAddr, qdrantCollection, dim)
	default:
		return newSQLiteIndex(st, dim), nil
	}
}
