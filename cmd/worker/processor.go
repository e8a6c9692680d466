package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/ragserve/core"
	"github.com/ragserve/core/queue"
)

// processor dispatches asynq tasks to the engine, holding no state of
// its own beyond the engine reference.
type processor struct {
	engine ragcore.Engine
}

func newProcessor(engine ragcore.Engine) *processor {
	return &processor{engine: engine}
}

// handleOCRRetry re-ingests a document forcing the vision OCR parse
// method, for documents whose native text extraction produced no usable
// chunks and whose inline scanned-page fallback (see parser.LooksScanned)
// was skipped or itself failed.
func (p *processor) handleOCRRetry(ctx context.Context, t *asynq.Task) error {
	var payload queue.OCRRetryPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("ocr retry: unmarshal payload failed: %w", asynq.SkipRetry)
	}

	slog.Info("worker: retrying OCR ingest", "path", payload.Path)
	_, err := p.engine.Ingest(ctx, payload.Path,
		ragcore.WithForceReparse(),
		ragcore.WithParseMethod("vision"))
	if err != nil {
		slog.Error("worker: OCR retry ingest failed", "path", payload.Path, "error", err)
		return err
	}
	return nil
}

// handleIndexOptimize runs the configured vector backend's maintenance
// pass (ANALYZE for sqlite-vec; a no-op for Qdrant, which self-optimizes).
func (p *processor) handleIndexOptimize(ctx context.Context, t *asynq.Task) error {
	index := p.engine.VectorIndex()
	if index == nil {
		return nil
	}
	slog.Info("worker: running index optimize pass")
	if err := index.Optimize(ctx); err != nil {
		slog.Error("worker: index optimize failed", "error", err)
		return err
	}
	return nil
}
