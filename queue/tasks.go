// Package queue defines the asynq background jobs run by cmd/worker:
// retrying OCR on documents that failed to extract usable text inline
// (enqueued by the engine), and periodically optimizing the vector index
// (enqueued by cmd/worker's own scheduler). Both are deliberately
// kept out of the request path since OCR is vision-LLM-latency bound and
// index optimization is a maintenance pass, not user-facing work.
package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskOCRRetry      = "document:ocr_retry"
	TaskIndexOptimize = "index:optimize"
)

// OCRRetryPayload identifies the document to re-ingest with the vision
// OCR parse method forced, bypassing the inline scanned-page heuristic.
type OCRRetryPayload struct {
	Path string `json:"path"`
}

// NewOCRRetryTask builds a task for Enqueue, queued on "critical" since a
// caller is typically waiting on the outcome of a failed ingest.
func NewOCRRetryTask(path string) (*asynq.Task, error) {
	payload, err := json.Marshal(OCRRetryPayload{Path: path})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(
		TaskOCRRetry,
		payload,
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
		asynq.Queue("critical"),
	), nil
}

// NewIndexOptimizeTask builds a task with no payload; the handler always
// optimizes the single configured index. Queued on "low" since it never
// blocks a caller.
func NewIndexOptimizeTask() *asynq.Task {
	return asynq.NewTask(
		TaskIndexOptimize,
		nil,
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
		asynq.Queue("low"),
	)
}
