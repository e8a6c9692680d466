// Package stream implements the stream dispatcher (C10): it drives the
// LLM through a streaming chat call, forwards each token as a framed
// JSON message, retries transport failures before the first token, and
// treats failures after the first token as terminal. A gobreaker
// circuit breaker guards the upstream LLM call so a failing endpoint
// fails fast with ErrModelUnavailable instead of exhausting the retry
// budget on every request.
package stream

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/ragserve/core/llm"
)

// ErrModelUnavailable is returned when the circuit breaker guarding the
// upstream chat provider is open, i.e. it has already tripped on
// repeated consecutive failures.
var ErrModelUnavailable = errors.New("stream: model unavailable")

// State is a stage of the dispatcher's state machine.
type State string

const (
	StateIdle        State = "idle"
	StateClassifying State = "classifying"
	StateRetrieving  State = "retrieving"
	StateReranking   State = "reranking"
	StateAssembling  State = "assembling"
	StateGenerating  State = "generating"
	StateStreaming   State = "streaming"
	StateDone        State = "done"
	StateError       State = "error"
	StateCanceled    State = "canceled"
)

const (
	maxPreTokenRetries = 3
	retryBaseDelay     = 200 * time.Millisecond
	noAnswerMessage    = "No answer could be generated."
)

// Frame is one newline-delimited JSON object emitted to the client.
type Frame struct {
	Answer          string      `json:"answer"`
	Status          string      `json:"status"` // "streaming" | "success" | "error" | "empty_kb" | "no_context"
	Context         string      `json:"context,omitempty"`
	Sources         interface{} `json:"sources,omitempty"`
	Classification  interface{} `json:"classification,omitempty"`
	ContextMetadata interface{} `json:"context_metadata,omitempty"`
}

// Request bundles everything the dispatcher needs to drive one query.
type Request struct {
	Messages        []llm.Message
	Sources         interface{}
	Classification  interface{}
	ContextMetadata interface{}
}

// Dispatcher runs the C10 state machine for a single query.
type Dispatcher struct {
	provider llm.Provider
	breaker  *gobreaker.CircuitBreaker
}

// New builds a Dispatcher around a chat provider, wrapping calls in a
// circuit breaker named for logging/metrics correlation.
func New(provider llm.Provider) *Dispatcher {
	settings := gobreaker.Settings{
		Name:        "llm-stream",
		MaxRequests: 1,
		Interval:    0,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &Dispatcher{provider: provider, breaker: gobreaker.NewCircuitBreaker(settings)}
}

// Emit is called by the dispatcher for every frame produced; the
// caller writes it to the client (e.g. as one JSON line).
type Emit func(Frame) error

// Run drives the state machine: classification/retrieval/assembly are
// assumed already done by the caller (reflected in req.Classification/
// Sources/ContextMetadata); Run owns GENERATING through DONE/ERROR/
// CANCELED.
func (d *Dispatcher) Run(ctx context.Context, req Request, emit Emit) error {
	state := StateGenerating
	slog.Debug("stream: entering state", "state", state)

	firstTokenSent := false
	tokensSent := 0

	chatReq := llm.ChatRequest{Messages: req.Messages}

	var finalErr error
	attempt := 0
	for {
		attempt++
		_, err := d.breaker.Execute(func() (interface{}, error) {
			return d.provider.StreamChat(ctx, chatReq, func(delta string) error {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				state = StateStreaming
				firstTokenSent = true
				tokensSent++
				return emit(Frame{
					Answer:          delta,
					Status:          "streaming",
					Sources:         req.Sources,
					Classification:  req.Classification,
					ContextMetadata: req.ContextMetadata,
				})
			})
		})

		if err == nil {
			finalErr = nil
			break
		}

		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			state = StateCanceled
			slog.Debug("stream: client disconnected, canceling", "tokens_sent", tokensSent)
			return nil
		}

		if firstTokenSent {
			// Transport errors after the first token are terminal.
			finalErr = err
			break
		}

		if errors.Is(err, gobreaker.ErrOpenState) {
			finalErr = ErrModelUnavailable
			break
		}

		if attempt >= maxPreTokenRetries {
			finalErr = err
			break
		}

		slog.Warn("stream: transient error before first token, retrying", "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(retryBaseDelay * time.Duration(1<<uint(attempt-1))):
		}
	}

	if finalErr != nil {
		state = StateError
		slog.Error("stream: terminal error", "error", finalErr, "tokens_sent", tokensSent)
		return emit(Frame{
			Answer: "[Error: " + finalErr.Error() + "]",
			Status: "error",
		})
	}

	state = StateDone
	answer := ""
	if tokensSent == 0 {
		answer = noAnswerMessage
	}
	return emit(Frame{
		Answer:          answer,
		Status:          "success",
		Sources:         req.Sources,
		Classification:  req.Classification,
		ContextMetadata: req.ContextMetadata,
	})
}
