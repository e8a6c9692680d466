package ragcore

import "errors"

var (
	// ErrDocumentNotFound is returned when a document ID does not exist.
	ErrDocumentNotFound = errors.New("ragcore: document not found")

	// ErrDocumentExists is returned when trying to ingest a duplicate path.
	ErrDocumentExists = errors.New("ragcore: document already exists")

	// ErrUnsupportedFormat is returned for unrecognized file formats.
	ErrUnsupportedFormat = errors.New("ragcore: unsupported document format")

	// ErrParsingFailed is returned when document parsing fails.
	ErrParsingFailed = errors.New("ragcore: parsing failed")

	// ErrEmbeddingFailed is returned when embedding generation fails.
	ErrEmbeddingFailed = errors.New("ragcore: embedding generation failed")

	// ErrLLMUnavailable is returned when the LLM provider is unreachable.
	ErrLLMUnavailable = errors.New("ragcore: LLM provider unavailable")

	// ErrLLMRequestFailed is returned when an LLM request fails.
	ErrLLMRequestFailed = errors.New("ragcore: LLM request failed")

	// ErrStoreClosed is returned when operating on a closed store.
	ErrStoreClosed = errors.New("ragcore: store is closed")

	// ErrNoResults is returned when retrieval yields no matching chunks.
	ErrNoResults = errors.New("ragcore: no results found")

	// ErrLowConfidence is returned when the answer confidence is below threshold.
	ErrLowConfidence = errors.New("ragcore: answer confidence below threshold")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("ragcore: invalid configuration")

	// ErrVisionRequired is returned when a document requires vision processing
	// but no vision provider is configured.
	ErrVisionRequired = errors.New("ragcore: vision provider required for this document")

	// ErrExternalParserRequired is returned when a legacy format needs an
	// external parsing service that is not configured.
	ErrExternalParserRequired = errors.New("ragcore: external parser required for legacy format")

	// ErrPayloadTooLarge is returned when an upload exceeds MaxPayloadBytes.
	ErrPayloadTooLarge = errors.New("ragcore: payload too large")

	// ErrDecodeFailed is returned when a text file's raw bytes cannot be
	// decoded by any supported character encoding. Malformed structured
	// input (JSON, XML) is reported as ErrParsingFailed.
	ErrDecodeFailed = errors.New("ragcore: decode failed")

	// ErrExtractionFailed is returned when a parser runs but produces no
	// usable sections from a document it claims to support.
	ErrExtractionFailed = errors.New("ragcore: extraction produced no content")

	// ErrIndexUnavailable is returned when the vector index backend
	// (sqlite-vec or qdrant) cannot be reached.
	ErrIndexUnavailable = errors.New("ragcore: vector index unavailable")

	// ErrUpsertFailed is returned when writing vectors to the index fails
	// after exhausting retries.
	ErrUpsertFailed = errors.New("ragcore: vector upsert failed")

	// ErrQueryFailed is returned when a retrieval-channel query (vector,
	// FTS, or graph) fails.
	ErrQueryFailed = errors.New("ragcore: retrieval query failed")

	// ErrClassificationFailed is returned when domain or query
	// classification cannot produce a usable label.
	ErrClassificationFailed = errors.New("ragcore: classification failed")

	// ErrModelUnavailable is returned when the circuit breaker wrapping an
	// LLM or embedding endpoint is open.
	ErrModelUnavailable = errors.New("ragcore: model endpoint unavailable")

	// ErrModelTimeout is returned when an LLM or embedding call exceeds
	// its deadline.
	ErrModelTimeout = errors.New("ragcore: model request timed out")

	// ErrCanceled is returned when a streaming or reasoning operation is
	// canceled by the caller before completion.
	ErrCanceled = errors.New("ragcore: operation canceled")

	// ErrInvariantViolation is returned when an internal consistency check
	// fails (e.g. a chunk referencing a missing parent, a malformed stream
	// transition). It signals a bug, not a user-facing condition.
	ErrInvariantViolation = errors.New("ragcore: invariant violation")
)
