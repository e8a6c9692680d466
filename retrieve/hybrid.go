// Package retrieve implements the hybrid retrieval step (C7): an
// over-fetch from the vector index filtered by filename/domain, a
// similarity-plus-domain-boost rescore, a lexical-overlap blend once
// enough candidates survive, an optional (no-op) rerank pass, and
// chunk-neighbor expansion.
package retrieve

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/ragserve/core/llm"
	"github.com/ragserve/core/store"
)

// Config tunes the hybrid scoring layer.
type Config struct {
	VectorShare     float64 // weight given to vector similarity (default 0.7)
	LexicalShare    float64 // weight given to lexical word-overlap (default 0.3)
	DomainBoost     float64 // additive bonus when a candidate's own domain matches the query's classified domain
	SimilarityFloor float64 // candidates scoring below this after the boost are dropped
}

// Options configures a single hybrid search call.
type Options struct {
	NResults int
	Filename string // when set, restricts candidates to this source document
	Domain   string // query's classified domain; "" or "general" disables the domain filter/boost
	Expand   bool   // when true, pull chunk_index-1/+1 neighbors of each top candidate
}

// domainLookup resolves the persisted domain classification of a
// document. Injected rather than imported so this leaf package never
// depends on the engine that owns document metadata.
type domainLookup func(ctx context.Context, documentID int64) string

// Retriever implements C7 directly against the vector store, bypassing
// any fused multi-channel search so filename/domain filters and the
// lexical-overlap score can be computed exactly as specified.
type Retriever struct {
	store    *store.Store
	embedder llm.Provider
	domainOf domainLookup
	cfg      Config
}

// New builds a Retriever around the embedding provider used to vectorize
// queries and a domain-lookup callback for the per-candidate domain boost.
func New(st *store.Store, embedder llm.Provider, domainOf domainLookup, cfg Config) *Retriever {
	if cfg.VectorShare == 0 && cfg.LexicalShare == 0 {
		cfg.VectorShare = 0.7
		cfg.LexicalShare = 0.3
	}
	return &Retriever{store: st, embedder: embedder, domainOf: domainOf, cfg: cfg}
}

// lexicalCandidateFloor is the minimum surviving candidate count needed
// before the lexical-overlap blend (Step 3) is applied; below this the
// vector-similarity ranking from Step 2 is used as-is.
const lexicalCandidateFloor = 4

// Search runs the full C7 pipeline: over-fetch, filter by filename/domain,
// rescore with similarity + domain boost, blend in lexical overlap once
// enough candidates remain, rerank (no-op here), and optionally expand
// neighbors.
func (r *Retriever) Search(ctx context.Context, query string, opts Options) ([]store.RetrievalResult, error) {
	n := opts.NResults
	if n <= 0 {
		n = 5
	}

	overFetch := n * 3
	if overFetch > 15 {
		overFetch = 15
	}
	if overFetch < n {
		overFetch = n
	}

	embeddings, err := r.embedder.Embed(ctx, []string{query})
	if err != nil || len(embeddings) == 0 {
		return nil, err
	}

	// Over-fetch a wider pool than overFetch so that filtering by
	// filename/domain still leaves enough candidates; the store has no
	// native "where" clause, so filtering happens client-side here.
	raw, err := r.store.VectorSearch(ctx, embeddings[0], overFetch*4)
	if err != nil {
		return nil, err
	}

	targetDomain := opts.Domain
	domainFilterActive := targetDomain != "" && targetDomain != "general"

	filtered := make([]store.RetrievalResult, 0, len(raw))
	for _, res := range raw {
		if opts.Filename != "" && res.Filename != opts.Filename {
			continue
		}
		if domainFilterActive && r.domainOf != nil && r.domainOf(ctx, res.DocumentID) != targetDomain {
			continue
		}
		filtered = append(filtered, res)
		if len(filtered) >= overFetch {
			break
		}
	}

	rescored := r.rescore(ctx, filtered, targetDomain)

	if len(rescored) >= lexicalCandidateFloor {
		rescored = r.blendLexical(query, rescored)
	}

	keep := 2 * n
	if keep > len(rescored) {
		keep = len(rescored)
	}
	rescored = rescored[:keep]

	// Step 4: cross-encoder rerank. No reranker model is configured in
	// this deployment, so the similarity/lexical ordering from Steps 2-3
	// passes through unchanged.
	if len(rescored) > n {
		rescored = rescored[:n]
	}

	if opts.Expand {
		rescored = r.expand(ctx, rescored)
	}

	return rescored, nil
}

// rescore converts each raw result's score to a similarity in [0,1]
// (store.VectorSearch already reports 1-distance), applies the domain
// boost only when the candidate's own resolved domain matches the
// target domain, and drops anything below the similarity floor.
func (r *Retriever) rescore(ctx context.Context, raw []store.RetrievalResult, targetDomain string) []store.RetrievalResult {
	floor := r.cfg.SimilarityFloor
	boostEligible := targetDomain != "" && targetDomain != "general"

	out := make([]store.RetrievalResult, 0, len(raw))
	for _, res := range raw {
		similarity := clamp01(res.Score)

		if r.cfg.DomainBoost > 0 && boostEligible && r.domainOf != nil && r.domainOf(ctx, res.DocumentID) == targetDomain {
			similarity += r.cfg.DomainBoost
		}

		if floor > 0 && similarity < floor {
			continue
		}

		res.Score = similarity
		out = append(out, res)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// blendLexical computes a genuine lexical-overlap score against the
// query's word set and blends it with the vector similarity computed by
// rescore: hybrid = vectorShare*similarity + lexicalShare*lexical.
func (r *Retriever) blendLexical(query string, candidates []store.RetrievalResult) []store.RetrievalResult {
	vectorShare, lexicalShare := r.cfg.VectorShare, r.cfg.LexicalShare
	if vectorShare == 0 && lexicalShare == 0 {
		vectorShare, lexicalShare = 0.7, 0.3
	}

	queryWords := wordSet(query)
	out := make([]store.RetrievalResult, len(candidates))
	for i, c := range candidates {
		lexical := lexicalOverlap(queryWords, wordSet(c.Content))
		c.Score = vectorShare*c.Score + lexicalShare*lexical
		out[i] = c
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// wordSet lowercases and tokenizes text into a set of distinct words.
func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		trimmed := strings.Trim(w, ".,!?;:\"'()[]{}")
		if trimmed != "" {
			set[trimmed] = struct{}{}
		}
	}
	return set
}

// lexicalOverlap is |query_words ∩ chunk_words| / max(|query_words|, 1).
func lexicalOverlap(queryWords, chunkWords map[string]struct{}) float64 {
	if len(queryWords) == 0 {
		return 0
	}
	intersect := 0
	for w := range queryWords {
		if _, ok := chunkWords[w]; ok {
			intersect++
		}
	}
	return float64(intersect) / float64(len(queryWords))
}

// expand pulls the chunk_index-1/+1 neighbors of each result and
// appends them (deduplicated) so the assembler has adjacent context
// available.
func (r *Retriever) expand(ctx context.Context, results []store.RetrievalResult) []store.RetrievalResult {
	seen := make(map[int64]bool, len(results))
	for _, res := range results {
		seen[res.ChunkID] = true
	}

	out := append([]store.RetrievalResult(nil), results...)
	for _, res := range results {
		docID, pos, err := r.store.GetChunkPosition(ctx, res.ChunkID)
		if err != nil {
			slog.Debug("retrieve: skipping expand, position lookup failed", "chunk_id", res.ChunkID, "error", err)
			continue
		}
		neighbors, err := r.store.GetNeighborChunks(ctx, docID, pos)
		if err != nil {
			slog.Debug("retrieve: expand neighbor fetch failed", "chunk_id", res.ChunkID, "error", err)
			continue
		}
		for _, nb := range neighbors {
			if seen[nb.ID] {
				continue
			}
			seen[nb.ID] = true
			out = append(out, store.RetrievalResult{
				ChunkID:    nb.ID,
				DocumentID: nb.DocumentID,
				Content:    nb.Content,
				Heading:    nb.Heading,
				ChunkType:  nb.ChunkType,
				PageNumber: nb.PageNumber,
				Score:      res.Score * 0.5, // neighbor context, ranked below its anchor
			})
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
