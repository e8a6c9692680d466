// Package classify implements the domain classifier (C3, run once per
// ingested document) and the query classifier (C6, run once per
// question). Both share the same LLM-JSON-with-keyword-fallback shape:
// ask the chat model for a single JSON object, fall back to a keyword
// vote against a static per-domain dictionary on any transport error,
// malformed response, or timeout, and cache the result by content hash.
package classify

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ragserve/core/llm"
)

// DomainResult is the C3 output: every chunk of the classified document
// inherits this label.
type DomainResult struct {
	Domain     string  `json:"domain"`
	Title      string  `json:"title"`
	Confidence float64 `json:"confidence"`
	Type       string  `json:"type"`
}

// QueryResult is the C6 output for an incoming question.
type QueryResult struct {
	Domain     string   `json:"domain"`
	Topic      string   `json:"topic"`
	Confidence float64  `json:"confidence"`
	Keywords   []string `json:"keywords"`
}

// keywordDictionary maps a domain label to the keywords that vote for
// it. Extend this table as new document domains are seen in practice.
var keywordDictionary = map[string][]string{
	"legal": {
		"agreement", "contract", "clause", "party", "parties", "liability",
		"indemnify", "jurisdiction", "covenant", "whereas", "hereinafter",
		"statute", "regulation", "compliance",
	},
	"engineering": {
		"specification", "tolerance", "assembly", "schematic", "voltage",
		"torque", "calibration", "firmware", "circuit", "datasheet",
	},
	"financial": {
		"revenue", "balance sheet", "fiscal", "invoice", "ledger",
		"amortization", "equity", "audit", "gaap",
	},
	"medical": {
		"diagnosis", "dosage", "patient", "clinical", "symptom",
		"treatment", "prescription", "pathology",
	},
	"general": {},
}

// Classifier runs both C3 and C6 classification, backed by an LLM
// chat provider with a keyword-vote fallback and a Redis result cache.
type Classifier struct {
	chat  llm.Provider
	redis *redis.Client

	domainCacheTTL time.Duration
	queryCacheTTL  time.Duration
}

// New builds a Classifier. redisClient may be nil, in which case
// results are not cached across process restarts.
func New(chat llm.Provider, redisClient *redis.Client, domainCacheTTL, queryCacheTTL time.Duration) *Classifier {
	if domainCacheTTL <= 0 {
		domainCacheTTL = 24 * time.Hour
	}
	if queryCacheTTL <= 0 {
		queryCacheTTL = 1 * time.Hour
	}
	return &Classifier{
		chat:           chat,
		redis:          redisClient,
		domainCacheTTL: domainCacheTTL,
		queryCacheTTL:  queryCacheTTL,
	}
}

// ClassifyDocument implements C3: it feeds a bounded prefix of the
// first chunk plus the filename to the LLM and caches the result by
// hash of (prefix[:500] + filename).
func (c *Classifier) ClassifyDocument(ctx context.Context, firstChunk, filename string) (DomainResult, error) {
	prefix := firstChunk
	if len(prefix) > 1000 {
		prefix = prefix[:1000]
	}
	cacheKey := "classify:doc:" + hashKey(truncate(prefix, 500)+filename)

	if cached, ok := c.getCached(ctx, cacheKey); ok {
		var r DomainResult
		if err := json.Unmarshal(cached, &r); err == nil {
			return r, nil
		}
	}

	result, err := c.classifyDocumentLLM(ctx, prefix, filename)
	if err != nil {
		slog.Warn("classify: document LLM classification failed, using keyword fallback",
			"filename", filename, "error", err)
		result = keywordClassifyDocument(prefix, filename)
	}

	if b, err := json.Marshal(result); err == nil {
		c.setCached(ctx, cacheKey, b, c.domainCacheTTL)
	}
	return result, nil
}

// ClassifyQuery implements C6: classification of an incoming question,
// cached by SHA-256 of the query text.
func (c *Classifier) ClassifyQuery(ctx context.Context, question string) (QueryResult, error) {
	cacheKey := "classify:query:" + hashKey(question)

	if cached, ok := c.getCached(ctx, cacheKey); ok {
		var r QueryResult
		if err := json.Unmarshal(cached, &r); err == nil {
			return r, nil
		}
	}

	result, err := c.classifyQueryLLM(ctx, question)
	if err != nil {
		slog.Warn("classify: query LLM classification failed, using keyword fallback", "error", err)
		result = keywordClassifyQuery(question)
	}

	if b, err := json.Marshal(result); err == nil {
		c.setCached(ctx, cacheKey, b, c.queryCacheTTL)
	}
	return result, nil
}

func (c *Classifier) classifyDocumentLLM(ctx context.Context, prefix, filename string) (DomainResult, error) {
	prompt := fmt.Sprintf(
		"Classify the following document. Respond with a single JSON object "+
			"matching {\"domain\": string, \"title\": string, \"confidence\": number 0-1, \"type\": string}.\n\n"+
			"Filename: %s\n\nExcerpt:\n%s", filename, prefix)

	resp, err := c.chat.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: "You classify documents into domains. Reply with JSON only."},
			{Role: "user", Content: prompt},
		},
		Temperature:    0,
		ResponseFormat: "json_object",
	})
	if err != nil {
		return DomainResult{}, err
	}

	var result DomainResult
	if err := json.Unmarshal([]byte(resp.Content), &result); err != nil {
		return DomainResult{}, fmt.Errorf("decoding domain classification: %w", err)
	}
	return result, nil
}

func (c *Classifier) classifyQueryLLM(ctx context.Context, question string) (QueryResult, error) {
	prompt := fmt.Sprintf(
		"Classify the following question. Respond with a single JSON object "+
			"matching {\"domain\": string, \"topic\": string, \"confidence\": number 0-1, \"keywords\": [string]}.\n\n"+
			"Question: %s", question)

	resp, err := c.chat.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: "You classify questions into domains. Reply with JSON only."},
			{Role: "user", Content: prompt},
		},
		Temperature:    0,
		ResponseFormat: "json_object",
	})
	if err != nil {
		return QueryResult{}, err
	}

	var result QueryResult
	if err := json.Unmarshal([]byte(resp.Content), &result); err != nil {
		return QueryResult{}, fmt.Errorf("decoding query classification: %w", err)
	}
	return result, nil
}

// keywordClassifyDocument votes across keywordDictionary using the
// excerpt text; the domain with the most keyword hits wins, defaulting
// to "general" when nothing matches.
func keywordClassifyDocument(excerpt, filename string) DomainResult {
	domain, hits := voteDomain(excerpt + " " + filename)
	return DomainResult{
		Domain:     domain,
		Title:      filename,
		Confidence: confidenceFromHits(hits),
		Type:       "document",
	}
}

func keywordClassifyQuery(question string) QueryResult {
	domain, hits := voteDomain(question)
	return QueryResult{
		Domain:     domain,
		Topic:      domain,
		Confidence: confidenceFromHits(hits),
		Keywords:   matchedKeywords(question, domain),
	}
}

func voteDomain(text string) (string, int) {
	lower := strings.ToLower(text)
	bestDomain := "general"
	bestHits := 0
	for domain, keywords := range keywordDictionary {
		hits := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			bestDomain = domain
		}
	}
	return bestDomain, bestHits
}

func matchedKeywords(text, domain string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, kw := range keywordDictionary[domain] {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// confidenceFromHits maps a keyword hit count to a bounded confidence
// score; the keyword path never reports the full certainty an LLM
// classification would.
func confidenceFromHits(hits int) float64 {
	switch {
	case hits == 0:
		return 0.3
	case hits == 1:
		return 0.5
	case hits <= 3:
		return 0.65
	default:
		return 0.8
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func hashKey(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

func (c *Classifier) getCached(ctx context.Context, key string) ([]byte, bool) {
	if c.redis == nil {
		return nil, false
	}
	val, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *Classifier) setCached(ctx context.Context, key string, val []byte, ttl time.Duration) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Set(ctx, key, val, ttl).Err()
}
