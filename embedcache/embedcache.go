// Package embedcache implements the embedding cache (C4): an exact
// content-hash lookup backed by an in-process FIFO-evicted map, with an
// optional Redis tier for durability across process restarts, plus a
// Jaccard-similarity companion index for near-duplicate reuse.
package embedcache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

const (
	// defaultCapacity bounds the in-process FIFO map, as a
	// keep-the-hot-set guard independent of Redis durability.
	defaultCapacity = 10000

	// similarityThreshold is the minimum Jaccard token overlap for two
	// texts to share a cached embedding.
	similarityThreshold = 0.95
)

// entry is one cached embedding plus the token set used for
// similarity lookups.
type entry struct {
	embedding []float32
	tokens    map[string]struct{}
}

// Cache is a thread-safe embedding cache. The zero value is not usable;
// construct with New.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]entry
	order    []string // insertion order, for FIFO eviction
	capacity int

	redis *redis.Client // nil disables the durable tier
}

// New builds a Cache with the given capacity (<=0 uses defaultCapacity).
// If redisClient is non-nil, it is used as a durable lookaside tier:
// misses in the in-process map fall through to Redis before being
// reported as a true miss.
func New(capacity int, redisClient *redis.Client) *Cache {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Cache{
		entries:  make(map[string]entry),
		capacity: capacity,
		redis:    redisClient,
	}
}

// Hash returns the SHA-256 hex digest used as the cache key for text.
func Hash(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

// Get returns a cached embedding for text, either from an exact
// content-hash match or a near-duplicate (Jaccard >= 0.95) companion
// entry. ok is false on a true miss.
func (c *Cache) Get(ctx context.Context, text string) (embedding []float32, ok bool) {
	key := Hash(text)

	c.mu.Lock()
	if e, found := c.entries[key]; found {
		c.mu.Unlock()
		return e.embedding, true
	}
	tokens := tokenize(text)
	for _, e := range c.entries {
		if jaccard(tokens, e.tokens) >= similarityThreshold {
			c.mu.Unlock()
			return e.embedding, true
		}
	}
	c.mu.Unlock()

	if c.redis != nil {
		if emb, found := c.getRedis(ctx, key); found {
			c.mu.Lock()
			c.insertLocked(key, emb, tokens)
			c.mu.Unlock()
			return emb, true
		}
	}
	return nil, false
}

// Put stores an embedding for text, evicting the oldest entry (FIFO)
// when the in-process map is at capacity, and mirroring to Redis when
// configured.
func (c *Cache) Put(ctx context.Context, text string, embedding []float32) {
	key := Hash(text)
	tokens := tokenize(text)

	c.mu.Lock()
	c.insertLocked(key, embedding, tokens)
	c.mu.Unlock()

	if c.redis != nil {
		c.setRedis(ctx, key, embedding)
	}
}

func (c *Cache) insertLocked(key string, embedding []float32, tokens map[string]struct{}) {
	if _, exists := c.entries[key]; exists {
		c.entries[key] = entry{embedding: embedding, tokens: tokens}
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = entry{embedding: embedding, tokens: tokens}
	c.order = append(c.order, key)
}

func (c *Cache) redisKey(key string) string {
	return fmt.Sprintf("embedcache:%s", key)
}

func (c *Cache) getRedis(ctx context.Context, key string) ([]float32, bool) {
	val, err := c.redis.Get(ctx, c.redisKey(key)).Bytes()
	if err != nil {
		return nil, false
	}
	return decodeFloat32s(val), true
}

func (c *Cache) setRedis(ctx context.Context, key string, embedding []float32) {
	_ = c.redis.Set(ctx, c.redisKey(key), encodeFloat32s(embedding), 0).Err()
}

func encodeFloat32s(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, f := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeFloat32s(buf []byte) []float32 {
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec
}

func tokenize(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var intersection int
	for t := range a {
		if _, ok := b[t]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
