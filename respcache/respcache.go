// Package respcache implements the response cache (C11): entries are
// keyed by SHA-256 of (query, context, session_id), carry a per-entry
// TTL, and are evicted by a policy (LRU, LFU, or FIFO) selected at
// construction. A Redis tier mirrors entries for durability, the same
// pattern embedcache uses.
package respcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Policy selects the eviction strategy applied when the cache is at
// capacity.
type Policy string

const (
	LRU  Policy = "lru"
	LFU  Policy = "lfu"
	FIFO Policy = "fifo"

	defaultCapacity = 1000
	defaultTTL      = 10 * time.Minute
)

type entry struct {
	value       []byte
	createdAt   time.Time
	accessedAt  time.Time
	accessCount int64
	ttl         time.Duration
}

func (e entry) expired(now time.Time) bool {
	return e.ttl > 0 && now.Sub(e.createdAt) > e.ttl
}

// Cache is a thread-safe, policy-evicted response cache.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*entry
	order    []string // insertion order, used by FIFO
	capacity int
	policy   Policy
	ttl      time.Duration

	redis *redis.Client
}

// New builds a Cache. capacity<=0 uses defaultCapacity; ttl<=0 uses
// defaultTTL; an empty policy defaults to LRU.
func New(capacity int, policy Policy, ttl time.Duration, redisClient *redis.Client) *Cache {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if policy == "" {
		policy = LRU
	}
	return &Cache{
		entries:  make(map[string]*entry),
		capacity: capacity,
		policy:   policy,
		ttl:      ttl,
		redis:    redisClient,
	}
}

// Key returns the SHA-256 hex digest of (query, promptContext, sessionID).
func Key(query, promptContext, sessionID string) string {
	h := sha256.New()
	h.Write([]byte(query))
	h.Write([]byte{0})
	h.Write([]byte(promptContext))
	h.Write([]byte{0})
	h.Write([]byte(sessionID))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns a cached response value if present and not expired. The
// caller must set bypass to true when the session's context has been
// invalidated (e.g. new documents ingested mid-session); the dispatcher
// must not consult this cache in that case.
func (c *Cache) Get(ctx context.Context, key string, bypass bool) ([]byte, bool) {
	if bypass {
		return nil, false
	}

	c.mu.Lock()
	if e, found := c.entries[key]; found {
		now := time.Now()
		if e.expired(now) {
			c.evictLocked(key)
			c.mu.Unlock()
		} else {
			e.accessedAt = now
			e.accessCount++
			value := e.value
			c.mu.Unlock()
			return value, true
		}
	} else {
		c.mu.Unlock()
	}

	if c.redis != nil {
		if val, found := c.getRedis(ctx, key); found {
			c.mu.Lock()
			c.insertLocked(key, val, c.ttl)
			c.mu.Unlock()
			return val, true
		}
	}
	return nil, false
}

// Put stores value under key, evicting by policy if the cache is at
// capacity, and mirroring to Redis when configured.
func (c *Cache) Put(ctx context.Context, key string, value []byte) {
	c.mu.Lock()
	c.insertLocked(key, value, c.ttl)
	c.mu.Unlock()

	if c.redis != nil {
		c.setRedis(ctx, key, value)
	}
}

func (c *Cache) insertLocked(key string, value []byte, ttl time.Duration) {
	now := time.Now()
	if e, exists := c.entries[key]; exists {
		e.value = value
		e.createdAt = now
		e.accessedAt = now
		e.ttl = ttl
		return
	}

	if len(c.entries) >= c.capacity {
		c.evictOneLocked()
	}

	c.entries[key] = &entry{value: value, createdAt: now, accessedAt: now, accessCount: 1, ttl: ttl}
	c.order = append(c.order, key)
}

func (c *Cache) evictOneLocked() {
	var victim string
	switch c.policy {
	case FIFO:
		if len(c.order) > 0 {
			victim = c.order[0]
		}
	case LFU:
		var minCount int64 = -1
		for k, e := range c.entries {
			if minCount < 0 || e.accessCount < minCount {
				minCount = e.accessCount
				victim = k
			}
		}
	default: // LRU
		var oldest time.Time
		for k, e := range c.entries {
			if victim == "" || e.accessedAt.Before(oldest) {
				oldest = e.accessedAt
				victim = k
			}
		}
	}
	if victim != "" {
		c.evictLocked(victim)
	}
}

func (c *Cache) evictLocked(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cache) redisKey(key string) string {
	return fmt.Sprintf("respcache:%s", key)
}

func (c *Cache) getRedis(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.redis.Get(ctx, c.redisKey(key)).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *Cache) setRedis(ctx context.Context, key string, value []byte) {
	_ = c.redis.Set(ctx, c.redisKey(key), value, c.ttl).Err()
}

// Entry is the JSON-serializable shape stored under a response cache
// key; callers marshal/unmarshal through this type.
type Entry struct {
	Answer  string      `json:"answer"`
	Sources interface{} `json:"sources,omitempty"`
}

// Marshal is a convenience wrapper for encoding an Entry before Put.
func Marshal(e Entry) ([]byte, error) {
	return json.Marshal(e)
}

// Unmarshal is a convenience wrapper for decoding an Entry from Get.
func Unmarshal(b []byte) (Entry, error) {
	var e Entry
	err := json.Unmarshal(b, &e)
	return e, err
}
