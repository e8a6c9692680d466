package ragcore

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the ragcore engine.
type Config struct {
	// DBPath is the full path to the SQLite database file.
	// If empty, defaults to ~/.ragcore/<DBName>.db
	DBPath string `json:"db_path" yaml:"db_path"`

	// DBName is the name for the database (used when DBPath is empty).
	// Defaults to "ragcore". The file will be <DBName>.db inside the
	// storage directory (~/.ragcore/ or working dir).
	DBName string `json:"db_name" yaml:"db_name"`

	// StorageDir controls where the database is created when DBPath
	// is not explicitly set. Options: "home" (default) uses ~/.ragcore/,
	// "local" uses the current working directory.
	StorageDir string `json:"storage_dir" yaml:"storage_dir"`

	// LLM providers
	Chat        LLMConfig `json:"chat" yaml:"chat"`
	Embedding   LLMConfig `json:"embedding" yaml:"embedding"`
	Vision      LLMConfig `json:"vision" yaml:"vision"`
	Translation LLMConfig `json:"translation" yaml:"translation"` // optional: fast model for query translation (defaults to Chat)

	// Chunking
	MaxChunkTokens int `json:"max_chunk_tokens" yaml:"max_chunk_tokens"`
	ChunkOverlap   int `json:"chunk_overlap" yaml:"chunk_overlap"`

	// Retrieval (hybrid score + dedup, §4.7-4.8)
	DefaultNResults   int     `json:"default_n_results" yaml:"default_n_results"`
	SimilarityFloor   float64 `json:"similarity_floor" yaml:"similarity_floor"`
	DomainBoost       float64 `json:"domain_boost" yaml:"domain_boost"`
	HybridVectorShare float64 `json:"hybrid_vector_share" yaml:"hybrid_vector_share"`
	HybridLexicalShare float64 `json:"hybrid_lexical_share" yaml:"hybrid_lexical_share"`
	FactConflictPenalty float64 `json:"fact_conflict_penalty" yaml:"fact_conflict_penalty"`

	// Context assembly (§4.9)
	ContextCharCap int `json:"context_char_cap" yaml:"context_char_cap"`
	MaxChunksInContext int `json:"max_chunks_in_context" yaml:"max_chunks_in_context"`

	// Payload limits (§6)
	MaxPayloadBytes int64 `json:"max_payload_bytes" yaml:"max_payload_bytes"`

	// Image captioning
	CaptionImages bool `json:"caption_images" yaml:"caption_images"` // Not read by the engine: extracted images are not captioned

	// External parsing
	LlamaParse *LlamaParseConfig `json:"llamaparse,omitempty" yaml:"llamaparse,omitempty"`

	// Embedding dimensions (must match model)
	EmbeddingDim int `json:"embedding_dim" yaml:"embedding_dim"`

	// Caches (§4.4, §4.11, §3 Session)
	Redis        RedisConfig   `json:"redis" yaml:"redis"`
	EmbedCacheCap int          `json:"embed_cache_cap" yaml:"embed_cache_cap"`
	ResponseCacheTTL time.Duration `json:"response_cache_ttl" yaml:"response_cache_ttl"`
	ResponseCachePolicy string     `json:"response_cache_policy" yaml:"response_cache_policy"` // lru|lfu|fifo
	ResponseCacheCap    int        `json:"response_cache_cap" yaml:"response_cache_cap"`
	ClassificationCacheTTL time.Duration `json:"classification_cache_ttl" yaml:"classification_cache_ttl"`
	SessionIdleTTL         time.Duration `json:"session_idle_ttl" yaml:"session_idle_ttl"`

	// Vector index backend (§4.5)
	VectorBackend string       `json:"vector_backend" yaml:"vector_backend"` // "sqlite-vec" (default) | "qdrant"
	Qdrant        QdrantConfig `json:"qdrant" yaml:"qdrant"`

	// Resilience (§5 supplement)
	Breaker BreakerConfig `json:"breaker" yaml:"breaker"`

	// Background queue (§4.5 optimization passes, §4.1 OCR retries)
	AsynqRedisAddr string `json:"asynq_redis_addr" yaml:"asynq_redis_addr"`

	// Observability
	MetricsAddr string `json:"metrics_addr" yaml:"metrics_addr"` // Prometheus listen address; empty disables
	LogLevel    string `json:"log_level" yaml:"log_level"`
	LogFile     string `json:"log_file" yaml:"log_file"`

	// HTTP surface (§6)
	ListenAddr  string `json:"listen_addr" yaml:"listen_addr"`
	APIKey      string `json:"api_key" yaml:"api_key"` // empty disables auth
	CORSOrigins string `json:"cors_origins" yaml:"cors_origins"`
}

// LLMConfig configures a single LLM provider endpoint.
type LLMConfig struct {
	Provider string `json:"provider" yaml:"provider"` // ollama, lmstudio, openrouter, xai, gemini, custom
	Model    string `json:"model" yaml:"model"`
	BaseURL  string `json:"base_url" yaml:"base_url"`
	APIKey   string `json:"api_key" yaml:"api_key"`
}

// LlamaParseConfig configures the LlamaParse external parsing service.
type LlamaParseConfig struct {
	APIKey  string `json:"api_key" yaml:"api_key"`
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// RedisConfig configures the Redis-backed embedding cache, response cache,
// and session store (§3 Session, §4.4, §4.11).
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
	Enabled  bool   `json:"enabled" yaml:"enabled"`
}

// QdrantConfig configures the optional remote ANN backend.
type QdrantConfig struct {
	Addr       string `json:"addr" yaml:"addr"`
	Collection string `json:"collection" yaml:"collection"`
}

// BreakerConfig tunes the circuit breaker wrapping LLM/embedding calls.
type BreakerConfig struct {
	MaxRequests uint32        `json:"max_requests" yaml:"max_requests"`
	Interval    time.Duration `json:"interval" yaml:"interval"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
}

// DefaultConfig returns a Config with sensible defaults for local inference.
// Database is stored in ~/.ragcore/ragcore.db by default.
func DefaultConfig() Config {
	return Config{
		DBName:     "ragcore",
		StorageDir: "home",
		Chat: LLMConfig{
			Provider: "ollama",
			Model:    "llama3.1:8b",
			BaseURL:  "http://localhost:11434",
		},
		Embedding: LLMConfig{
			Provider: "ollama",
			Model:    "nomic-embed-text",
			BaseURL:  "http://localhost:11434",
		},
		Vision: LLMConfig{
			Provider: "ollama",
			Model:    "llama3.2-vision",
			BaseURL:  "http://localhost:11434",
		},
		MaxChunkTokens:         1024,
		ChunkOverlap:           128,
		DefaultNResults:        5,
		SimilarityFloor:        0.3,
		DomainBoost:            0.2,
		HybridVectorShare:      0.7,
		HybridLexicalShare:     0.3,
		FactConflictPenalty:    0.5,
		ContextCharCap:         4000,
		MaxChunksInContext:     5,
		MaxPayloadBytes:        150 * 1024 * 1024,
		EmbeddingDim:           768,
		EmbedCacheCap:          10000,
		ResponseCacheTTL:       1 * time.Hour,
		ResponseCachePolicy:    "lru",
		ResponseCacheCap:       1000,
		ClassificationCacheTTL: 1 * time.Hour,
		SessionIdleTTL:         5 * time.Minute,
		VectorBackend:          "sqlite-vec",
		Breaker: BreakerConfig{
			MaxRequests: 5,
			Interval:    10 * time.Second,
			Timeout:     60 * time.Second,
		},
		LogLevel:   "info",
		ListenAddr: ":8080",
	}
}

// resolveDBPath computes the final database path from config fields.
func (c *Config) resolveDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}

	name := c.DBName
	if name == "" {
		name = "ragcore"
	}

	switch c.StorageDir {
	case "local", "cwd":
		return name + ".db"
	default: // "home" or empty
		home, err := os.UserHomeDir()
		if err != nil {
			return name + ".db" // fallback to cwd
		}
		dir := filepath.Join(home, ".ragcore")
		return filepath.Join(dir, name+".db")
	}
}

// LoadConfigFromEnv builds a Config by layering environment variables (and
// an optional .env file) over DefaultConfig(). Required options that are
// still unset after this pass cause ValidateConfig to fail fast, per §6.
func LoadConfigFromEnv() (Config, error) {
	_ = godotenv.Load() // optional .env; absence is not an error

	cfg := DefaultConfig()

	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CHAT_PROVIDER"); v != "" {
		cfg.Chat.Provider = v
	}
	if v := os.Getenv("CHAT_MODEL"); v != "" {
		cfg.Chat.Model = v
	}
	if v := os.Getenv("CHAT_BASE_URL"); v != "" {
		cfg.Chat.BaseURL = v
	}
	if v := os.Getenv("CHAT_API_KEY"); v != "" {
		cfg.Chat.APIKey = v
	}
	if v := os.Getenv("EMBEDDING_PROVIDER"); v != "" {
		cfg.Embedding.Provider = v
	}
	if v := os.Getenv("EMBEDDING_MODEL"); v != "" {
		cfg.Embedding.Model = v
	}
	if v := os.Getenv("EMBEDDING_BASE_URL"); v != "" {
		cfg.Embedding.BaseURL = v
	}
	if v := os.Getenv("EMBEDDING_DIM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.EmbeddingDim = n
		}
	}
	if v := os.Getenv("MAX_PAYLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxPayloadBytes = n
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
		cfg.Redis.Enabled = true
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = n
		}
	}
	if v := os.Getenv("VECTOR_BACKEND"); v != "" {
		cfg.VectorBackend = v
	}
	if v := os.Getenv("QDRANT_ADDR"); v != "" {
		cfg.Qdrant.Addr = v
	}
	if v := os.Getenv("QDRANT_COLLECTION"); v != "" {
		cfg.Qdrant.Collection = v
	}
	if v := os.Getenv("ASYNQ_REDIS_ADDR"); v != "" {
		cfg.AsynqRedisAddr = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = v
	}
	if v := os.Getenv("EMBEDDING_API_KEY"); v != "" {
		cfg.Embedding.APIKey = v
	}

	// Fall back to well-known provider env vars when no explicit
	// CHAT_API_KEY/EMBEDDING_API_KEY was set.
	if cfg.Chat.APIKey == "" {
		switch cfg.Chat.Provider {
		case "openai":
			cfg.Chat.APIKey = os.Getenv("OPENAI_API_KEY")
		case "groq":
			cfg.Chat.APIKey = os.Getenv("GROQ_API_KEY")
		}
	}
	if cfg.Embedding.APIKey == "" {
		switch cfg.Embedding.Provider {
		case "openai":
			cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
		case "groq":
			cfg.Embedding.APIKey = os.Getenv("GROQ_API_KEY")
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ValidateConfig fails fast when required options are absent, per §6
// ("Absent required options cause startup to fail fast").
func ValidateConfig(cfg Config) error {
	var missing []string
	if cfg.Chat.Provider == "" {
		missing = append(missing, "chat.provider")
	}
	if cfg.Embedding.Provider == "" {
		missing = append(missing, "embedding.provider")
	}
	if cfg.EmbeddingDim <= 0 {
		missing = append(missing, "embedding_dim")
	}
	if cfg.VectorBackend == "qdrant" && (cfg.Qdrant.Addr == "" || cfg.Qdrant.Collection == "") {
		missing = append(missing, "qdrant.addr/collection")
	}
	if len(missing) > 0 {
		return fmt.Errorf("ragcore: missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
