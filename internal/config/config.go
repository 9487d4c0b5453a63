package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Auth (serve mode)
	DocsiftAPIKey string

	// Embedding sidecar
	EmbedURL   string
	EmbedModel string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Context extraction
	ContextWindow int
	FallbackChars int

	// Ranking
	TopK           int
	BoostKeywords  []string
	BoostIncrement float64
	BoostCap       float64

	// Batch directories
	InputDir  string
	OutputDir string

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		DocsiftAPIKey: os.Getenv("DOCSIFT_API_KEY"),

		EmbedURL:   envOr("EMBED_URL", "http://localhost:8091"),
		EmbedModel: envOr("EMBED_MODEL", "all-MiniLM-L6-v2"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		ContextWindow: envInt("CONTEXT_WINDOW", 15),
		FallbackChars: envInt("FALLBACK_CHARS", 1000),

		TopK:           envInt("RANK_TOP_K", 0), // 0 = keep all sections
		BoostKeywords:  envList("BOOST_KEYWORDS"),
		BoostIncrement: envFloat("BOOST_INCREMENT", 0.05),
		BoostCap:       envFloat("BOOST_CAP", 0.2),

		InputDir:  envOr("INPUT_DIR", "/app/input"),
		OutputDir: envOr("OUTPUT_DIR", "/app/output"),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.ContextWindow <= 0 {
		cfg.ContextWindow = 15
	}
	if cfg.FallbackChars <= 0 {
		cfg.FallbackChars = 1000
	}
	if cfg.BoostIncrement < 0 {
		cfg.BoostIncrement = 0
	}
	if cfg.BoostCap < 0 {
		cfg.BoostCap = 0
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// Validate checks settings required by serve mode. Batch outline runs
// need neither an API key nor the embedding sidecar.
func (c Config) Validate() error {
	if c.DocsiftAPIKey == "" {
		return fmt.Errorf("DOCSIFT_API_KEY is required")
	}
	if c.EmbedURL == "" {
		return fmt.Errorf("EMBED_URL is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
