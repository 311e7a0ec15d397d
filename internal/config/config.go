package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreMemory    = "memory"
	StorePathstore = "pathstore"
)

type Config struct {
	Port     string
	LogLevel slog.Level

	// Auth
	TripgestAPIKey string

	// Travel backend
	BackendURL     string
	BackendMock    bool
	BackendTimeout time.Duration

	// Itinerary storage
	StoreBackend    string
	PathstoreURL    string
	PathstoreAPIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Parse cache entries
	ParseCacheSize int

	// PDF
	PDFFallbackPdftotext bool
}

// LoadDotenv reads KEY=value pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func Load() Config {
	cfg := Config{
		Port:     envOr("PORT", "8090"),
		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),

		TripgestAPIKey: os.Getenv("TRIPGEST_API_KEY"),

		BackendURL:     envOr("BACKEND_URL", "http://localhost:8000"),
		BackendMock:    envBool("BACKEND_MOCK", false),
		BackendTimeout: envDuration("BACKEND_TIMEOUT", 120*time.Second),

		StoreBackend:    strings.ToLower(envOr("STORE_BACKEND", StoreMemory)),
		PathstoreURL:    envOr("PATHSTORE_URL", "http://localhost:8080"),
		PathstoreAPIKey: os.Getenv("PATHSTORE_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10<<20), // 10MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		ParseCacheSize: envInt("PARSE_CACHE_SIZE", 256),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.BackendTimeout <= 0 {
		cfg.BackendTimeout = 120 * time.Second
	}
	if cfg.ParseCacheSize <= 0 {
		cfg.ParseCacheSize = 256
	}

	return cfg
}

func (c Config) Validate() error {
	if c.TripgestAPIKey == "" {
		return fmt.Errorf("TRIPGEST_API_KEY is required")
	}
	switch c.StoreBackend {
	case StoreMemory:
	case StorePathstore:
		if c.PathstoreAPIKey == "" {
			return fmt.Errorf("PATHSTORE_API_KEY is required when STORE_BACKEND=pathstore")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreMemory, StorePathstore, c.StoreBackend)
	}
	if !c.BackendMock && c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL is required unless BACKEND_MOCK is set")
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

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			return l
		}
	}
	return fallback
}
