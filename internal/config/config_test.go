package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_BACKEND", "WORKER_COUNT", "JOB_TTL", "BACKEND_MOCK", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.StoreBackend != StoreMemory {
		t.Errorf("expected memory store, got %q", cfg.StoreBackend)
	}
	if cfg.WorkerCount != 4 || cfg.JobTTL != time.Hour || cfg.ParseCacheSize != 256 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WORKER_COUNT", "8")
	t.Setenv("JOB_TTL", "30m")
	t.Setenv("BACKEND_MOCK", "true")
	t.Setenv("STORE_BACKEND", "PathStore")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAX_QUEUE_SIZE", "-1")

	cfg := Load()
	if cfg.WorkerCount != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.WorkerCount)
	}
	if cfg.JobTTL != 30*time.Minute {
		t.Errorf("expected 30m TTL, got %v", cfg.JobTTL)
	}
	if !cfg.BackendMock {
		t.Error("expected mock backend")
	}
	if cfg.StoreBackend != StorePathstore {
		t.Errorf("expected lowercased store backend, got %q", cfg.StoreBackend)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
	if cfg.MaxQueueSize != 100 {
		t.Errorf("expected invalid queue size to fall back to 100, got %d", cfg.MaxQueueSize)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok memory", Config{TripgestAPIKey: "k", StoreBackend: StoreMemory, BackendURL: "http://b"}, false},
		{"missing api key", Config{StoreBackend: StoreMemory, BackendURL: "http://b"}, true},
		{"pathstore needs key", Config{TripgestAPIKey: "k", StoreBackend: StorePathstore, BackendURL: "http://b"}, true},
		{"pathstore ok", Config{TripgestAPIKey: "k", StoreBackend: StorePathstore, PathstoreAPIKey: "p", BackendURL: "http://b"}, false},
		{"unknown store", Config{TripgestAPIKey: "k", StoreBackend: "redis", BackendURL: "http://b"}, true},
		{"mock needs no url", Config{TripgestAPIKey: "k", StoreBackend: StoreMemory, BackendMock: true}, false},
		{"real backend needs url", Config{TripgestAPIKey: "k", StoreBackend: StoreMemory}, true},
	}
	for _, tt := range tests {
		if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("%s: err=%v, wantErr=%v", tt.name, err, tt.wantErr)
		}
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("TRIPGEST_TEST_A=from-file\nTRIPGEST_TEST_B=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TRIPGEST_TEST_B", "from-env")
	os.Unsetenv("TRIPGEST_TEST_A")
	t.Cleanup(func() { os.Unsetenv("TRIPGEST_TEST_A") })

	if err := LoadDotenv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("TRIPGEST_TEST_A"); got != "from-file" {
		t.Errorf("expected value from file, got %q", got)
	}
	if got := os.Getenv("TRIPGEST_TEST_B"); got != "from-env" {
		t.Errorf("expected existing env to win, got %q", got)
	}
}
