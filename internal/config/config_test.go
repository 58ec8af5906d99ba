package config

import (
	"slices"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")
	t.Setenv("ALLOWED_EXTENSIONS", "")
	t.Setenv("CHECKLIST_NEAR_COMPLETE_PCT", "")
	t.Setenv("DEADLINE_HORIZON_DAYS", "")
	t.Setenv("WORKER_PROCESS_TIMEOUT", "")
	t.Setenv("API_OPENAPI_VALIDATION", "")

	cfg := Load()
	if cfg.StorageDriver != "localfs" {
		t.Fatalf("expected default storage driver localfs, got %q", cfg.StorageDriver)
	}
	if cfg.MaxUploadBytes != 10*1024*1024 {
		t.Fatalf("expected default upload cap 10MB, got %d", cfg.MaxUploadBytes)
	}
	if !slices.Contains(cfg.AllowedExtensions, "docx") || len(cfg.AllowedExtensions) != 8 {
		t.Fatalf("unexpected default extensions: %v", cfg.AllowedExtensions)
	}
	if cfg.ChecklistNearCompletePct != 70 || cfg.ChecklistIncompletePct != 50 {
		t.Fatalf("unexpected checklist thresholds: %v/%v", cfg.ChecklistNearCompletePct, cfg.ChecklistIncompletePct)
	}
	if cfg.DeadlineHorizonDays != 3650 {
		t.Fatalf("expected default horizon 3650, got %d", cfg.DeadlineHorizonDays)
	}
	if cfg.WorkerProcessTimeout != 5*time.Minute {
		t.Fatalf("expected default process timeout 5m, got %s", cfg.WorkerProcessTimeout)
	}
	if !cfg.APIOpenAPIValidation {
		t.Fatalf("expected openapi validation enabled by default")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "S3")
	t.Setenv("ALLOWED_EXTENSIONS", " .PDF, txt ,,")
	t.Setenv("API_RATE_LIMIT_RPS", "2.5")
	t.Setenv("API_RATE_LIMIT_BURST", "4")
	t.Setenv("GRAPH_ENABLED", "true")
	t.Setenv("WORKER_PROCESS_TIMEOUT", "90s")
	t.Setenv("CHECKLIST_INCOMPLETE_PCT", "40")

	cfg := Load()
	if cfg.StorageDriver != "s3" {
		t.Fatalf("expected storage driver s3, got %q", cfg.StorageDriver)
	}
	if !slices.Equal(cfg.AllowedExtensions, []string{"pdf", "txt"}) {
		t.Fatalf("unexpected extensions: %v", cfg.AllowedExtensions)
	}
	if cfg.APIRateLimitRPS != 2.5 || cfg.APIRateLimitBurst != 4 {
		t.Fatalf("unexpected rate limit: %v/%d", cfg.APIRateLimitRPS, cfg.APIRateLimitBurst)
	}
	if !cfg.GraphEnabled {
		t.Fatalf("expected graph enabled")
	}
	if cfg.WorkerProcessTimeout != 90*time.Second {
		t.Fatalf("expected timeout 90s, got %s", cfg.WorkerProcessTimeout)
	}
	if cfg.ChecklistIncompletePct != 40 {
		t.Fatalf("expected incomplete pct 40, got %v", cfg.ChecklistIncompletePct)
	}
}

func TestLoadFallsBackOnMalformedValues(t *testing.T) {
	t.Setenv("API_MAX_CONNS", "many")
	t.Setenv("S3_USE_SSL", "maybe")
	t.Setenv("WORKER_PROCESS_TIMEOUT", "-1s")

	cfg := Load()
	if cfg.APIMaxConns != 256 {
		t.Fatalf("expected fallback max conns 256, got %d", cfg.APIMaxConns)
	}
	if cfg.S3UseSSL {
		t.Fatalf("expected fallback ssl false")
	}
	if cfg.WorkerProcessTimeout != 5*time.Minute {
		t.Fatalf("expected fallback timeout, got %s", cfg.WorkerProcessTimeout)
	}
}
