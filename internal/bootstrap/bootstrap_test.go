package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kirillkom/legal-case-intel/internal/config"
	"github.com/kirillkom/legal-case-intel/internal/core/domain"
	"github.com/kirillkom/legal-case-intel/internal/infrastructure/storage/localfs"
)

type stageRecorder struct {
	stages []string
}

func (r *stageRecorder) ObserveAnalysis(stage string, _ ...any) {
	r.stages = append(r.stages, stage)
}

func TestNewAnalyzersUsesDefaultCatalog(t *testing.T) {
	observer := &stageRecorder{}
	analyzers, err := NewAnalyzers(config.Config{ChecklistNearCompletePct: 70, ChecklistIncompletePct: 50}, observer)
	if err != nil {
		t.Fatalf("NewAnalyzers() error = %v", err)
	}

	doc := analyzers.Classifier.Classify(domain.RawDocument{Text: "Recibo de pagamento - holerite"})
	if doc.DocumentType != "holerite" {
		t.Fatalf("expected holerite, got %s", doc.DocumentType)
	}
	if len(observer.stages) == 0 {
		t.Fatalf("expected observer to be wired into analyzers")
	}
}

func TestNewAnalyzersRejectsMissingOverlay(t *testing.T) {
	_, err := NewAnalyzers(config.Config{CatalogPath: filepath.Join(t.TempDir(), "missing.yaml")}, nil)
	if err == nil {
		t.Fatalf("expected error for missing catalog overlay")
	}
}

func TestNewAnalyzersAppliesOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	overlay := "checklist_templates:\n  guarda:\n    required: [\"Certidão de nascimento\"]\n    recommended: []\n"
	if err := os.WriteFile(path, []byte(overlay), 0o600); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	analyzers, err := NewAnalyzers(config.Config{CatalogPath: path}, nil)
	if err != nil {
		t.Fatalf("NewAnalyzers() error = %v", err)
	}
	checklist := analyzers.Checklist.Generate("Guarda", domain.ChecklistVariations{})
	if checklist.RequiredTotal != 1 {
		t.Fatalf("expected overlay template, got %+v", checklist)
	}
}

func TestNewObjectStorage(t *testing.T) {
	storage, err := newObjectStorage(context.Background(), config.Config{StorageDriver: "localfs", StoragePath: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("newObjectStorage() error = %v", err)
	}
	if _, ok := storage.(*localfs.Storage); !ok {
		t.Fatalf("expected localfs storage, got %T", storage)
	}

	if _, err := newObjectStorage(context.Background(), config.Config{StorageDriver: "ftp"}, nil); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestCaseGraphDisabled(t *testing.T) {
	app := &App{}
	graph, err := app.newCaseGraph(context.Background(), config.Config{GraphEnabled: false}, nil)
	if err != nil || graph != nil {
		t.Fatalf("expected nil graph when disabled, got %v, %v", graph, err)
	}
}
