package ports

import (
	"context"
	"io"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

// AnalysisService is the inbound contract for stateless analysis requests.
type AnalysisService interface {
	ClassifyDocument(ctx context.Context, fileName string, body io.Reader) (*domain.ClassifiedDocument, error)
	ClassifyText(raw domain.RawDocument) domain.ClassifiedDocument
	ClassifyProof(doc domain.ClassifiedDocument, validated bool) domain.ProofAssessment
	ExtractDeadlines(doc domain.ClassifiedDocument, actionType string) []domain.Deadline
	GenerateChecklist(actionType, caseID string, variations domain.ChecklistVariations) domain.Checklist
	ValidateChecklist(checklist domain.Checklist, received []string) domain.ChecklistResult
	GenerateSummary(info domain.CaseInfo, docs []domain.CaseDocument) domain.CaseSummary
	GenerateTimeline(info domain.CaseInfo, docs []domain.CaseDocument, deadlines []domain.Deadline) domain.CaseTimeline
}

// CaseService is the inbound contract for persisted cases and their derived views.
type CaseService interface {
	CreateCase(ctx context.Context, actionType, status, description string) (*domain.Case, error)
	GetCase(ctx context.Context, id string) (*domain.Case, error)
	Summary(ctx context.Context, caseID string) (*domain.CaseSummary, error)
	Timeline(ctx context.Context, caseID string) (*domain.CaseTimeline, error)
	Deadlines(ctx context.Context, caseID string) ([]domain.DeadlineView, error)
	Checklist(ctx context.Context, caseID string, variations domain.ChecklistVariations) (*domain.CaseChecklist, error)
}

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, caseID, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentReader is the inbound read model for document metadata/state.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
}

// DocumentValidator marks a document as reviewed and re-assesses its relevance.
type DocumentValidator interface {
	SetValidated(ctx context.Context, id string, validated bool) (*domain.Document, error)
}

// DocumentProcessor is the inbound contract for asynchronous document processing.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}
