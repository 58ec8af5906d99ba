package ports

import (
	"context"
	"io"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

// CaseRepository persists case headers.
type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) error
	GetByID(ctx context.Context, id string) (*domain.Case, error)
}

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListByCase(ctx context.Context, caseID string) ([]domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveAnalysis(ctx context.Context, id string, classified domain.ClassifiedDocument, assessment domain.ProofAssessment) error
	SetValidated(ctx context.Context, id string, validated bool, assessment *domain.ProofAssessment) error
}

// DeadlineRepository stores the deadlines extracted from each document.
type DeadlineRepository interface {
	ReplaceForDocument(ctx context.Context, documentID string, deadlines []domain.Deadline) error
	ListByCase(ctx context.Context, caseID string) ([]domain.Deadline, error)
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes ingestion events.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor turns a stored file into raw text plus container metadata.
type TextExtractor interface {
	Extract(ctx context.Context, fileName string, body io.Reader) (domain.RawDocument, error)
}

// CaseGraph projects a processed document into a case graph.
type CaseGraph interface {
	ProjectDocument(ctx context.Context, c domain.Case, doc domain.Document, deadlines []domain.Deadline) error
}

// WorkbookExporter renders case views as spreadsheets.
type WorkbookExporter interface {
	WriteTimeline(w io.Writer, timeline domain.CaseTimeline) error
	WriteChecklist(w io.Writer, checklist domain.CaseChecklist) error
}

// DocumentClassifier resolves type and structural metadata of raw text.
type DocumentClassifier interface {
	Classify(raw domain.RawDocument) domain.ClassifiedDocument
}

// ProofAssessor assigns category, relevance and essential flag.
type ProofAssessor interface {
	Assess(doc domain.ClassifiedDocument, validated bool) domain.ProofAssessment
}

// DeadlineExtractor finds deadlines in a classified document.
type DeadlineExtractor interface {
	Extract(doc domain.ClassifiedDocument, actionTypeHint string) []domain.Deadline
	Annotate(deadlines []domain.Deadline) []domain.DeadlineView
}

// ChecklistGenerator resolves evidence templates and scores completeness.
type ChecklistGenerator interface {
	Generate(actionType string, variations domain.ChecklistVariations) domain.Checklist
	Validate(checklist domain.Checklist, received []string) domain.ChecklistResult
	SuggestAdditional(actionType string, received []string) []string
}

// SummaryGenerator synthesizes a case summary.
type SummaryGenerator interface {
	Summarize(info domain.CaseInfo, docs []domain.CaseDocument) domain.CaseSummary
}

// TimelineBuilder merges case, document and deadline events.
type TimelineBuilder interface {
	Build(info domain.CaseInfo, docs []domain.CaseDocument, deadlines []domain.Deadline) []domain.TimelineEvent
	Summarize(events []domain.TimelineEvent) domain.TimelineSummary
}
