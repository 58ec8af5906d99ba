package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
	"github.com/kirillkom/legal-case-intel/internal/core/ports"
)

// CaseUseCase creates cases and computes their derived views from the
// persisted documents and deadlines.
type CaseUseCase struct {
	cases     ports.CaseRepository
	documents ports.DocumentRepository
	deadlines ports.DeadlineRepository
	analyzers Analyzers
	now       func() time.Time
}

func NewCaseUseCase(
	cases ports.CaseRepository,
	documents ports.DocumentRepository,
	deadlines ports.DeadlineRepository,
	analyzers Analyzers,
) *CaseUseCase {
	return &CaseUseCase{
		cases:     cases,
		documents: documents,
		deadlines: deadlines,
		analyzers: analyzers,
		now:       time.Now,
	}
}

func (uc *CaseUseCase) CreateCase(ctx context.Context, actionType, status, description string) (*domain.Case, error) {
	actionType = strings.TrimSpace(actionType)
	if actionType == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create case", errors.New("action_type is required"))
	}
	status = strings.TrimSpace(status)
	if status == "" {
		status = domain.DefaultCaseStatus
	}

	now := uc.now().UTC()
	c := &domain.Case{
		ID:          uuid.NewString(),
		ActionType:  actionType,
		Status:      status,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.cases.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create case: %w", err)
	}
	return c, nil
}

func (uc *CaseUseCase) GetCase(ctx context.Context, id string) (*domain.Case, error) {
	c, err := uc.cases.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch case by id: %w", err)
	}
	return c, nil
}

func (uc *CaseUseCase) Summary(ctx context.Context, caseID string) (*domain.CaseSummary, error) {
	c, docs, err := uc.loadCaseDocuments(ctx, caseID)
	if err != nil {
		return nil, err
	}
	summary := uc.analyzers.Summary.Summarize(c.Info(), docs)
	return &summary, nil
}

func (uc *CaseUseCase) Timeline(ctx context.Context, caseID string) (*domain.CaseTimeline, error) {
	c, docs, err := uc.loadCaseDocuments(ctx, caseID)
	if err != nil {
		return nil, err
	}
	views, err := uc.annotatedDeadlines(ctx, caseID)
	if err != nil {
		return nil, err
	}
	deadlines := make([]domain.Deadline, 0, len(views))
	for _, v := range views {
		deadlines = append(deadlines, v.Deadline)
	}
	timeline := buildTimeline(uc.analyzers.Timeline, c.Info(), docs, deadlines)
	return &timeline, nil
}

func (uc *CaseUseCase) Deadlines(ctx context.Context, caseID string) ([]domain.DeadlineView, error) {
	if _, err := uc.GetCase(ctx, caseID); err != nil {
		return nil, err
	}
	return uc.annotatedDeadlines(ctx, caseID)
}

// Checklist matches the case's classified document types against its action
// type template.
func (uc *CaseUseCase) Checklist(ctx context.Context, caseID string, variations domain.ChecklistVariations) (*domain.CaseChecklist, error) {
	c, docs, err := uc.loadCaseDocuments(ctx, caseID)
	if err != nil {
		return nil, err
	}
	received := receivedLabels(docs)

	checklist := uc.analyzers.Checklist.Generate(c.ActionType, variations)
	checklist.CaseID = c.ID
	return &domain.CaseChecklist{
		Checklist:   checklist,
		Validation:  uc.analyzers.Checklist.Validate(checklist, received),
		Suggestions: uc.analyzers.Checklist.SuggestAdditional(c.ActionType, received),
	}, nil
}

func (uc *CaseUseCase) loadCaseDocuments(ctx context.Context, caseID string) (*domain.Case, []domain.CaseDocument, error) {
	c, err := uc.GetCase(ctx, caseID)
	if err != nil {
		return nil, nil, err
	}
	stored, err := uc.documents.ListByCase(ctx, caseID)
	if err != nil {
		return nil, nil, fmt.Errorf("list case documents: %w", err)
	}
	docs := make([]domain.CaseDocument, 0, len(stored))
	for _, d := range stored {
		docs = append(docs, d.CaseDocument())
	}
	return c, docs, nil
}

func (uc *CaseUseCase) annotatedDeadlines(ctx context.Context, caseID string) ([]domain.DeadlineView, error) {
	deadlines, err := uc.deadlines.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("list case deadlines: %w", err)
	}
	return uc.analyzers.Deadlines.Annotate(deadlines), nil
}

// receivedLabels lists classified document types; file names are not labels.
func receivedLabels(docs []domain.CaseDocument) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		if t := d.Classified.DocumentType; t != "" && t != domain.GenericDocumentType {
			out = append(out, strings.ReplaceAll(string(t), "_", " "))
		}
	}
	return out
}
