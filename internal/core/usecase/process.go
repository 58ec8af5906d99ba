package usecase

import (
	"context"
	"fmt"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
	"github.com/kirillkom/legal-case-intel/internal/core/ports"
)

type ProcessDocumentUseCase struct {
	cases     ports.CaseRepository
	repo      ports.DocumentRepository
	deadlines ports.DeadlineRepository
	storage   ports.ObjectStorage
	extractor ports.TextExtractor
	analyzers Analyzers
	graph     ports.CaseGraph
}

// NewProcessDocumentUseCase wires the worker pipeline. graph may be nil when
// the case graph projection is disabled.
func NewProcessDocumentUseCase(
	cases ports.CaseRepository,
	repo ports.DocumentRepository,
	deadlines ports.DeadlineRepository,
	storage ports.ObjectStorage,
	extractor ports.TextExtractor,
	analyzers Analyzers,
	graph ports.CaseGraph,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		cases:     cases,
		repo:      repo,
		deadlines: deadlines,
		storage:   storage,
		extractor: extractor,
		analyzers: analyzers,
		graph:     graph,
	}
}

// analysisResult is what one pipeline run produces for a document.
type analysisResult struct {
	caseRecord *domain.Case
	doc        *domain.Document
	classified domain.ClassifiedDocument
	assessment domain.ProofAssessment
	deadlines  []domain.Deadline
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.markStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	result, err := uc.processPipeline(ctx, documentID)
	if err != nil {
		return uc.fail(ctx, documentID, err)
	}

	if err := uc.persist(ctx, result); err != nil {
		return uc.fail(ctx, documentID, err)
	}

	if err := uc.project(ctx, result); err != nil {
		return uc.fail(ctx, documentID, err)
	}

	if err := uc.markStatus(ctx, documentID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}

	return nil
}

func (uc *ProcessDocumentUseCase) processPipeline(ctx context.Context, documentID string) (*analysisResult, error) {
	doc, err := uc.loadDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	c, err := uc.cases.GetByID(ctx, doc.CaseID)
	if err != nil {
		return nil, fmt.Errorf("fetch case by id: %w", err)
	}

	raw, err := uc.extractText(ctx, doc)
	if err != nil {
		return nil, err
	}

	classified := uc.analyzers.Classifier.Classify(raw)
	assessment := uc.analyzers.Assessor.Assess(classified, doc.Validated)

	deadlines := uc.analyzers.Deadlines.Extract(classified, c.ActionType)
	for i := range deadlines {
		deadlines[i].DocumentID = doc.ID
	}

	doc.Classified = &classified
	doc.Assessment = &assessment

	return &analysisResult{
		caseRecord: c,
		doc:        doc,
		classified: classified,
		assessment: assessment,
		deadlines:  deadlines,
	}, nil
}

func (uc *ProcessDocumentUseCase) loadDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	return doc, nil
}

func (uc *ProcessDocumentUseCase) extractText(ctx context.Context, doc *domain.Document) (domain.RawDocument, error) {
	body, err := uc.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("open stored document: %w", err)
	}
	defer body.Close()

	raw, err := uc.extractor.Extract(ctx, doc.Filename, body)
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("extract text: %w", err)
	}
	if raw.FileName == "" {
		raw.FileName = doc.Filename
	}
	if raw.MimeType == "" {
		raw.MimeType = doc.MimeType
	}
	if raw.SizeBytes == 0 {
		raw.SizeBytes = doc.SizeBytes
	}
	return raw, nil
}

func (uc *ProcessDocumentUseCase) persist(ctx context.Context, r *analysisResult) error {
	if err := uc.repo.SaveAnalysis(ctx, r.doc.ID, r.classified, r.assessment); err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	if err := uc.deadlines.ReplaceForDocument(ctx, r.doc.ID, r.deadlines); err != nil {
		return fmt.Errorf("save deadlines: %w", err)
	}
	return nil
}

func (uc *ProcessDocumentUseCase) project(ctx context.Context, r *analysisResult) error {
	if uc.graph == nil {
		return nil
	}
	if err := uc.graph.ProjectDocument(ctx, *r.caseRecord, *r.doc, r.deadlines); err != nil {
		return fmt.Errorf("project case graph: %w", err)
	}
	return nil
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, documentID string, status domain.DocumentStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, documentID, status, errMessage)
}

func (uc *ProcessDocumentUseCase) fail(ctx context.Context, documentID string, processErr error) error {
	if failErr := uc.markStatus(ctx, documentID, domain.StatusFailed, processErr.Error()); failErr != nil {
		return fmt.Errorf("%w; mark failed status: %v", processErr, failErr)
	}
	return processErr
}
