package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
	"github.com/kirillkom/legal-case-intel/internal/core/ports"
)

// Analyzers groups the six analysis components shared by every use case.
type Analyzers struct {
	Classifier ports.DocumentClassifier
	Assessor   ports.ProofAssessor
	Deadlines  ports.DeadlineExtractor
	Checklist  ports.ChecklistGenerator
	Summary    ports.SummaryGenerator
	Timeline   ports.TimelineBuilder
}

// AnalysisUseCase serves one-shot analysis requests without touching persistence.
type AnalysisUseCase struct {
	extractor ports.TextExtractor
	analyzers Analyzers
}

func NewAnalysisUseCase(extractor ports.TextExtractor, analyzers Analyzers) *AnalysisUseCase {
	return &AnalysisUseCase{
		extractor: extractor,
		analyzers: analyzers,
	}
}

func (uc *AnalysisUseCase) ClassifyDocument(ctx context.Context, fileName string, body io.Reader) (*domain.ClassifiedDocument, error) {
	raw, err := uc.extractor.Extract(ctx, fileName, body)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	classified := uc.analyzers.Classifier.Classify(raw)
	return &classified, nil
}

func (uc *AnalysisUseCase) ClassifyText(raw domain.RawDocument) domain.ClassifiedDocument {
	return uc.analyzers.Classifier.Classify(raw)
}

func (uc *AnalysisUseCase) ClassifyProof(doc domain.ClassifiedDocument, validated bool) domain.ProofAssessment {
	return uc.analyzers.Assessor.Assess(doc, validated)
}

func (uc *AnalysisUseCase) ExtractDeadlines(doc domain.ClassifiedDocument, actionType string) []domain.Deadline {
	return uc.analyzers.Deadlines.Extract(doc, actionType)
}

func (uc *AnalysisUseCase) GenerateChecklist(actionType, caseID string, variations domain.ChecklistVariations) domain.Checklist {
	checklist := uc.analyzers.Checklist.Generate(actionType, variations)
	checklist.CaseID = caseID
	return checklist
}

func (uc *AnalysisUseCase) ValidateChecklist(checklist domain.Checklist, received []string) domain.ChecklistResult {
	return uc.analyzers.Checklist.Validate(checklist, received)
}

func (uc *AnalysisUseCase) GenerateSummary(info domain.CaseInfo, docs []domain.CaseDocument) domain.CaseSummary {
	return uc.analyzers.Summary.Summarize(info, docs)
}

func (uc *AnalysisUseCase) GenerateTimeline(info domain.CaseInfo, docs []domain.CaseDocument, deadlines []domain.Deadline) domain.CaseTimeline {
	return buildTimeline(uc.analyzers.Timeline, info, docs, deadlines)
}

func buildTimeline(tb ports.TimelineBuilder, info domain.CaseInfo, docs []domain.CaseDocument, deadlines []domain.Deadline) domain.CaseTimeline {
	events := tb.Build(info, docs, deadlines)
	return domain.CaseTimeline{
		CaseID:  info.ID,
		Events:  events,
		Summary: tb.Summarize(events),
	}
}
