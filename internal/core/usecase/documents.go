package usecase

import (
	"context"
	"fmt"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
	"github.com/kirillkom/legal-case-intel/internal/core/ports"
)

// DocumentUseCase reads document state and records manual validation.
type DocumentUseCase struct {
	repo     ports.DocumentRepository
	assessor ports.ProofAssessor
}

func NewDocumentUseCase(repo ports.DocumentRepository, assessor ports.ProofAssessor) *DocumentUseCase {
	return &DocumentUseCase{repo: repo, assessor: assessor}
}

func (uc *DocumentUseCase) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	return doc, nil
}

// SetValidated flips the validation flag. Documents already classified are
// re-assessed since validation raises relevance.
func (uc *DocumentUseCase) SetValidated(ctx context.Context, id string, validated bool) (*domain.Document, error) {
	doc, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var assessment *domain.ProofAssessment
	if doc.Classified != nil {
		a := uc.assessor.Assess(*doc.Classified, validated)
		assessment = &a
	}

	if err := uc.repo.SetValidated(ctx, id, validated, assessment); err != nil {
		return nil, fmt.Errorf("save validation: %w", err)
	}

	doc.Validated = validated
	if assessment != nil {
		doc.Assessment = assessment
	}
	return doc, nil
}
