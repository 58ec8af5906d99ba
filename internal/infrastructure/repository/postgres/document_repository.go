package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

type DocumentRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db, now: time.Now}
}

const documentColumns = `id, case_id, filename, mime_type, storage_path, size_bytes, validated, classified, assessment, status, error_message, created_at, updated_at`

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	classified, err := marshalNullable(doc.Classified)
	if err != nil {
		return fmt.Errorf("marshal classified: %w", err)
	}
	assessment, err := marshalNullable(doc.Assessment)
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO documents (`+documentColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
`,
		doc.ID, doc.CaseID, doc.Filename, doc.MimeType, doc.StoragePath, doc.SizeBytes, doc.Validated,
		classified, assessment, string(doc.Status), doc.Error, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+documentColumns+`
FROM documents
WHERE id = $1
`, id)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", err)
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return &doc, nil
}

// ListByCase returns the case documents in upload order.
func (r *DocumentRepository) ListByCase(ctx context.Context, caseID string) ([]domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+documentColumns+`
FROM documents
WHERE case_id = $1
ORDER BY created_at ASC, id ASC
`, caseID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, r.now().UTC())
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	return requireAffected(result, domain.ErrDocumentNotFound, "update document status", id)
}

func (r *DocumentRepository) SaveAnalysis(ctx context.Context, id string, classified domain.ClassifiedDocument, assessment domain.ProofAssessment) error {
	classifiedJSON, err := json.Marshal(classified)
	if err != nil {
		return fmt.Errorf("marshal classified: %w", err)
	}
	assessmentJSON, err := json.Marshal(assessment)
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET classified = $2, assessment = $3, updated_at = $4
WHERE id = $1
`, id, classifiedJSON, assessmentJSON, r.now().UTC())
	if err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	return requireAffected(result, domain.ErrDocumentNotFound, "save analysis", id)
}

// SetValidated stores the review flag; a nil assessment keeps the stored one.
func (r *DocumentRepository) SetValidated(ctx context.Context, id string, validated bool, assessment *domain.ProofAssessment) error {
	assessmentJSON, err := marshalNullable(assessment)
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET validated = $2, assessment = COALESCE($3, assessment), updated_at = $4
WHERE id = $1
`, id, validated, assessmentJSON, r.now().UTC())
	if err != nil {
		return fmt.Errorf("set validated: %w", err)
	}
	return requireAffected(result, domain.ErrDocumentNotFound, "set validated", id)
}

func scanDocument(row rowScanner) (domain.Document, error) {
	var doc domain.Document
	var status string
	var classifiedRaw, assessmentRaw []byte

	err := row.Scan(
		&doc.ID, &doc.CaseID, &doc.Filename, &doc.MimeType, &doc.StoragePath, &doc.SizeBytes, &doc.Validated,
		&classifiedRaw, &assessmentRaw, &status, &doc.Error, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return domain.Document{}, err
	}
	doc.Status = domain.DocumentStatus(status)

	if len(classifiedRaw) > 0 {
		var classified domain.ClassifiedDocument
		if err := json.Unmarshal(classifiedRaw, &classified); err != nil {
			return domain.Document{}, fmt.Errorf("unmarshal classified: %w", err)
		}
		doc.Classified = &classified
	}
	if len(assessmentRaw) > 0 {
		var assessment domain.ProofAssessment
		if err := json.Unmarshal(assessmentRaw, &assessment); err != nil {
			return domain.Document{}, fmt.Errorf("unmarshal assessment: %w", err)
		}
		doc.Assessment = &assessment
	}
	return doc, nil
}

// marshalNullable encodes v as JSON, mapping a nil pointer to SQL NULL.
func marshalNullable[T any](v *T) (any, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
