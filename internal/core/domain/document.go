package domain

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusFailed     DocumentStatus = "failed"
)

// DocumentType is the catalog key resolved from document text, e.g. "cpf" or "holerite".
type DocumentType string

const GenericDocumentType DocumentType = "generic_document"

type Document struct {
	ID          string              `json:"id"`
	CaseID      string              `json:"case_id"`
	Filename    string              `json:"filename"`
	MimeType    string              `json:"mime_type"`
	StoragePath string              `json:"storage_path"`
	SizeBytes   int64               `json:"size_bytes"`
	Validated   bool                `json:"validated"`
	Classified  *ClassifiedDocument `json:"classified,omitempty"`
	Assessment  *ProofAssessment    `json:"assessment,omitempty"`
	Status      DocumentStatus      `json:"status"`
	Error       string              `json:"error,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (d Document) CaseDocument() CaseDocument {
	out := CaseDocument{
		ID:         d.ID,
		FileName:   d.Filename,
		Validated:  d.Validated,
		UploadedAt: d.CreatedAt.UTC().Format(time.RFC3339),
		Assessment: d.Assessment,
	}
	if d.Classified != nil {
		out.Classified = *d.Classified
	} else {
		out.Classified = ClassifiedDocument{
			RawDocument:  RawDocument{FileName: d.Filename, MimeType: d.MimeType, SizeBytes: d.SizeBytes},
			DocumentType: GenericDocumentType,
		}
	}
	return out
}

// RawDocument is the output of the text extraction collaborator.
type RawDocument struct {
	Text      string            `json:"text"`
	FileName  string            `json:"file_name"`
	MimeType  string            `json:"mime_type"`
	SizeBytes int64             `json:"size_bytes"`
	PageCount int               `json:"page_count,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// ClassifiedDocument is produced once per document by the classifier and only read afterwards.
type ClassifiedDocument struct {
	RawDocument

	DocumentType      DocumentType      `json:"document_type"`
	ExtractedDate     *civil.Date       `json:"extracted_date,omitempty"`
	MonetaryValues    []decimal.Decimal `json:"monetary_values"`
	HasIdentityNumber bool              `json:"has_identity_number"`
	HasTaxID          bool              `json:"has_tax_id"`
	HasEmail          bool              `json:"has_email"`
	HasPhone          bool              `json:"has_phone"`
	WordCount         int               `json:"word_count"`
	LineCount         int               `json:"line_count"`
}

// CaseDocument is a classified document as seen from a case: assessment, validation and upload time.
type CaseDocument struct {
	ID         string             `json:"id,omitempty"`
	FileName   string             `json:"file_name,omitempty"`
	Classified ClassifiedDocument `json:"classified"`
	Assessment *ProofAssessment   `json:"assessment,omitempty"`
	Validated  bool               `json:"validated"`
	// UploadedAt accepts any literal the timeline date chain understands.
	UploadedAt string `json:"uploaded_at,omitempty"`
}
