package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
	"github.com/kirillkom/legal-case-intel/internal/core/ports"
)

type IngestOptions struct {
	MaxUploadBytes    int64
	AllowedExtensions []string
}

func DefaultIngestOptions() IngestOptions {
	return IngestOptions{
		MaxUploadBytes:    10 << 20,
		AllowedExtensions: []string{"pdf", "doc", "docx", "jpg", "jpeg", "png", "txt", "xlsx"},
	}
}

type IngestDocumentUseCase struct {
	cases   ports.CaseRepository
	repo    ports.DocumentRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue
	opts    IngestOptions
	now     func() time.Time
}

func NewIngestDocumentUseCase(
	cases ports.CaseRepository,
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
	opts IngestOptions,
) *IngestDocumentUseCase {
	defaults := DefaultIngestOptions()
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if len(opts.AllowedExtensions) == 0 {
		opts.AllowedExtensions = defaults.AllowedExtensions
	}
	return &IngestDocumentUseCase{
		cases:   cases,
		repo:    repo,
		storage: storage,
		queue:   queue,
		opts:    opts,
		now:     time.Now,
	}
}

func (uc *IngestDocumentUseCase) Upload(
	ctx context.Context,
	caseID, filename, mimeType string,
	body io.Reader,
) (*domain.Document, error) {
	if strings.TrimSpace(caseID) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload document", errors.New("case_id is required"))
	}
	if err := uc.checkExtension(filename); err != nil {
		return nil, err
	}
	if _, err := uc.cases.GetByID(ctx, caseID); err != nil {
		return nil, fmt.Errorf("fetch case by id: %w", err)
	}

	payload, err := uc.readLimited(body)
	if err != nil {
		return nil, err
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = domain.MimeTypeFor(filename)
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s/%s_%s", caseID, id, sanitizeFilename(filename))
	now := uc.now().UTC()

	if err := uc.storage.Save(ctx, storageKey, bytes.NewReader(payload)); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	doc := &domain.Document{
		ID:          id,
		CaseID:      caseID,
		Filename:    filename,
		MimeType:    mimeType,
		StoragePath: storageKey,
		SizeBytes:   int64(len(payload)),
		Status:      domain.StatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document metadata: %w", err)
	}

	if err := uc.queue.PublishDocumentIngested(ctx, doc.ID); err != nil {
		return nil, fmt.Errorf("publish ingestion event: %w", err)
	}

	return doc, nil
}

func (uc *IngestDocumentUseCase) checkExtension(filename string) error {
	ext := strings.TrimPrefix(domain.Extension(filename), ".")
	if ext == "" || !slices.Contains(uc.opts.AllowedExtensions, ext) {
		return domain.WrapError(
			domain.ErrInvalidInput,
			"upload document",
			fmt.Errorf("file extension %q is not allowed", ext),
		)
	}
	return nil
}

func (uc *IngestDocumentUseCase) readLimited(body io.Reader) ([]byte, error) {
	payload, err := io.ReadAll(io.LimitReader(body, uc.opts.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload body: %w", err)
	}
	if int64(len(payload)) > uc.opts.MaxUploadBytes {
		return nil, domain.WrapError(
			domain.ErrInvalidInput,
			"upload document",
			fmt.Errorf("file exceeds %d bytes", uc.opts.MaxUploadBytes),
		)
	}
	if len(payload) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload document", errors.New("empty file"))
	}
	return payload, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		return "document.bin"
	}
	return base
}
