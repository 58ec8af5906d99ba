// Package extractor turns uploaded files into raw text for the classifier.
package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
	"github.com/kirillkom/legal-case-intel/internal/infrastructure/extractor/docx"
	"github.com/kirillkom/legal-case-intel/internal/infrastructure/extractor/pdf"
	"github.com/kirillkom/legal-case-intel/internal/infrastructure/extractor/plaintext"
	"github.com/kirillkom/legal-case-intel/internal/infrastructure/extractor/xlsx"
)

// FormatExtractor reads one file format. Callers fill name, MIME type and size.
type FormatExtractor interface {
	ExtractBytes(ctx context.Context, data []byte) (domain.RawDocument, error)
}

type Option func(*Registry)

// WithFormat registers or replaces the extractor for an extension such as ".pdf".
func WithFormat(ext string, e FormatExtractor) Option {
	return func(r *Registry) {
		r.formats[normalizeExt(ext)] = e
	}
}

type Registry struct {
	formats map[string]FormatExtractor
}

func New(opts ...Option) *Registry {
	text := plaintext.NewExtractor()
	r := &Registry{formats: map[string]FormatExtractor{
		".txt":  text,
		".md":   text,
		".pdf":  pdf.NewExtractor(),
		".docx": docx.NewExtractor(),
		".xlsx": xlsx.NewExtractor(),
	}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// UnsupportedText is the marker substituted for formats without an extractor.
func UnsupportedText(ext string) string {
	return fmt.Sprintf("Tipo de arquivo %s não suportado para extração de texto", ext)
}

func (r *Registry) Extract(ctx context.Context, fileName string, body io.Reader) (domain.RawDocument, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return domain.RawDocument{}, fmt.Errorf("read source document: %w", err)
	}

	ext := domain.Extension(fileName)
	raw := domain.RawDocument{
		Text: UnsupportedText(ext),
	}
	if format, ok := r.formats[ext]; ok {
		extracted, err := format.ExtractBytes(ctx, buf.Bytes())
		if err != nil {
			return domain.RawDocument{}, domain.WrapError(domain.ErrInvalidInput, "extract "+ext, err)
		}
		raw = extracted
	}

	raw.FileName = fileName
	raw.MimeType = domain.MimeTypeFor(fileName)
	raw.SizeBytes = int64(buf.Len())
	return raw, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
