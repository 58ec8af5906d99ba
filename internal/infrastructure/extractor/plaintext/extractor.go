package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractBytes returns the file as UTF-8 text. Invalid sequences are
// replaced rather than rejected so legacy encodings still classify.
func (e *Extractor) ExtractBytes(_ context.Context, data []byte) (domain.RawDocument, error) {
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	return domain.RawDocument{Text: strings.TrimSpace(text)}, nil
}
