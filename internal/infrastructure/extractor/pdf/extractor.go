package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	lpdf "github.com/ledongthuc/pdf"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

var infoKeys = map[string]string{
	"Title":   "title",
	"Author":  "author",
	"Subject": "subject",
	"Creator": "creator",
}

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractBytes concatenates page text under "--- Página N ---" headers.
func (e *Extractor) ExtractBytes(ctx context.Context, data []byte) (raw domain.RawDocument, err error) {
	// the pdf package panics on malformed content streams
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return domain.RawDocument{}, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return domain.RawDocument{}, fmt.Errorf("read pdf page %d: %w", i, err)
		}
		b.WriteString("\n--- Página ")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(" ---\n")
		b.WriteString(text)
	}

	return domain.RawDocument{
		Text:      strings.TrimSpace(b.String()),
		PageCount: pages,
		Metadata:  documentInfo(reader),
	}, nil
}

func documentInfo(reader *lpdf.Reader) map[string]string {
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return nil
	}
	out := make(map[string]string)
	for key, name := range infoKeys {
		if v := strings.TrimSpace(info.Key(key).Text()); v != "" {
			out[name] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
