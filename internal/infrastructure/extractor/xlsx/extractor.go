package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractBytes writes every non-empty row with cells joined by tabs, each
// sheet under a "--- Planilha <name> ---" header. PageCount holds the sheet count.
func (e *Extractor) ExtractBytes(ctx context.Context, data []byte) (domain.RawDocument, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	sheets := f.GetSheetList()
	for _, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return domain.RawDocument{}, err
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return domain.RawDocument{}, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		b.WriteString("\n--- Planilha ")
		b.WriteString(sheet)
		b.WriteString(" ---\n")
		for _, row := range rows {
			line := strings.TrimRight(strings.Join(row, "\t"), "\t")
			if strings.TrimSpace(line) == "" {
				continue
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	return domain.RawDocument{
		Text:      strings.TrimSpace(b.String()),
		PageCount: len(sheets),
		Metadata:  docProps(f),
	}, nil
}

func docProps(f *excelize.File) map[string]string {
	props, err := f.GetDocProps()
	if err != nil || props == nil {
		return nil
	}
	out := make(map[string]string)
	for key, value := range map[string]string{
		"title":    props.Title,
		"author":   props.Creator,
		"created":  props.Created,
		"modified": props.Modified,
	} {
		if v := strings.TrimSpace(value); v != "" {
			out[key] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
