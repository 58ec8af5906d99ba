// Package docx reads text and core properties from OOXML word documents.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

const (
	documentPart = "word/document.xml"
	corePart     = "docProps/core.xml"

	defaultMaxPartBytes = 32 << 20
)

type Extractor struct {
	maxPartBytes int64
}

type Option func(*Extractor)

// WithMaxPartBytes caps the decompressed size of a single package part.
func WithMaxPartBytes(n int64) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxPartBytes = n
		}
	}
}

func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{maxPartBytes: defaultMaxPartBytes}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractBytes returns body paragraphs followed by table rows, one per line,
// with cells separated by a space. PageCount holds the paragraph count.
func (e *Extractor) ExtractBytes(_ context.Context, data []byte) (domain.RawDocument, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("open docx: %w", err)
	}

	body, err := readPart(archive, documentPart, e.maxPartBytes)
	if err != nil {
		return domain.RawDocument{}, err
	}
	paragraphs, rows, err := parseBody(body)
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("parse %s: %w", documentPart, err)
	}

	lines := append(paragraphs, rows...)
	raw := domain.RawDocument{
		Text:      strings.TrimSpace(strings.Join(lines, "\n")),
		PageCount: len(paragraphs),
	}
	if core, err := readPart(archive, corePart, e.maxPartBytes); err == nil {
		raw.Metadata = parseCoreProperties(core)
	}
	return raw, nil
}

func readPart(archive *zip.Reader, name string, limit int64) ([]byte, error) {
	f, err := archive.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%s exceeds %d bytes", name, limit)
	}
	return data, nil
}

func parseBody(data []byte) (paragraphs []string, rows []string, err error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		para       strings.Builder
		cell       strings.Builder
		row        []string
		tableDepth int
		inText     bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tr":
				row = row[:0]
			case "tc":
				cell.Reset()
			case "p":
				para.Reset()
			case "t":
				inText = true
			case "tab":
				para.WriteByte('\t')
			case "br", "cr":
				para.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if tableDepth > 0 {
					if cell.Len() > 0 {
						cell.WriteByte(' ')
					}
					cell.WriteString(para.String())
				} else {
					paragraphs = append(paragraphs, para.String())
				}
			case "tc":
				row = append(row, cell.String())
			case "tr":
				rows = append(rows, strings.Join(row, " "))
			case "tbl":
				tableDepth--
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}
	return paragraphs, rows, nil
}

type coreProperties struct {
	Title    string `xml:"title"`
	Creator  string `xml:"creator"`
	Created  string `xml:"created"`
	Modified string `xml:"modified"`
}

func parseCoreProperties(data []byte) map[string]string {
	var props coreProperties
	if err := xml.Unmarshal(data, &props); err != nil {
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
