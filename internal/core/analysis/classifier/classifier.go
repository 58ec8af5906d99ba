// Package classifier resolves the document type and structural metadata of extracted text.
package classifier

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kirillkom/legal-case-intel/internal/core/catalog"
	"github.com/kirillkom/legal-case-intel/internal/core/dateparse"
	"github.com/kirillkom/legal-case-intel/internal/core/domain"
	"github.com/kirillkom/legal-case-intel/internal/core/ports"
)

var (
	identityRe = regexp.MustCompile(`\d{3}\.?\d{3}\.?\d{3}-?\d{2}`)
	taxIDRe    = regexp.MustCompile(`\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}`)
	emailRe    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe    = regexp.MustCompile(`\(?\d{2}\)?\s?\d{4,5}-?\d{4}`)
)

// amount matches "1.234,56", "1234,56" and "50" in the pt-BR convention.
const amount = `((?:\d{1,3}(?:\.\d{3})+|\d+)(?:,\d{2})?)`

var moneyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)R\$\s*` + amount),
	regexp.MustCompile(`(?i)` + amount + `\s*reais`),
	regexp.MustCompile(`(?i)valor[:\s]+R\$\s*` + amount),
}

type Option func(*Classifier)

func WithObserver(o ports.AnalysisObserver) Option {
	return func(c *Classifier) {
		c.observer = ports.ObserverOrNop(o)
	}
}

func WithDateScanner(s dateparse.Scanner) Option {
	return func(c *Classifier) {
		c.dates = s
	}
}

type Classifier struct {
	types    []catalog.DocumentTypeRule
	dates    dateparse.Scanner
	observer ports.AnalysisObserver
}

func New(cat *catalog.Catalog, opts ...Option) *Classifier {
	c := &Classifier{
		types:    cat.DocumentTypes(),
		dates:    dateparse.DocumentScanner(),
		observer: ports.NopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Classifier) Classify(raw domain.RawDocument) domain.ClassifiedDocument {
	text := dateparse.FoldSpaces(raw.Text)
	out := domain.ClassifiedDocument{
		RawDocument:       raw,
		DocumentType:      c.DocumentType(text),
		MonetaryValues:    MonetaryValues(text),
		HasIdentityNumber: identityRe.MatchString(text),
		HasTaxID:          taxIDRe.MatchString(text),
		HasEmail:          emailRe.MatchString(text),
		HasPhone:          phoneRe.MatchString(text),
		WordCount:         len(strings.Fields(text)),
		LineCount:         len(strings.Split(text, "\n")),
	}
	if d, ok := c.dates.Scan(text); ok {
		out.ExtractedDate = &d
	}

	c.observer.ObserveAnalysis("classify_document",
		"document_type", string(out.DocumentType),
		"has_date", out.ExtractedDate != nil,
		"monetary_values", len(out.MonetaryValues),
	)
	return out
}

func (c *Classifier) DocumentType(text string) domain.DocumentType {
	lower := strings.ToLower(text)
	for _, rule := range c.types {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(lower, kw) {
				return rule.Type
			}
		}
	}
	return domain.GenericDocumentType
}

// MonetaryValues extracts distinct currency amounts in order of discovery.
func MonetaryValues(text string) []decimal.Decimal {
	text = dateparse.FoldSpaces(text)
	out := make([]decimal.Decimal, 0)
	for _, re := range moneyPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			v, ok := ParseAmount(m[1])
			if !ok || containsValue(out, v) {
				continue
			}
			out = append(out, v)
		}
	}
	return out
}

// ParseAmount converts a pt-BR literal ("1.234,56") to a decimal.
func ParseAmount(literal string) (decimal.Decimal, bool) {
	normalized := strings.ReplaceAll(strings.TrimSpace(literal), ".", "")
	normalized = strings.Replace(normalized, ",", ".", 1)
	v, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return v, true
}

func containsValue(values []decimal.Decimal, v decimal.Decimal) bool {
	for _, existing := range values {
		if existing.Equal(v) {
			return true
		}
	}
	return false
}
