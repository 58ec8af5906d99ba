// Package proof assigns an evidentiary category, a relevance score and the
// essential-proof flag to classified documents.
package proof

import (
	"strings"

	"github.com/kirillkom/legal-case-intel/internal/core/catalog"
	"github.com/kirillkom/legal-case-intel/internal/core/domain"
	"github.com/kirillkom/legal-case-intel/internal/core/ports"
)

type Option func(*Assessor)

func WithObserver(o ports.AnalysisObserver) Option {
	return func(a *Assessor) {
		a.observer = ports.ObserverOrNop(o)
	}
}

type Assessor struct {
	categories []catalog.CategoryRule
	fallback   catalog.CategoryRule
	essential  []string
	observer   ports.AnalysisObserver
}

func New(cat *catalog.Catalog, opts ...Option) *Assessor {
	a := &Assessor{
		categories: cat.ProofCategories(),
		fallback:   cat.FallbackCategory(),
		essential:  cat.EssentialTypes(),
		observer:   ports.NopObserver{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Assessor) Assess(doc domain.ClassifiedDocument, validated bool) domain.ProofAssessment {
	docType := strings.ToLower(string(doc.DocumentType))
	text := strings.ToLower(doc.Text)

	rule := a.category(docType, text)
	relevance := a.relevance(rule, docType, text, doc, validated)
	essential := a.isEssential(docType, rule.Category)

	a.observer.ObserveAnalysis("assess_proof",
		"document_type", docType,
		"category", string(rule.Category),
		"relevance", relevance,
	)
	return domain.ProofAssessment{
		Category:      rule.Category,
		Relevance:     relevance,
		IsEssential:   essential,
		Justification: justification(rule.Description, relevance, essential),
	}
}

func (a *Assessor) AssessBatch(docs []domain.CaseDocument) []domain.CaseDocument {
	out := make([]domain.CaseDocument, len(docs))
	for i, d := range docs {
		assessment := a.Assess(d.Classified, d.Validated)
		d.Assessment = &assessment
		out[i] = d
	}
	return out
}

func (a *Assessor) category(docType, text string) catalog.CategoryRule {
	for _, rule := range a.categories {
		for _, marker := range rule.Markers {
			if strings.Contains(docType, marker) || (rule.MatchText && strings.Contains(text, marker)) {
				return rule
			}
		}
	}
	return a.fallback
}

// relevance applies base, boost and bonuses, clamping once at the end.
func (a *Assessor) relevance(rule catalog.CategoryRule, docType, text string, doc domain.ClassifiedDocument, validated bool) int {
	score := rule.BaseRelevance
	if containsAny(docType, rule.Boost.TypeMarkers) || containsAny(text, rule.Boost.TextMarkers) {
		score = rule.Boost.Relevance
	}
	if validated {
		score++
	}
	if doc.HasIdentityNumber || doc.HasTaxID {
		score++
	}
	return max(domain.MinRelevance, min(domain.MaxRelevance, score))
}

func (a *Assessor) isEssential(docType string, category domain.ProofCategory) bool {
	return category == domain.ProofOfficialDocument || containsAny(docType, a.essential)
}

func justification(description string, relevance int, essential bool) string {
	var b strings.Builder
	b.WriteString(description)
	if essential {
		b.WriteString(" - Prova essencial para o caso")
	}
	switch {
	case relevance >= 8:
		b.WriteString(" - Alta relevância")
	case relevance >= 6:
		b.WriteString(" - Média-alta relevância")
	default:
		b.WriteString(" - Relevância moderada")
	}
	return b.String()
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(s, m) {
			return true
		}
	}
	return false
}
