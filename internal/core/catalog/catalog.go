// Package catalog holds the read-only rule tables shared by the analyzers.
// A Catalog is built once at startup and handed to analyzers; accessors
// return copies so no caller can alter the shared tables.
package catalog

import (
	"slices"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

type DocumentTypeRule struct {
	Type     domain.DocumentType `yaml:"type"`
	Keywords []string            `yaml:"keywords"`
}

// Boost raises the category base relevance when a marker is present.
type Boost struct {
	TypeMarkers []string
	TextMarkers []string
	Relevance   int
}

type CategoryRule struct {
	Category domain.ProofCategory
	// Markers are matched as substrings of the document type.
	Markers []string
	// MatchText also tests Markers against the document text.
	MatchText     bool
	BaseRelevance int
	Boost         Boost
	Description   string
}

type ProceduralTerm struct {
	Name string `yaml:"name"`
	Days int    `yaml:"days"`
}

type ActionMapping struct {
	Substring string `yaml:"substring"`
	Key       string `yaml:"key"`
}

type Catalog struct {
	documentTypes    []DocumentTypeRule
	categories       []CategoryRule
	otherCategory    CategoryRule
	essentialTypes   []string
	proceduralTerms  []ProceduralTerm
	deadlineKeywords []string
	templates        map[string]domain.ChecklistTemplate
	mappings         []ActionMapping
	genericTemplate  domain.ChecklistTemplate
}

// DocumentTypes returns the ordered type rules; earlier rules win ties.
func (c *Catalog) DocumentTypes() []DocumentTypeRule {
	out := make([]DocumentTypeRule, len(c.documentTypes))
	for i, r := range c.documentTypes {
		out[i] = DocumentTypeRule{Type: r.Type, Keywords: slices.Clone(r.Keywords)}
	}
	return out
}

// ProofCategories returns category rules in priority order, without the fallback.
func (c *Catalog) ProofCategories() []CategoryRule {
	out := make([]CategoryRule, len(c.categories))
	for i, r := range c.categories {
		out[i] = cloneCategory(r)
	}
	return out
}

// FallbackCategory is applied when no category rule matches.
func (c *Catalog) FallbackCategory() CategoryRule {
	return cloneCategory(c.otherCategory)
}

func (c *Catalog) EssentialTypes() []string {
	return slices.Clone(c.essentialTypes)
}

func (c *Catalog) ProceduralTerms() []ProceduralTerm {
	return slices.Clone(c.proceduralTerms)
}

func (c *Catalog) DeadlineKeywords() []string {
	return slices.Clone(c.deadlineKeywords)
}

func (c *Catalog) ActionMappings() []ActionMapping {
	return slices.Clone(c.mappings)
}

// Template returns a private copy of the template stored under key.
func (c *Catalog) Template(key string) (domain.ChecklistTemplate, bool) {
	t, ok := c.templates[key]
	if !ok {
		return domain.ChecklistTemplate{}, false
	}
	return t.Clone(), true
}

func (c *Catalog) GenericTemplate() domain.ChecklistTemplate {
	return c.genericTemplate.Clone()
}

func (c *Catalog) TemplateKeys() []string {
	keys := make([]string, 0, len(c.templates))
	for k := range c.templates {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func cloneCategory(r CategoryRule) CategoryRule {
	r.Markers = slices.Clone(r.Markers)
	r.Boost = Boost{
		TypeMarkers: slices.Clone(r.Boost.TypeMarkers),
		TextMarkers: slices.Clone(r.Boost.TextMarkers),
		Relevance:   r.Boost.Relevance,
	}
	return r
}

func (c *Catalog) clone() *Catalog {
	out := &Catalog{
		documentTypes:    c.DocumentTypes(),
		categories:       c.ProofCategories(),
		otherCategory:    c.FallbackCategory(),
		essentialTypes:   c.EssentialTypes(),
		proceduralTerms:  c.ProceduralTerms(),
		deadlineKeywords: c.DeadlineKeywords(),
		templates:        make(map[string]domain.ChecklistTemplate, len(c.templates)),
		mappings:         c.ActionMappings(),
		genericTemplate:  c.GenericTemplate(),
	}
	for k, t := range c.templates {
		out.templates[k] = t.Clone()
	}
	return out
}
