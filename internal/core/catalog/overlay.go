package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

// Overlay extends the default tables. Entries are appended after the
// built-in ones, so defaults keep their priority; templates replace by key.
type Overlay struct {
	DocumentTypes      []DocumentTypeRule                  `yaml:"document_types"`
	ProceduralTerms    []ProceduralTerm                    `yaml:"procedural_terms"`
	ChecklistMappings  []ActionMapping                     `yaml:"checklist_mappings"`
	ChecklistTemplates map[string]domain.ChecklistTemplate `yaml:"checklist_templates"`
}

// Load returns the default catalog, extended by the overlay file at path when path is set.
func Load(path string) (*Catalog, error) {
	base := Default()
	if strings.TrimSpace(path) == "" {
		return base, nil
	}
	overlay, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return base.WithOverlay(overlay), nil
}

func LoadFile(path string) (*Overlay, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog overlay: %w", err)
	}
	return ParseOverlay(raw)
}

func ParseOverlay(raw []byte) (*Overlay, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var overlay Overlay
	if err := dec.Decode(&overlay); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog overlay: %w", err)
	}
	if err := overlay.validate(); err != nil {
		return nil, err
	}
	return &overlay, nil
}

func (o *Overlay) validate() error {
	for i, rule := range o.DocumentTypes {
		if strings.TrimSpace(string(rule.Type)) == "" || len(rule.Keywords) == 0 {
			return fmt.Errorf("catalog overlay: document_types[%d] needs type and keywords", i)
		}
	}
	for i, term := range o.ProceduralTerms {
		if strings.TrimSpace(term.Name) == "" || term.Days <= 0 {
			return fmt.Errorf("catalog overlay: procedural_terms[%d] needs name and positive days", i)
		}
	}
	for i, m := range o.ChecklistMappings {
		if strings.TrimSpace(m.Substring) == "" || strings.TrimSpace(m.Key) == "" {
			return fmt.Errorf("catalog overlay: checklist_mappings[%d] needs substring and key", i)
		}
	}
	for key, tpl := range o.ChecklistTemplates {
		if len(tpl.Required) == 0 {
			return fmt.Errorf("catalog overlay: checklist_templates.%s has no required items", key)
		}
	}
	return nil
}

// WithOverlay returns a new catalog; c is left untouched.
func (c *Catalog) WithOverlay(o *Overlay) *Catalog {
	out := c.clone()
	if o == nil {
		return out
	}
	for _, rule := range o.DocumentTypes {
		keywords := make([]string, 0, len(rule.Keywords))
		for _, kw := range rule.Keywords {
			keywords = append(keywords, strings.ToLower(kw))
		}
		out.documentTypes = append(out.documentTypes, DocumentTypeRule{Type: rule.Type, Keywords: keywords})
	}
	for _, term := range o.ProceduralTerms {
		out.proceduralTerms = append(out.proceduralTerms, ProceduralTerm{Name: strings.ToLower(term.Name), Days: term.Days})
	}
	for _, m := range o.ChecklistMappings {
		out.mappings = append(out.mappings, ActionMapping{Substring: strings.ToLower(m.Substring), Key: m.Key})
	}
	for key, tpl := range o.ChecklistTemplates {
		out.templates[key] = tpl.Clone()
	}
	return out
}
