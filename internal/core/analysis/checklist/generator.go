// Package checklist resolves evidence checklists for an action type and
// scores how complete a case's documentation is against them.
package checklist

import (
	"math"
	"strings"

	"github.com/kirillkom/legal-case-intel/internal/core/catalog"
	"github.com/kirillkom/legal-case-intel/internal/core/domain"
	"github.com/kirillkom/legal-case-intel/internal/core/ports"
)

const consensualDivorceKey = "divorcio_consensual"

// Thresholds are completion percentages, inclusive lower bounds.
type Thresholds struct {
	NearComplete float64
	Incomplete   float64
}

var DefaultThresholds = Thresholds{NearComplete: 70, Incomplete: 50}

type Option func(*Generator)

func WithMatcher(m Matcher) Option {
	return func(g *Generator) {
		if m != nil {
			g.matcher = m
		}
	}
}

func WithThresholds(t Thresholds) Option {
	return func(g *Generator) {
		if t.NearComplete > 0 && t.Incomplete > 0 && t.Incomplete <= t.NearComplete {
			g.thresholds = t
		}
	}
}

func WithObserver(o ports.AnalysisObserver) Option {
	return func(g *Generator) {
		g.observer = ports.ObserverOrNop(o)
	}
}

type Generator struct {
	catalog    *catalog.Catalog
	mappings   []catalog.ActionMapping
	matcher    Matcher
	thresholds Thresholds
	observer   ports.AnalysisObserver
}

func New(cat *catalog.Catalog, opts ...Option) *Generator {
	g := &Generator{
		catalog:    cat,
		mappings:   cat.ActionMappings(),
		matcher:    ContainmentMatcher{},
		thresholds: DefaultThresholds,
		observer:   ports.NopObserver{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Normalize maps an action type to a template key: the first mapping whose
// substring occurs wins, otherwise a slug of the input.
func (g *Generator) Normalize(actionType string) string {
	lower := strings.ToLower(actionType)
	for _, m := range g.mappings {
		if strings.Contains(lower, m.Substring) {
			return m.Key
		}
	}
	return Slug(lower)
}

// Slug reproduces the fallback key: spaces to underscores, ç to c, ã to a.
func Slug(s string) string {
	return strings.NewReplacer(" ", "_", "ç", "c", "ã", "a").Replace(s)
}

func (g *Generator) Generate(actionType string, variations domain.ChecklistVariations) domain.Checklist {
	key := g.Normalize(actionType)
	tpl, found := g.catalog.Template(key)
	if !found {
		tpl = g.catalog.GenericTemplate()
	}

	if variations.Consensual && strings.Contains(key, "divorcio") {
		if consensual, ok := g.catalog.Template(consensualDivorceKey); ok {
			tpl, key = consensual, consensualDivorceKey
		}
	}
	for _, extra := range variations.ExtraRecommended {
		if strings.TrimSpace(extra) != "" {
			tpl.Recommended = append(tpl.Recommended, extra)
		}
	}

	g.observer.ObserveAnalysis("generate_checklist",
		"action_type", actionType,
		"template", key,
		"generic", !found,
	)
	return domain.Checklist{
		ActionType:       actionType,
		NormalizedType:   key,
		Required:         tpl.Required,
		Recommended:      tpl.Recommended,
		AutoValidate:     tpl.AutoValidate,
		RequiredTotal:    len(tpl.Required),
		RecommendedTotal: len(tpl.Recommended),
	}
}

func (g *Generator) Validate(checklist domain.Checklist, received []string) domain.ChecklistResult {
	result := domain.ChecklistResult{
		RequiredPresent:    []string{},
		RequiredMissing:    []string{},
		RecommendedPresent: []string{},
		RequiredTotal:      len(checklist.Required),
	}
	for _, item := range checklist.Required {
		if g.anyMatch(item, received) {
			result.RequiredPresent = append(result.RequiredPresent, item)
		} else {
			result.RequiredMissing = append(result.RequiredMissing, item)
		}
	}
	for _, item := range checklist.Recommended {
		if g.anyMatch(item, received) {
			result.RecommendedPresent = append(result.RecommendedPresent, item)
		}
	}

	result.PresentTotal = len(result.RequiredPresent)
	result.MissingTotal = len(result.RequiredMissing)
	var pct float64
	if result.RequiredTotal > 0 {
		pct = float64(result.PresentTotal) / float64(result.RequiredTotal) * 100
	}
	result.Percent = math.Round(pct*100) / 100
	result.Status = g.status(result.PresentTotal, result.RequiredTotal, pct)
	result.IsComplete = result.Status == domain.CompletionComplete

	g.observer.ObserveAnalysis("validate_checklist",
		"template", checklist.NormalizedType,
		"percent", result.Percent,
		"status", string(result.Status),
	)
	return result
}

func (g *Generator) status(present, total int, pct float64) domain.CompletionStatus {
	switch {
	case total > 0 && present == total:
		return domain.CompletionComplete
	case pct >= g.thresholds.NearComplete:
		return domain.CompletionNearComplete
	case pct >= g.thresholds.Incomplete:
		return domain.CompletionIncomplete
	default:
		return domain.CompletionVeryIncomplete
	}
}

func (g *Generator) anyMatch(item string, received []string) bool {
	for _, r := range received {
		if g.matcher.Matches(item, r) {
			return true
		}
	}
	return false
}

// SuggestAdditional proposes documents commonly missing for labor and consumer cases.
func (g *Generator) SuggestAdditional(actionType string, received []string) []string {
	action := strings.ToLower(actionType)
	joined := strings.ToLower(strings.Join(received, " "))

	suggestions := []string{}
	if strings.Contains(action, "trabalhista") {
		if !strings.Contains(joined, "contrato") {
			suggestions = append(suggestions, "Contrato de trabalho")
		}
		if !strings.Contains(joined, "holerite") {
			suggestions = append(suggestions, "Holerites dos últimos 12 meses")
		}
	}
	if strings.Contains(action, "consumidor") {
		if !strings.Contains(joined, "nota") {
			suggestions = append(suggestions, "Nota fiscal")
		}
		if !strings.Contains(joined, "email") {
			suggestions = append(suggestions, "E-mails de comunicação")
		}
	}
	return suggestions
}
