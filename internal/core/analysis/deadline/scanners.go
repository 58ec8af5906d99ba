package deadline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/kirillkom/legal-case-intel/internal/core/catalog"
	"github.com/kirillkom/legal-case-intel/internal/core/dateparse"
	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

var explicitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)vencimento[:\s]+(\d{2}/\d{2}/\d{4})`),
	regexp.MustCompile(`(?i)vencer[áa]\s+em[:\s]+(\d{2}/\d{2}/\d{4})`),
	regexp.MustCompile(`(?i)prazo[:\s]+até[:\s]+(\d{2}/\d{2}/\d{4})`),
	regexp.MustCompile(`(?i)data\s+limite[:\s]+(\d{2}/\d{2}/\d{4})`),
	regexp.MustCompile(`(?i)até\s+o\s+dia[:\s]+(\d{2}/\d{2}/\d{4})`),
	regexp.MustCompile(`(?i)(\d{2}/\d{2}/\d{4})\s+é\s+o\s+prazo`),
}

var (
	daysForRe  = regexp.MustCompile(`(?i)(\d+)\s+dias?\s+(?:para|de|para o|para a)?\s*([a-záàâãéêíóôõúç\s]+)`)
	slashDayRe = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
)

// contextLimit caps keyword-context descriptions, in runes.
const contextLimit = 100

var typeRules = []struct {
	markers []string
	kind    domain.DeadlineType
}{
	{markers: []string{"contestação", "contestar", "resposta"}, kind: domain.DeadlineProcedural},
	{markers: []string{"recurso", "apelação", "agravo"}, kind: domain.DeadlineProcedural},
	{markers: []string{"intimação", "citação", "notificação"}, kind: domain.DeadlineProcedural},
	{markers: []string{"pagamento", "vencimento", "fatura"}, kind: domain.DeadlineContractual},
}

func TypeOf(label string) domain.DeadlineType {
	lower := strings.ToLower(label)
	for _, rule := range typeRules {
		for _, m := range rule.markers {
			if strings.Contains(lower, m) {
				return rule.kind
			}
		}
	}
	return domain.DeadlineAdministrative
}

func scanExplicit(text string) []domain.Deadline {
	var out []domain.Deadline
	for _, re := range explicitPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			due, ok := dateparse.SlashDate(m[1])
			if !ok {
				continue
			}
			out = append(out, domain.Deadline{
				Type:        domain.DeadlineProcedural,
				DueDate:     &due,
				Description: "Prazo identificado: " + m[1],
				Origin:      domain.OriginExplicitDate,
				Confidence:  domain.ConfidenceHigh,
			})
		}
	}
	return out
}

// scanProcedural handles "<N> dias para <label>" and the known-term catalog.
// Without a base date the count runs from today with low confidence, and
// catalog terms are skipped.
func scanProcedural(text string, base *civil.Date, today civil.Date, terms []catalog.ProceduralTerm) []domain.Deadline {
	var out []domain.Deadline
	for _, m := range daysForRe.FindAllStringSubmatch(text, -1) {
		days, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		label := strings.ToLower(strings.TrimSpace(m[2]))
		d := domain.Deadline{
			Type:        TypeOf(label),
			Description: fmt.Sprintf("%d dias para %s", days, label),
			Origin:      domain.OriginProceduralPattern,
			Confidence:  domain.ConfidenceMedium,
			DaysCount:   intPtr(days),
		}
		from := today
		if base != nil {
			from = *base
		} else {
			d.Description += " (a partir de hoje)"
			d.Confidence = domain.ConfidenceLow
		}
		due := from.AddDays(days)
		d.DueDate = &due
		out = append(out, d)
	}

	if base == nil {
		return out
	}
	lower := strings.ToLower(text)
	for _, term := range terms {
		if !strings.Contains(lower, term.Name) {
			continue
		}
		due := base.AddDays(term.Days)
		out = append(out, domain.Deadline{
			Type:        domain.DeadlineProcedural,
			DueDate:     &due,
			Description: fmt.Sprintf("Prazo padrão para %s: %d dias", term.Name, term.Days),
			Origin:      domain.OriginKnownCatalog,
			Confidence:  domain.ConfidenceHigh,
			DaysCount:   intPtr(term.Days),
		})
	}
	return out
}

func keywordPatterns(keywords []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		out = append(out, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(kw)+`[:\s]+([^\.\n]+)`))
	}
	return out
}

func scanKeywords(text string, patterns []*regexp.Regexp) []domain.Deadline {
	var out []domain.Deadline
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			context := strings.TrimSpace(m[1])
			literal := slashDayRe.FindString(context)
			if literal == "" {
				continue
			}
			due, ok := dateparse.SlashDate(literal)
			if !ok {
				continue
			}
			out = append(out, domain.Deadline{
				Type:        domain.DeadlineProcedural,
				DueDate:     &due,
				Description: "Prazo encontrado: " + truncateRunes(context, contextLimit),
				Origin:      domain.OriginKeywordContext,
				Confidence:  domain.ConfidenceMedium,
			})
		}
	}
	return out
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func intPtr(v int) *int {
	return &v
}
