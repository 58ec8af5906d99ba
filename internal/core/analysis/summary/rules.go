package summary

import (
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

// aggregate holds per-corpus counts collected in one pass over the documents.
type aggregate struct {
	total      int
	types      map[domain.DocumentType]int
	categories map[domain.ProofCategory]int
	dates      []civil.Date
	values     []decimal.Decimal
	validated  int
	essential  int
	relevances []int
}

func collect(docs []domain.CaseDocument) *aggregate {
	a := &aggregate{
		total:      len(docs),
		types:      make(map[domain.DocumentType]int),
		categories: make(map[domain.ProofCategory]int),
	}
	for _, d := range docs {
		a.types[d.Classified.DocumentType]++
		if d.Classified.ExtractedDate != nil {
			a.dates = append(a.dates, *d.Classified.ExtractedDate)
		}
		a.values = append(a.values, d.Classified.MonetaryValues...)
		if d.Validated {
			a.validated++
		}
		if d.Assessment == nil {
			continue
		}
		a.categories[d.Assessment.Category]++
		if d.Assessment.IsEssential {
			a.essential++
		}
		if d.Assessment.Relevance > 0 {
			a.relevances = append(a.relevances, d.Assessment.Relevance)
		}
	}
	return a
}

func (a *aggregate) has(t domain.DocumentType) bool {
	return a.types[t] > 0
}

// averageRelevance is 0 without documents and 5 when none carries a score.
func (a *aggregate) averageRelevance() float64 {
	if a.total == 0 {
		return 0
	}
	if len(a.relevances) == 0 {
		return 5
	}
	sum := 0
	for _, r := range a.relevances {
		sum += r
	}
	return float64(sum) / float64(len(a.relevances))
}

type findings struct {
	keyPoints  []string
	weaknesses []string
	alerts     []string
}

// rule contributes action-type specific findings. Rules are independent:
// every rule whose markers match the action type runs.
type rule struct {
	name    string
	markers []string
	apply   func(a *aggregate, out *findings)
}

func (r rule) matches(action string) bool {
	for _, m := range r.markers {
		if strings.Contains(action, m) {
			return true
		}
	}
	return false
}

var actionRules = []rule{
	{
		name:    "gratuity",
		markers: []string{"gratuidade"},
		apply: func(a *aggregate, out *findings) {
			out.keyPoints = append(out.keyPoints, "Caso de gratuidade de justiça - requer comprovação de hipossuficiência")
			if a.has("irpf") || a.has("extrato_bancario") {
				out.keyPoints = append(out.keyPoints, "Documentos de renda presentes")
			} else {
				out.keyPoints = append(out.keyPoints, "ATENÇÃO: Documentos de renda podem estar faltando")
				out.weaknesses = append(out.weaknesses, "Falta documentação de renda para gratuidade de justiça")
			}
			if !a.has("irpf") {
				out.alerts = append(out.alerts, "ALERTA: IRPF não encontrado - necessário para gratuidade de justiça")
			}
			if !a.has("extrato_bancario") {
				out.alerts = append(out.alerts, "ALERTA: Extrato bancário não encontrado - recomendado para gratuidade")
			}
		},
	},
	{
		name:    "alimony",
		markers: []string{"pensão", "pensao", "alimentícia", "alimenticia"},
		apply: func(a *aggregate, out *findings) {
			out.keyPoints = append(out.keyPoints, "Caso de pensão alimentícia - requer comprovação de renda e despesas")
			if len(a.values) > 0 {
				out.keyPoints = append(out.keyPoints, "Valores identificados nos documentos: R$ "+formatBRL(decimal.Sum(decimal.Zero, a.values...)))
			}
			if !a.has("certidao") {
				out.alerts = append(out.alerts, "ALERTA: Certidão de nascimento não encontrada")
			}
			if !a.has("holerite") {
				out.alerts = append(out.alerts, "ALERTA: Comprovantes de renda podem estar faltando")
			}
		},
	},
	{
		name:    "labor",
		markers: []string{"trabalhista", "rescisão", "rescisao"},
		apply: func(a *aggregate, out *findings) {
			out.keyPoints = append(out.keyPoints, "Caso trabalhista - requer documentação de vínculo empregatício")
			if a.has("holerite") || a.has("contrato") {
				out.keyPoints = append(out.keyPoints, "Documentação trabalhista presente")
			} else {
				out.weaknesses = append(out.weaknesses, "Falta documentação trabalhista essencial (contrato ou holerites)")
			}
			if !a.has("contrato") {
				out.alerts = append(out.alerts, "ALERTA: Contrato de trabalho não encontrado - documento essencial")
			}
			if !a.has("holerite") {
				out.alerts = append(out.alerts, "ALERTA: Holerites não encontrados - necessários para cálculo trabalhista")
			}
		},
	},
	{
		name:    "consumer",
		markers: []string{"consumidor", "consumo"},
		apply: func(_ *aggregate, out *findings) {
			out.keyPoints = append(out.keyPoints, "Caso de direito do consumidor - requer comprovação de relação de consumo")
		},
	},
}

// formatBRL renders an amount as 1.234,56.
func formatBRL(v decimal.Decimal) string {
	fixed := v.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if v.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}
