// Package summary aggregates a case's classified documents into key points,
// strengths, weaknesses and alerts, and renders them as a narrative.
package summary

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
	"github.com/kirillkom/legal-case-intel/internal/core/ports"
)

const (
	noStrengths  = "Análise de pontos fortes em andamento"
	noWeaknesses = "Nenhum ponto fraco crítico identificado"
)

type Option func(*Synthesizer)

func WithNow(now func() time.Time) Option {
	return func(s *Synthesizer) {
		if now != nil {
			s.now = now
		}
	}
}

func WithObserver(o ports.AnalysisObserver) Option {
	return func(s *Synthesizer) {
		s.observer = ports.ObserverOrNop(o)
	}
}

type Synthesizer struct {
	now      func() time.Time
	observer ports.AnalysisObserver
}

func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{now: time.Now, observer: ports.NopObserver{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Synthesizer) Summarize(info domain.CaseInfo, docs []domain.CaseDocument) domain.CaseSummary {
	agg := collect(docs)
	action := strings.ToLower(info.ActionType)

	var specific findings
	var applied []string
	for _, r := range actionRules {
		if r.matches(action) {
			r.apply(agg, &specific)
			applied = append(applied, r.name)
		}
	}

	keyPoints := append(specific.keyPoints, genericKeyPoints(agg)...)
	strengths := orPlaceholder(strengthsOf(agg), noStrengths)
	weaknesses := orPlaceholder(append(genericWeaknesses(agg), specific.weaknesses...), noWeaknesses)
	alerts := append(specific.alerts, genericAlerts(agg)...)

	out := domain.CaseSummary{
		CaseID:     info.ID,
		KeyPoints:  nonNil(keyPoints),
		Strengths:  strengths,
		Weaknesses: weaknesses,
		Alerts:     nonNil(alerts),
		Stats: domain.SummaryStats{
			TotalDocuments:     agg.total,
			ValidatedDocuments: agg.validated,
			EssentialDocuments: agg.essential,
			AverageRelevance:   agg.averageRelevance(),
		},
		GeneratedAt: s.now(),
	}
	out.NarrativeText = Render(info, out)

	s.observer.ObserveAnalysis("generate_summary",
		"case_id", info.ID,
		"documents", agg.total,
		"rules", applied,
		"alerts", len(out.Alerts),
	)
	return out
}

func genericKeyPoints(a *aggregate) []string {
	var out []string
	if n := a.categories[domain.ProofOfficialDocument]; n > 0 {
		out = append(out, fmt.Sprintf("%d documento(s) oficial(is) presente(s)", n))
	}
	if n := a.categories[domain.ProofFinancial]; n > 0 {
		out = append(out, fmt.Sprintf("%d comprovante(s) financeiro(s) presente(s)", n))
	}
	if len(a.dates) > 1 {
		dates := slices.Clone(a.dates)
		slices.SortFunc(dates, civil.Date.Compare)
		out = append(out, fmt.Sprintf("Período documentado: %s a %s", dates[0], dates[len(dates)-1]))
	}
	if a.essential > 0 {
		out = append(out, fmt.Sprintf("%d prova(s) essencial(is) identificada(s)", a.essential))
	}
	if a.total > 0 {
		pct := float64(a.validated) / float64(a.total) * 100
		out = append(out, fmt.Sprintf("Documentos validados: %.1f%% (%d de %d)", pct, a.validated, a.total))
		out = append(out, fmt.Sprintf("Relevância média dos documentos: %.1f/10", a.averageRelevance()))
	}
	return out
}

func strengthsOf(a *aggregate) []string {
	var out []string
	if n := a.categories[domain.ProofOfficialDocument]; n > 0 {
		out = append(out, fmt.Sprintf("Presença de %d documento(s) oficial(is) com alto valor probatório", n))
	}
	if a.essential > 0 {
		out = append(out, fmt.Sprintf("%d prova(s) essencial(is) presente(s)", a.essential))
	}
	if a.total > 0 && a.validated == a.total {
		out = append(out, "Todos os documentos foram validados")
	}
	if avg := a.averageRelevance(); avg >= 7 {
		out = append(out, fmt.Sprintf("Alta qualidade probatória (relevância média: %.1f/10)", avg))
	}
	if a.has("extrato_bancario") && a.has("holerite") {
		out = append(out, "Documentação financeira completa presente")
	}
	return out
}

func genericWeaknesses(a *aggregate) []string {
	var out []string
	if a.total < 3 {
		out = append(out, fmt.Sprintf("Poucos documentos presentes (%d) - pode ser necessário solicitar mais provas", a.total))
	}
	if a.categories[domain.ProofOfficialDocument] == 0 {
		out = append(out, "Ausência de documentos oficiais - reduz força probatória")
	}
	if n := a.total - a.validated; n > 0 {
		out = append(out, fmt.Sprintf("%d documento(s) ainda não validado(s)", n))
	}
	if avg := a.averageRelevance(); avg < 5 {
		out = append(out, fmt.Sprintf("Baixa qualidade probatória geral (relevância média: %.1f/10)", avg))
	}
	return out
}

func genericAlerts(a *aggregate) []string {
	var out []string
	if a.total == 0 {
		out = append(out, "ALERTA CRÍTICO: Nenhum documento presente no caso")
	}
	if a.total > 0 && a.essential == 0 {
		out = append(out, "ALERTA: Nenhuma prova essencial identificada")
	}
	return out
}

func Render(info domain.CaseInfo, s domain.CaseSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "RESUMO JURÍDICO - CASO %s\n\n", orDefault(info.ID, "N/A"))
	fmt.Fprintf(&b, "Tipo de Ação: %s\n", orDefault(info.ActionType, "Não especificado"))
	fmt.Fprintf(&b, "Status: %s\n", orDefault(info.Status, "Não especificado"))
	fmt.Fprintf(&b, "Descrição: %s\n\n", orDefault(info.Description, "Não fornecida"))

	b.WriteString("PONTOS-CHAVE:\n")
	writeNumbered(&b, s.KeyPoints, "")
	b.WriteString("\nPONTOS FORTES:\n")
	writeNumbered(&b, s.Strengths, "")
	b.WriteString("\nPONTOS FRACOS:\n")
	writeNumbered(&b, s.Weaknesses, "")
	if len(s.Alerts) > 0 {
		b.WriteString("\nALERTAS:\n")
		writeNumbered(&b, s.Alerts, "⚠️ ")
	}
	return b.String()
}

func writeNumbered(b *strings.Builder, items []string, marker string) {
	for i, item := range items {
		fmt.Fprintf(b, "%s%d. %s\n", marker, i+1, item)
	}
}

func orPlaceholder(items []string, placeholder string) []string {
	if len(items) == 0 {
		return []string{placeholder}
	}
	return items
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
