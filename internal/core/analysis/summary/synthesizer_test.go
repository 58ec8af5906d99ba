package summary

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

var generatedAt = time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)

func newSynthesizer() *Synthesizer {
	return New(WithNow(func() time.Time { return generatedAt }))
}

func assessed(docType domain.DocumentType, category domain.ProofCategory, relevance int, essential, validated bool) domain.CaseDocument {
	return domain.CaseDocument{
		Classified: domain.ClassifiedDocument{DocumentType: docType},
		Assessment: &domain.ProofAssessment{Category: category, Relevance: relevance, IsEssential: essential},
		Validated:  validated,
	}
}

func TestSummarizeWithoutDocuments(t *testing.T) {
	got := newSynthesizer().Summarize(domain.CaseInfo{ID: "c1", ActionType: "Ação Cível"}, nil)

	assert.Contains(t, got.Alerts, "ALERTA CRÍTICO: Nenhum documento presente no caso")
	assert.Zero(t, got.Stats.AverageRelevance)
	assert.Zero(t, got.Stats.TotalDocuments)
	assert.Equal(t, []string{noStrengths}, got.Strengths)
	assert.Equal(t, []string{
		"Poucos documentos presentes (0) - pode ser necessário solicitar mais provas",
		"Ausência de documentos oficiais - reduz força probatória",
		"Baixa qualidade probatória geral (relevância média: 0.0/10)",
	}, got.Weaknesses)
	assert.NotNil(t, got.KeyPoints)
	assert.Contains(t, got.NarrativeText, "⚠️ 1. ALERTA CRÍTICO: Nenhum documento presente no caso\n")
	assert.Equal(t, generatedAt, got.GeneratedAt)
}

func TestSummarizeGratuityWithoutIncomeProof(t *testing.T) {
	docs := []domain.CaseDocument{assessed("cpf", domain.ProofOfficialDocument, 10, true, true)}

	got := newSynthesizer().Summarize(domain.CaseInfo{ID: "c2", ActionType: "Gratuidade de Justiça"}, docs)

	assert.Equal(t, "Caso de gratuidade de justiça - requer comprovação de hipossuficiência", got.KeyPoints[0])
	assert.Equal(t, "ATENÇÃO: Documentos de renda podem estar faltando", got.KeyPoints[1])
	assert.Contains(t, got.Weaknesses, "Falta documentação de renda para gratuidade de justiça")
	assert.Equal(t, []string{
		"ALERTA: IRPF não encontrado - necessário para gratuidade de justiça",
		"ALERTA: Extrato bancário não encontrado - recomendado para gratuidade",
	}, got.Alerts)
}

func TestSummarizeRendersNarrative(t *testing.T) {
	info := domain.CaseInfo{ID: "123", ActionType: "Gratuidade de Justiça", Status: "em_triagem", Description: "Solicitação de gratuidade de justiça"}
	docs := []domain.CaseDocument{
		assessed("cpf", domain.ProofOfficialDocument, 10, true, true),
		assessed("irpf", domain.ProofOfficialDocument, 9, true, true),
	}

	got := newSynthesizer().Summarize(info, docs)

	want := "RESUMO JURÍDICO - CASO 123\n\n" +
		"Tipo de Ação: Gratuidade de Justiça\n" +
		"Status: em_triagem\n" +
		"Descrição: Solicitação de gratuidade de justiça\n\n" +
		"PONTOS-CHAVE:\n" +
		"1. Caso de gratuidade de justiça - requer comprovação de hipossuficiência\n" +
		"2. Documentos de renda presentes\n" +
		"3. 2 documento(s) oficial(is) presente(s)\n" +
		"4. 2 prova(s) essencial(is) identificada(s)\n" +
		"5. Documentos validados: 100.0% (2 de 2)\n" +
		"6. Relevância média dos documentos: 9.5/10\n" +
		"\nPONTOS FORTES:\n" +
		"1. Presença de 2 documento(s) oficial(is) com alto valor probatório\n" +
		"2. 2 prova(s) essencial(is) presente(s)\n" +
		"3. Todos os documentos foram validados\n" +
		"4. Alta qualidade probatória (relevância média: 9.5/10)\n" +
		"\nPONTOS FRACOS:\n" +
		"1. Poucos documentos presentes (2) - pode ser necessário solicitar mais provas\n" +
		"\nALERTAS:\n" +
		"⚠️ 1. ALERTA: Extrato bancário não encontrado - recomendado para gratuidade\n"
	assert.Equal(t, want, got.NarrativeText)
	assert.Equal(t, domain.SummaryStats{TotalDocuments: 2, ValidatedDocuments: 2, EssentialDocuments: 2, AverageRelevance: 9.5}, got.Stats)
}

func TestSummarizeRulesAreIndependent(t *testing.T) {
	holerite := assessed("holerite", domain.ProofFinancial, 9, true, false)
	holerite.Classified.MonetaryValues = []decimal.Decimal{decimal.RequireFromString("1234.56")}
	boleto := assessed("boleto", domain.ProofFinancial, 7, false, false)
	boleto.Classified.MonetaryValues = []decimal.Decimal{decimal.NewFromInt(100)}

	got := newSynthesizer().Summarize(domain.CaseInfo{ActionType: "Pensão alimentícia com reflexo trabalhista"}, []domain.CaseDocument{holerite, boleto})

	assert.Contains(t, got.KeyPoints, "Caso de pensão alimentícia - requer comprovação de renda e despesas")
	assert.Contains(t, got.KeyPoints, "Valores identificados nos documentos: R$ 1.334,56")
	assert.Contains(t, got.KeyPoints, "Caso trabalhista - requer documentação de vínculo empregatício")
	assert.Contains(t, got.KeyPoints, "Documentação trabalhista presente")
	assert.Contains(t, got.KeyPoints, "2 comprovante(s) financeiro(s) presente(s)")
	assert.Equal(t, []string{
		"ALERTA: Certidão de nascimento não encontrada",
		"ALERTA: Contrato de trabalho não encontrado - documento essencial",
	}, got.Alerts)
	assert.Contains(t, got.Weaknesses, "2 documento(s) ainda não validado(s)")
}

func TestAverageRelevanceDefaultsWhenUnscored(t *testing.T) {
	docs := []domain.CaseDocument{{Classified: domain.ClassifiedDocument{DocumentType: domain.GenericDocumentType}}}

	got := newSynthesizer().Summarize(domain.CaseInfo{}, docs)

	assert.InDelta(t, 5.0, got.Stats.AverageRelevance, 0.0001)
	assert.NotContains(t, got.Weaknesses, "Baixa qualidade probatória geral (relevância média: 5.0/10)")
	assert.Contains(t, got.Alerts, "ALERTA: Nenhuma prova essencial identificada")
	assert.Contains(t, got.NarrativeText, "RESUMO JURÍDICO - CASO N/A\n\nTipo de Ação: Não especificado\nStatus: Não especificado\nDescrição: Não fornecida\n")
}

func TestSummarizeDocumentedPeriod(t *testing.T) {
	first := civil.Date{Year: 2024, Month: time.March, Day: 1}
	second := civil.Date{Year: 2024, Month: time.January, Day: 15}
	docs := []domain.CaseDocument{
		{Classified: domain.ClassifiedDocument{DocumentType: "email", ExtractedDate: &first}},
		{Classified: domain.ClassifiedDocument{DocumentType: "email", ExtractedDate: &second}},
	}

	got := newSynthesizer().Summarize(domain.CaseInfo{}, docs)

	assert.Contains(t, got.KeyPoints, "Período documentado: 2024-01-15 a 2024-03-01")
}

func TestStrengthsAndWeaknessesNeverEmpty(t *testing.T) {
	docs := []domain.CaseDocument{
		assessed("contrato", domain.ProofOfficialDocument, 6, false, true),
		assessed("email", domain.ProofCommunication, 5, false, true),
		assessed("email", domain.ProofCommunication, 5, false, true),
	}

	got := newSynthesizer().Summarize(domain.CaseInfo{ActionType: "Guarda"}, docs)

	require.NotEmpty(t, got.Strengths)
	require.NotEmpty(t, got.Weaknesses)
	assert.Equal(t, []string{noWeaknesses}, got.Weaknesses)
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "1.234.567,80", formatBRL(decimal.RequireFromString("1234567.8")))
	assert.Equal(t, "0,50", formatBRL(decimal.RequireFromString("0.5")))
	assert.Equal(t, "999,00", formatBRL(decimal.NewFromInt(999)))
}
