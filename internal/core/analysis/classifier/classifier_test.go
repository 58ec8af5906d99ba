package classifier

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirillkom/legal-case-intel/internal/core/catalog"
	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

type recordingObserver struct {
	mu     sync.Mutex
	stages []string
}

func (r *recordingObserver) ObserveAnalysis(stage string, _ ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, stage)
}

func TestDocumentTypeUsesCatalogOrder(t *testing.T) {
	c := New(catalog.Default())

	tests := []struct {
		name string
		text string
		want domain.DocumentType
	}{
		{name: "earlier rule wins", text: "CONTRATO de locação. CPF do locatário anexo.", want: "cpf"},
		{name: "payroll", text: "Holerite referente a março", want: "holerite"},
		{name: "case insensitive", text: "EXTRATO da conta corrente", want: "extrato_bancario"},
		{name: "no keyword", text: "Texto sem palavras chave", want: domain.GenericDocumentType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.DocumentType(tt.text))
		})
	}
}

func TestMonetaryValuesUseBrazilianConvention(t *testing.T) {
	values := MonetaryValues("Valor: R$ 1.234,56 e multa de R$ 50,00; total 1.234,56 reais")
	require.Len(t, values, 2)
	assert.Equal(t, "1234.56", values[0].StringFixed(2))
	assert.Equal(t, "50.00", values[1].StringFixed(2))

	assert.Empty(t, MonetaryValues("sem valores"))
}

func TestMonetaryValuesAcceptNonBreakingSpaces(t *testing.T) {
	values := MonetaryValues("Valor: R$\u00a01.234,56 e 300\u202freais")
	require.Len(t, values, 2)
	assert.Equal(t, "1234.56", values[0].StringFixed(2))
	assert.Equal(t, "300.00", values[1].StringFixed(2))
}

func TestClassifyFoldsUnicodeSpaces(t *testing.T) {
	c := New(catalog.Default())
	got := c.Classify(domain.RawDocument{Text: "Nota\u00a0fiscal emitida em 5\u00a0de\u00a0março\u00a0de\u00a02024, total R$\u00a0980,00"})

	assert.Equal(t, domain.DocumentType("nota_fiscal"), got.DocumentType)
	require.NotNil(t, got.ExtractedDate)
	assert.Equal(t, "2024-03-05", got.ExtractedDate.String())
	require.Len(t, got.MonetaryValues, 1)
	assert.Equal(t, "980.00", got.MonetaryValues[0].StringFixed(2))
	assert.Contains(t, got.Text, "\u00a0")
}

func TestParseAmount(t *testing.T) {
	v, ok := ParseAmount("1.234.567,89")
	require.True(t, ok)
	assert.Equal(t, "1234567.89", v.StringFixed(2))

	v, ok = ParseAmount("300")
	require.True(t, ok)
	assert.Equal(t, "300.00", v.StringFixed(2))

	_, ok = ParseAmount("abc")
	assert.False(t, ok)
}

func TestClassifyDetectsFlagsAndCounts(t *testing.T) {
	c := New(catalog.Default())
	raw := domain.RawDocument{
		Text:     "CPF: 123.456.789-09\nCNPJ 12.345.678/0001-90\nemail joao@exemplo.com.br tel (11) 98765-4321",
		FileName: "dados.txt",
	}

	got := c.Classify(raw)
	assert.Equal(t, raw, got.RawDocument)
	assert.True(t, got.HasIdentityNumber)
	assert.True(t, got.HasTaxID)
	assert.True(t, got.HasEmail)
	assert.True(t, got.HasPhone)
	assert.Equal(t, 3, got.LineCount)
	assert.Equal(t, 9, got.WordCount)

	plain := c.Classify(domain.RawDocument{Text: "Carta simples sem números"})
	assert.False(t, plain.HasIdentityNumber)
	assert.False(t, plain.HasTaxID)
	assert.False(t, plain.HasEmail)
	assert.False(t, plain.HasPhone)
	assert.Nil(t, plain.ExtractedDate)
}

func TestClassifyExtractsFirstDate(t *testing.T) {
	c := New(catalog.Default())
	got := c.Classify(domain.RawDocument{Text: "Documento emitido em 10/12/2024 e registrado em 2024-12-20"})
	require.NotNil(t, got.ExtractedDate)
	assert.Equal(t, "2024-12-10", got.ExtractedDate.String())
}

func TestClassifyReportsToObserver(t *testing.T) {
	obs := &recordingObserver{}
	c := New(catalog.Default(), WithObserver(obs))
	c.Classify(domain.RawDocument{Text: "boleto"})
	assert.Equal(t, []string{"classify_document"}, obs.stages)
}
