package checklist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirillkom/legal-case-intel/internal/core/catalog"
	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

type exactMatcher struct{}

func (exactMatcher) Matches(item, received string) bool {
	return strings.EqualFold(item, received)
}

func TestNormalize(t *testing.T) {
	g := New(catalog.Default())

	tests := map[string]string{
		"Gratuidade de Justiça":     "gratuidade_justica",
		"Divórcio":                  "divorcio_litigioso",
		"Ação de Cobrança Indevida": "cobranca_indevida",
		"Horas Extras não pagas":    "horas_extras",
		"Ação de Usucapião":         "acao_de_usucapiao",
	}
	for input, want := range tests {
		assert.Equal(t, want, g.Normalize(input), input)
	}
}

func TestGenerateResolvesTemplate(t *testing.T) {
	g := New(catalog.Default())

	got := g.Generate("Gratuidade de Justiça", domain.ChecklistVariations{})
	assert.Equal(t, "Gratuidade de Justiça", got.ActionType)
	assert.Equal(t, "gratuidade_justica", got.NormalizedType)
	assert.Equal(t, []string{"IRPF", "Contracheque", "Extrato bancário (últimos 3 meses)", "Carteira de trabalho"}, got.Required)
	assert.Equal(t, 4, got.RequiredTotal)
	assert.Equal(t, 3, got.RecommendedTotal)
	assert.True(t, got.AutoValidate)
}

func TestGenerateFallsBackToGenericTemplate(t *testing.T) {
	got := New(catalog.Default()).Generate("Ação de Usucapião", domain.ChecklistVariations{})
	assert.Equal(t, "acao_de_usucapiao", got.NormalizedType)
	assert.Equal(t, []string{"CPF/CNPJ", "RG", "Comprovante de residência", "Documentos relacionados ao caso"}, got.Required)
}

func TestGenerateConsensualVariation(t *testing.T) {
	g := New(catalog.Default())

	got := g.Generate("Divórcio", domain.ChecklistVariations{Consensual: true})
	assert.Equal(t, "divorcio_consensual", got.NormalizedType)
	assert.Equal(t, 4, got.RequiredTotal)
	assert.Contains(t, got.Recommended, "Acordo de divórcio")

	other := g.Generate("Guarda", domain.ChecklistVariations{Consensual: true})
	assert.Equal(t, "guarda", other.NormalizedType)
}

func TestGenerateExtraItemsDoNotLeakIntoCatalog(t *testing.T) {
	g := New(catalog.Default())

	got := g.Generate("Guarda", domain.ChecklistVariations{ExtraRecommended: []string{"Laudo psicológico", "  "}})
	assert.Equal(t, []string{"Relatórios médicos", "Fotos", "Comprovante de residência", "Laudo psicológico"}, got.Recommended)
	assert.Equal(t, 4, got.RecommendedTotal)

	again := g.Generate("Guarda", domain.ChecklistVariations{})
	assert.Len(t, again.Recommended, 3)
}

func TestValidate(t *testing.T) {
	g := New(catalog.Default())
	gratuity := g.Generate("Gratuidade de Justiça", domain.ChecklistVariations{})

	tests := []struct {
		name        string
		checklist   domain.Checklist
		received    []string
		wantStatus  domain.CompletionStatus
		wantPercent float64
		wantMissing []string
	}{
		{
			name:        "half of the income proof",
			checklist:   gratuity,
			received:    []string{"irpf", "contracheque"},
			wantStatus:  domain.CompletionIncomplete,
			wantPercent: 50,
			wantMissing: []string{"Extrato bancário (últimos 3 meses)", "Carteira de trabalho"},
		},
		{
			name:        "no income proof",
			checklist:   gratuity,
			received:    []string{"rg"},
			wantStatus:  domain.CompletionVeryIncomplete,
			wantPercent: 0,
			wantMissing: gratuity.Required,
		},
		{
			name:        "complete",
			checklist:   g.Generate("Guarda", domain.ChecklistVariations{}),
			received:    []string{"Certidão de nascimento", "provas de vínculo", "histórico escolar"},
			wantStatus:  domain.CompletionComplete,
			wantPercent: 100,
			wantMissing: []string{},
		},
		{
			name:        "rounded to two decimals",
			checklist:   g.Generate("Horas extras", domain.ChecklistVariations{}),
			received:    []string{"contracheques", "escalas"},
			wantStatus:  domain.CompletionIncomplete,
			wantPercent: 66.67,
			wantMissing: []string{"Cartões de ponto"},
		},
		{
			name:        "blank labels never match",
			checklist:   g.Generate("Guarda", domain.ChecklistVariations{}),
			received:    []string{"", "   "},
			wantStatus:  domain.CompletionVeryIncomplete,
			wantPercent: 0,
			wantMissing: []string{"Certidão de nascimento", "Provas de vínculo", "Histórico escolar"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Validate(tt.checklist, tt.received)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.InDelta(t, tt.wantPercent, got.Percent, 0.001)
			assert.Equal(t, tt.wantMissing, got.RequiredMissing)
			assert.Equal(t, got.RequiredTotal, got.PresentTotal+got.MissingTotal)
			assert.Equal(t, tt.wantStatus == domain.CompletionComplete, got.IsComplete)
		})
	}
}

func TestValidateWithConfiguredThresholds(t *testing.T) {
	g := New(catalog.Default(), WithThresholds(Thresholds{NearComplete: 60, Incomplete: 30}))
	got := g.Validate(g.Generate("Horas extras", domain.ChecklistVariations{}), []string{"contracheques", "escalas"})
	assert.Equal(t, domain.CompletionNearComplete, got.Status)
}

func TestValidateWithCustomMatcher(t *testing.T) {
	g := New(catalog.Default(), WithMatcher(exactMatcher{}))
	got := g.Validate(g.Generate("Horas extras", domain.ChecklistVariations{}), []string{"contracheque", "Escalas"})
	assert.Equal(t, []string{"Escalas"}, got.RequiredPresent)
}

func TestCompletionPercentProperties(t *testing.T) {
	cat := catalog.Default()
	g := New(cat)

	for _, key := range cat.TemplateKeys() {
		tpl, ok := cat.Template(key)
		require.True(t, ok)
		checklist := domain.Checklist{NormalizedType: key, Required: tpl.Required, Recommended: tpl.Recommended}
		for k := 0; k <= len(tpl.Required); k++ {
			got := g.Validate(checklist, tpl.Required[:k])
			assert.GreaterOrEqual(t, got.Percent, 0.0)
			assert.LessOrEqual(t, got.Percent, 100.0)
			assert.Equal(t, got.Percent == 100, got.Status == domain.CompletionComplete, "%s with %d items", key, k)
		}
	}
}

func TestSuggestAdditional(t *testing.T) {
	g := New(catalog.Default())

	assert.Equal(t, []string{"Holerites dos últimos 12 meses"}, g.SuggestAdditional("Reclamação Trabalhista", []string{"contrato"}))
	assert.Equal(t, []string{"Nota fiscal", "E-mails de comunicação"}, g.SuggestAdditional("Direito do Consumidor", nil))
	assert.Empty(t, g.SuggestAdditional("Guarda", nil))
}

func TestContainmentMatcher(t *testing.T) {
	m := ContainmentMatcher{}
	assert.True(t, m.Matches("Extrato bancário (últimos 3 meses)", "extrato bancário"))
	assert.True(t, m.Matches("RG", "rg de ambos"))
	assert.False(t, m.Matches("RG", ""))
	assert.False(t, m.Matches("IRPF", "holerite"))
}
