package catalog

import "github.com/kirillkom/legal-case-intel/internal/core/domain"

// Default builds a fresh catalog with the built-in Brazilian legal tables.
func Default() *Catalog {
	return &Catalog{
		documentTypes:    defaultDocumentTypes(),
		categories:       defaultCategories(),
		otherCategory:    CategoryRule{Category: domain.ProofOther, BaseRelevance: 4, Description: "Documento genérico"},
		essentialTypes:   []string{"cpf", "cnpj", "rg", "certidao", "contrato", "holerite", "extrato_bancario", "irpf", "carteira_trabalho"},
		proceduralTerms:  defaultProceduralTerms(),
		deadlineKeywords: defaultDeadlineKeywords(),
		templates:        defaultTemplates(),
		mappings:         defaultMappings(),
		genericTemplate: domain.ChecklistTemplate{
			Required:     []string{"CPF/CNPJ", "RG", "Comprovante de residência", "Documentos relacionados ao caso"},
			Recommended:  []string{"Comprovantes de pagamento", "Comunicações", "Contratos relacionados"},
			AutoValidate: true,
		},
	}
}

func defaultDocumentTypes() []DocumentTypeRule {
	return []DocumentTypeRule{
		{Type: "cpf", Keywords: []string{"cpf", "cadastro", "pessoa física"}},
		{Type: "cnpj", Keywords: []string{"cnpj", "cadastro nacional", "pessoa jurídica"}},
		{Type: "rg", Keywords: []string{"rg", "registro geral", "identidade"}},
		{Type: "contrato", Keywords: []string{"contrato", "termo", "acordo"}},
		{Type: "holerite", Keywords: []string{"holerite", "contracheque", "recibo de pagamento"}},
		{Type: "extrato_bancario", Keywords: []string{"extrato", "banco", "movimentação"}},
		{Type: "nota_fiscal", Keywords: []string{"nota fiscal", "nf", "nfe"}},
		{Type: "boleto", Keywords: []string{"boleto", "cobrança", "pagamento"}},
		{Type: "certidao", Keywords: []string{"certidão", "certidão de nascimento", "certidão de casamento"}},
		{Type: "irpf", Keywords: []string{"irpf", "imposto de renda", "declaração"}},
		{Type: "carteira_trabalho", Keywords: []string{"ctps", "carteira de trabalho"}},
		{Type: "email", Keywords: []string{"email", "e-mail", "mensagem"}},
		{Type: "protocolo", Keywords: []string{"protocolo", "número de protocolo"}},
		{Type: "comprovante", Keywords: []string{"comprovante", "recibo", "comprovante de pagamento"}},
	}
}

func defaultCategories() []CategoryRule {
	return []CategoryRule{
		{
			Category: domain.ProofOfficialDocument,
			Markers: []string{
				"cpf", "cnpj", "rg", "certidao", "contrato", "irpf", "carteira_trabalho",
				"atestado", "laudo", "decisao", "sentenca", "peticao", "intimacao",
			},
			BaseRelevance: 8,
			Boost:         Boost{TypeMarkers: []string{"cpf", "cnpj", "rg", "certidao"}, Relevance: 10},
			Description:   "Documento oficial com alto valor probatório",
		},
		{
			Category: domain.ProofFinancial,
			Markers: []string{
				"holerite", "extrato_bancario", "nota_fiscal", "boleto", "comprovante", "recibo", "fatura", "conta",
			},
			BaseRelevance: 7,
			Boost:         Boost{TypeMarkers: []string{"extrato", "holerite", "irpf"}, Relevance: 9},
			Description:   "Comprovante financeiro relevante para o caso",
		},
		{
			Category: domain.ProofCommunication,
			Markers: []string{
				"email", "whatsapp", "mensagem", "chat", "correspondencia", "carta", "oficio", "comunicacao",
			},
			BaseRelevance: 5,
			Boost:         Boost{TextMarkers: []string{"oficio", "oficial"}, Relevance: 7},
			Description:   "Comunicação que pode servir como prova",
		},
		{
			Category: domain.ProofTechnical,
			Markers: []string{
				"laudo", "pericia", "exame", "analise", "relatorio_tecnico", "vistoria", "inspecao",
			},
			MatchText:     true,
			BaseRelevance: 9,
			Description:   "Prova técnica com alto valor probatório",
		},
	}
}

func defaultProceduralTerms() []ProceduralTerm {
	return []ProceduralTerm{
		{Name: "contestação", Days: 15},
		{Name: "recurso", Days: 15},
		{Name: "agravo", Days: 15},
		{Name: "embargos", Days: 15},
		{Name: "apelação", Days: 15},
		{Name: "resposta", Days: 15},
		{Name: "manifestação", Days: 5},
		{Name: "impugnação", Days: 5},
		{Name: "intimação", Days: 3},
		{Name: "citação", Days: 15},
		{Name: "sentença", Days: 30},
		{Name: "recurso especial", Days: 15},
		{Name: "recurso extraordinário", Days: 15},
	}
}

func defaultDeadlineKeywords() []string {
	return []string{
		"prazo", "vencimento", "vencer", "expirar", "expiração",
		"limite", "até", "dentro de", "no prazo de", "no período de",
		"deadline", "due date", "data limite",
	}
}

// defaultMappings order matters: unqualified divórcio resolves to the contested template.
func defaultMappings() []ActionMapping {
	return []ActionMapping{
		{Substring: "gratuidade", Key: "gratuidade_justica"},
		{Substring: "gratuidade de justiça", Key: "gratuidade_justica"},
		{Substring: "consumidor", Key: "relacao_consumo"},
		{Substring: "relação de consumo", Key: "relacao_consumo"},
		{Substring: "companhia aérea", Key: "acao_companhia_aerea"},
		{Substring: "aérea", Key: "acao_companhia_aerea"},
		{Substring: "cobrança indevida", Key: "cobranca_indevida"},
		{Substring: "cobranca indevida", Key: "cobranca_indevida"},
		{Substring: "negativação", Key: "negativacao_indevida"},
		{Substring: "negativacao", Key: "negativacao_indevida"},
		{Substring: "pensão", Key: "pensao_alimenticia"},
		{Substring: "pensao", Key: "pensao_alimenticia"},
		{Substring: "alimentícia", Key: "pensao_alimenticia"},
		{Substring: "alimenticia", Key: "pensao_alimenticia"},
		{Substring: "divórcio", Key: "divorcio_litigioso"},
		{Substring: "divorcio", Key: "divorcio_litigioso"},
		{Substring: "guarda", Key: "guarda"},
		{Substring: "rescisão", Key: "rescisao_indireta"},
		{Substring: "rescisao", Key: "rescisao_indireta"},
		{Substring: "horas extras", Key: "horas_extras"},
		{Substring: "horas extra", Key: "horas_extras"},
		{Substring: "descumprimento", Key: "descumprimento_contratual"},
		{Substring: "contratual", Key: "descumprimento_contratual"},
		{Substring: "cobrança empresarial", Key: "cobranca_empresarial"},
		{Substring: "cobranca empresarial", Key: "cobranca_empresarial"},
	}
}

func defaultTemplates() map[string]domain.ChecklistTemplate {
	tpl := func(required, recommended []string) domain.ChecklistTemplate {
		return domain.ChecklistTemplate{Required: required, Recommended: recommended, AutoValidate: true}
	}
	return map[string]domain.ChecklistTemplate{
		"gratuidade_justica": tpl(
			[]string{"IRPF", "Contracheque", "Extrato bancário (últimos 3 meses)", "Carteira de trabalho"},
			[]string{"Comprovante de residência", "Comprovante de despesas", "Atestado médico (se aplicável)"},
		),
		"relacao_consumo": tpl(
			[]string{"Comprovante de compra", "Comprovante de pagamento", "Contrato (se houver)", "Comunicação com fornecedor"},
			[]string{"Nota fiscal", "Fotos do produto/serviço", "Histórico de comunicação"},
		),
		"acao_companhia_aerea": tpl(
			[]string{"Comprovante de compra", "Comprovante de pagamento", "E-mails da companhia", "Prints de cancelamento", "Protocolos"},
			[]string{"Comprovante de bagagem extraviada", "Fotos de danos", "Comunicação com atendimento"},
		),
		"cobranca_indevida": tpl(
			[]string{"Faturas", "Comprovantes de pagamento", "Contrato (se houver)", "Histórico de comunicação"},
			[]string{"Extrato bancário", "Comprovantes de cancelamento", "Comunicação prévia"},
		),
		"negativacao_indevida": tpl(
			[]string{"Consulta SPC/Serasa", "Comprovantes de pagamento", "Comunicação prévia"},
			[]string{"Extrato bancário", "Comprovante de quitação", "Histórico de relacionamento"},
		),
		"pensao_alimenticia": tpl(
			[]string{"Certidão de nascimento", "Comprovantes de renda", "Despesas do menor"},
			[]string{"Extrato bancário", "Comprovante de despesas escolares", "Comprovante de despesas médicas"},
		),
		"divorcio_consensual": tpl(
			[]string{"Certidão de casamento", "CPF de ambos", "RG de ambos", "Comprovante de residência"},
			[]string{"Acordo de divórcio", "Comprovante de renda"},
		),
		"divorcio_litigioso": tpl(
			[]string{
				"Certidão de casamento", "CPF de ambos", "RG de ambos", "Comprovante de residência",
				"Comprovantes de renda", "Documentos de bens", "Documentos de dívidas",
			},
			[]string{"Extrato bancário", "Comprovante de imóveis", "Comprovante de veículos"},
		),
		"guarda": tpl(
			[]string{"Certidão de nascimento", "Provas de vínculo", "Histórico escolar"},
			[]string{"Relatórios médicos", "Fotos", "Comprovante de residência"},
		),
		"rescisao_indireta": tpl(
			[]string{"Contrato de trabalho", "Holerites", "Extrato FGTS", "Provas da falta grave"},
			[]string{"Comunicação com empresa", "Testemunhas", "Comprovantes de irregularidades"},
		),
		"horas_extras": tpl(
			[]string{"Cartões de ponto", "Contracheques", "Escalas"},
			[]string{"Contrato de trabalho", "Comunicação sobre horas extras", "Comprovantes de pagamento"},
		),
		"descumprimento_contratual": tpl(
			[]string{"Contrato", "Aditivos", "Provas de descumprimento", "Comunicações"},
			[]string{"Notas fiscais", "Comprovantes de pagamento", "Correspondências"},
		),
		"cobranca_empresarial": tpl(
			[]string{"Notas fiscais", "Boletos", "Comprovantes"},
			[]string{"Contrato", "Histórico de relacionamento", "Comunicações"},
		),
	}
}
