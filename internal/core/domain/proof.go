package domain

type ProofCategory string

const (
	ProofOfficialDocument ProofCategory = "official_document"
	ProofFinancial        ProofCategory = "financial_proof"
	ProofCommunication    ProofCategory = "communication"
	ProofTechnical        ProofCategory = "technical_proof"
	ProofOther            ProofCategory = "other"
)

const (
	MinRelevance = 1
	MaxRelevance = 10
)

type ProofAssessment struct {
	Category      ProofCategory `json:"proof_category"`
	Relevance     int           `json:"relevance"`
	IsEssential   bool          `json:"is_essential"`
	Justification string        `json:"justification"`
}
