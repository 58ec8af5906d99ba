package domain

import "time"

type SummaryStats struct {
	TotalDocuments     int     `json:"total_documents"`
	ValidatedDocuments int     `json:"validated_documents"`
	EssentialDocuments int     `json:"essential_documents"`
	AverageRelevance   float64 `json:"average_relevance"`
}

type CaseSummary struct {
	CaseID        string       `json:"case_id"`
	KeyPoints     []string     `json:"key_points"`
	Strengths     []string     `json:"strengths"`
	Weaknesses    []string     `json:"weaknesses"`
	Alerts        []string     `json:"alerts"`
	Stats         SummaryStats `json:"stats"`
	NarrativeText string       `json:"narrative_text"`
	GeneratedAt   time.Time    `json:"generated_at"`
}
