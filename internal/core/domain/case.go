package domain

import "time"

type Case struct {
	ID          string    `json:"id"`
	ActionType  string    `json:"action_type"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c Case) Info() CaseInfo {
	return CaseInfo{
		ID:          c.ID,
		ActionType:  c.ActionType,
		Status:      c.Status,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CaseInfo is the case header consumed by the summary and timeline analyzers.
type CaseInfo struct {
	ID          string `json:"id"`
	ActionType  string `json:"action_type"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
	// CreatedAt accepts any literal the timeline date chain understands.
	CreatedAt string `json:"created_at,omitempty"`
}

const DefaultCaseStatus = "triage"
