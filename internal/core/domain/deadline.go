package domain

import "cloud.google.com/go/civil"

type DeadlineType string

const (
	DeadlineProcedural     DeadlineType = "procedural"
	DeadlineContractual    DeadlineType = "contractual"
	DeadlineAdministrative DeadlineType = "administrative"
)

type DeadlineOrigin string

const (
	OriginExplicitDate      DeadlineOrigin = "explicit_date"
	OriginProceduralPattern DeadlineOrigin = "procedural_pattern"
	OriginKnownCatalog      DeadlineOrigin = "known_catalog"
	OriginKeywordContext    DeadlineOrigin = "keyword_context"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

type DeadlineStatus string

const (
	DeadlinePending DeadlineStatus = "pending"
	DeadlineOverdue DeadlineStatus = "overdue"
	DeadlineDone    DeadlineStatus = "done"
)

type Deadline struct {
	ID          string         `json:"id,omitempty"`
	DocumentID  string         `json:"document_id,omitempty"`
	Type        DeadlineType   `json:"deadline_type"`
	DueDate     *civil.Date    `json:"due_date,omitempty"`
	Description string         `json:"description"`
	Origin      DeadlineOrigin `json:"origin"`
	Confidence  Confidence     `json:"confidence"`
	DaysCount   *int           `json:"days_count,omitempty"`
	Status      DeadlineStatus `json:"status,omitempty"`
}

// DeadlineView is a deadline annotated for a reader at a given day.
type DeadlineView struct {
	Deadline
	ReminderDate *civil.Date `json:"reminder_date,omitempty"`
	Critical     bool        `json:"critical"`
}
