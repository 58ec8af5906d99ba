package domain

import "cloud.google.com/go/civil"

type EventType string

const (
	EventSystem         EventType = "system"
	EventDocumentUpload EventType = "document_upload"
	EventDeadline       EventType = "deadline"
)

type TimelineDocumentInfo struct {
	FileName       string        `json:"file_name"`
	DocumentType   DocumentType  `json:"document_type"`
	Classification ProofCategory `json:"classification,omitempty"`
}

type TimelineEvent struct {
	Label             string                `json:"label"`
	EventDate         civil.Date            `json:"event_date"`
	EventType         EventType             `json:"event_type"`
	Description       string                `json:"description"`
	RelatedDocumentID string                `json:"related_document_id,omitempty"`
	Classification    ProofCategory         `json:"classification,omitempty"`
	Relevance         int                   `json:"relevance,omitempty"`
	DeadlineType      DeadlineType          `json:"deadline_type,omitempty"`
	Status            DeadlineStatus        `json:"status,omitempty"`
	DocumentInfo      *TimelineDocumentInfo `json:"document_info,omitempty"`
	PreviousLabel     string                `json:"previous_label,omitempty"`
	DaysFromPrevious  *int                  `json:"days_from_previous,omitempty"`
	NextLabel         string                `json:"next_label,omitempty"`
	DaysToNext        *int                  `json:"days_to_next,omitempty"`
}

type TimelinePeriod struct {
	Start civil.Date `json:"start"`
	End   civil.Date `json:"end"`
	Days  int        `json:"days"`
}

type TimelineSummary struct {
	TotalEvents      int               `json:"total_events"`
	Period           *TimelinePeriod   `json:"period,omitempty"`
	EventsByType     map[EventType]int `json:"events_by_type"`
	DocumentsByMonth map[string]int    `json:"documents_by_month"`
	CriticalEvents   []TimelineEvent   `json:"critical_events"`
}

type CaseTimeline struct {
	CaseID  string          `json:"case_id"`
	Events  []TimelineEvent `json:"events"`
	Summary TimelineSummary `json:"summary"`
}
