package domain

type ChecklistTemplate struct {
	Required     []string `json:"required" yaml:"required"`
	Recommended  []string `json:"recommended" yaml:"recommended"`
	AutoValidate bool     `json:"auto_validate" yaml:"auto_validate"`
}

// Clone returns a deep copy so overlays never touch shared catalog slices.
func (t ChecklistTemplate) Clone() ChecklistTemplate {
	return ChecklistTemplate{
		Required:     append([]string(nil), t.Required...),
		Recommended:  append([]string(nil), t.Recommended...),
		AutoValidate: t.AutoValidate,
	}
}

type ChecklistVariations struct {
	Consensual       bool     `json:"consensual"`
	ExtraRecommended []string `json:"extra_recommended,omitempty"`
}

type Checklist struct {
	CaseID           string   `json:"case_id,omitempty"`
	ActionType       string   `json:"action_type"`
	NormalizedType   string   `json:"normalized_type"`
	Required         []string `json:"required"`
	Recommended      []string `json:"recommended"`
	AutoValidate     bool     `json:"auto_validate"`
	RequiredTotal    int      `json:"required_total"`
	RecommendedTotal int      `json:"recommended_total"`
}

type CompletionStatus string

const (
	CompletionComplete       CompletionStatus = "complete"
	CompletionNearComplete   CompletionStatus = "near_complete"
	CompletionIncomplete     CompletionStatus = "incomplete"
	CompletionVeryIncomplete CompletionStatus = "very_incomplete"
)

type ChecklistResult struct {
	RequiredPresent    []string         `json:"required_present"`
	RequiredMissing    []string         `json:"required_missing"`
	RecommendedPresent []string         `json:"recommended_present"`
	Status             CompletionStatus `json:"completion_status"`
	Percent            float64          `json:"completion_percent"`
	RequiredTotal      int              `json:"required_total"`
	PresentTotal       int              `json:"present_total"`
	MissingTotal       int              `json:"missing_total"`
	IsComplete         bool             `json:"is_complete"`
}

// CaseChecklist bundles a checklist, its validation and suggestions for one case.
type CaseChecklist struct {
	Checklist   Checklist       `json:"checklist"`
	Validation  ChecklistResult `json:"validation"`
	Suggestions []string        `json:"suggestions"`
}
