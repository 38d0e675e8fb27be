// internal/models/result.go
package models

// ContextType says what kind of record the source text was captured against.
type ContextType string

const (
	ContextRecord  ContextType = "record"
	ContextBill    ContextType = "bill"
	ContextClient  ContextType = "client"
	ContextGeneral ContextType = "general"
)

// SourceContext describes where the source text came from.
type SourceContext struct {
	Type ContextType `json:"type"`
	ID   string      `json:"id,omitempty"`
	Name string      `json:"name,omitempty"`
}

// StructuredSummary is the prioritized bullet summary plus the full,
// unfiltered entity list the bullets were derived from.
type StructuredSummary struct {
	Bullets  []string         `json:"bullets"`
	Entities []DetectedEntity `json:"entities"`
}

// StructuringResult aggregates everything one pipeline run produces. It is
// immutable once returned; callers clone ActionItems if they need an editable
// list.
type StructuringResult struct {
	Summary        StructuredSummary `json:"summary"`
	ActionItems    []ActionItem      `json:"actionItems"`
	TaskBundle     TaskBundle        `json:"taskBundle"`
	FollowUpDrafts []FollowUpDraft   `json:"followUpDrafts"`
}
