// internal/models/action_item.go
package models

// Priority levels for action items and bundle tasks.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ActionItem is a single user-facing suggested task derived from the source
// text. The pipeline generates it once; afterwards the caller owns an editable
// copy (Text and Selected are the mutable fields).
type ActionItem struct {
	ID               string      `json:"id"`
	Text             string      `json:"text"`
	Priority         Priority    `json:"priority"`
	SuggestedOwner   string      `json:"suggestedOwner"`
	SuggestedDueDate string      `json:"suggestedDueDate"` // YYYY-MM-DD
	LinkedObjects    []EntityRef `json:"linkedObjects"`
	Selected         bool        `json:"selected"`
}
