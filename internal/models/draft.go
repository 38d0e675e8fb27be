// internal/models/draft.go
package models

// DraftType identifies the kind of follow-up communication draft.
type DraftType string

const (
	DraftEmail        DraftType = "email"
	DraftClientUpdate DraftType = "client-update"
	DraftStatusUpdate DraftType = "status-update"
)

// FollowUpDraft is fully rendered communication text. Content needs no further
// templating downstream.
type FollowUpDraft struct {
	Type    DraftType `json:"type"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
}
