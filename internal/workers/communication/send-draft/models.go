// internal/workers/communication/send-draft/models.go
package senddraft

import "warroom-workers/internal/models"

type Recipient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type Input struct {
	Draft     models.FollowUpDraft `json:"draft"`
	Recipient Recipient            `json:"recipient"`
	Priority  models.Priority      `json:"priority,omitempty"`
}

type Output struct {
	MessageID string `json:"messageId"`
	SMSSent   bool   `json:"smsSent"`
	SentAt    string `json:"sentAt"` // ISO 8601
}
