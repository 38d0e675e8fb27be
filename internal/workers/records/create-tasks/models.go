// internal/workers/records/create-tasks/models.go
package createtasks

import "warroom-workers/internal/models"

type Input struct {
	SourceContext models.SourceContext `json:"sourceContext"`
	ActionItems   []models.ActionItem  `json:"actionItems"`
}

type Output struct {
	TaskIDs      []string `json:"taskIds"`
	CreatedCount int      `json:"createdCount"`
	SkippedCount int      `json:"skippedCount"`
	CreatedAt    string   `json:"createdAt"` // ISO 8601
}
