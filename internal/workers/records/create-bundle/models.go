// internal/workers/records/create-bundle/models.go
package createbundle

import "warroom-workers/internal/models"

type Input struct {
	SourceContext models.SourceContext `json:"sourceContext"`
	TaskBundle    models.TaskBundle    `json:"taskBundle"`
}

type Output struct {
	BundleID  string `json:"bundleId"`
	TaskCount int    `json:"taskCount"`
	Indexed   bool   `json:"indexed"`
	CreatedAt string `json:"createdAt"` // ISO 8601
}

// bundleDocument is the denormalized shape indexed for search.
type bundleDocument struct {
	BundleID    string               `json:"bundleId"`
	Name        string               `json:"name"`
	ContextType string               `json:"contextType"`
	ContextID   string               `json:"contextId,omitempty"`
	Sections    []string             `json:"sections"`
	Tasks       []bundleDocumentTask `json:"tasks"`
	CreatedAt   string               `json:"createdAt"`
}

type bundleDocumentTask struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Owner   string `json:"owner"`
	DueDate string `json:"dueDate"`
	Section string `json:"section"`
}
