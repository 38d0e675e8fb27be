// internal/models/bundle.go
package models

// TaskBundle is a named, sectioned work plan ready to be created as records.
type TaskBundle struct {
	Name     string          `json:"name"`
	Sections []BundleSection `json:"sections"`
}

// BundleSection groups related tasks under a fixed heading.
type BundleSection struct {
	Name  string       `json:"name"`
	Tasks []BundleTask `json:"tasks"`
}

// BundleTask is one task inside a bundle. Dependency, when set, names another
// task ID in the same bundle (a predecessor hint, not a scheduled constraint).
type BundleTask struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Owner        string     `json:"owner"`
	DueDate      string     `json:"dueDate"` // YYYY-MM-DD
	Dependency   string     `json:"dependency,omitempty"`
	LinkedObject *EntityRef `json:"linkedObject,omitempty"`
}
