// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
)

func LoadRegistry(path string) (*TaskRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg TaskRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// Find returns the registry entry for a task type, or nil.
func (r *TaskRegistry) Find(taskType string) *Task {
	for i := range r.Tasks {
		if r.Tasks[i].TaskType == taskType {
			return &r.Tasks[i]
		}
	}
	return nil
}
