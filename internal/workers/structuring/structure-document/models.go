// internal/workers/structuring/structure-document/models.go
package structuredocument

import "warroom-workers/internal/models"

type Input struct {
	SourceText    string               `json:"sourceText"`
	SourceContext models.SourceContext `json:"sourceContext"`
}

type Output struct {
	Result       models.StructuringResult `json:"result"`
	StructuredAt string                   `json:"structuredAt"` // ISO 8601
}
