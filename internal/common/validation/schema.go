// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// structureRequestSchema validates the structure-document job payload before
// the pipeline runs. The pipeline itself accepts any text; this only rejects
// payloads that are structurally broken (missing text field, unknown context
// type), which point at a wiring bug in the calling process.
const structureRequestSchema = `{
  "type": "object",
  "required": ["sourceText", "sourceContext"],
  "properties": {
    "sourceText": { "type": "string" },
    "sourceContext": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "type": { "type": "string", "enum": ["record", "bill", "client", "general"] },
        "id": { "type": "string" },
        "name": { "type": "string" }
      }
    }
  }
}`

// ValidateStructureRequest checks a raw job payload against the request
// schema and returns a single aggregated error.
func ValidateStructureRequest(payload []byte) error {
	return validate(structureRequestSchema, payload)
}

func validate(schema string, payload []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(payload),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid payload: %s", strings.Join(msgs, "; "))
}
