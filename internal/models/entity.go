// internal/models/entity.go
package models

// EntityType identifies the family a detected entity belongs to.
type EntityType string

const (
	EntityBill       EntityType = "bill"
	EntityLegislator EntityType = "legislator"
	EntityClient     EntityType = "client"
	EntityCommittee  EntityType = "committee"
	EntityProject    EntityType = "project"
)

// Span marks the character range of a match in the original source text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// DetectedEntity is a domain object recognized inside free text. The ID is a
// pure function of the matched substring and family, so the same mention
// always produces the same ID. Duplicate mentions produce duplicate entries;
// callers that need uniqueness dedupe by ID themselves.
type DetectedEntity struct {
	Type EntityType `json:"type"`
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Span Span       `json:"span"`
}

// EntityRef is a lookup key pointing back at a detected entity. It carries no
// ownership; it exists so action items and bundle tasks can reference entities
// without an identity-resolution step.
type EntityRef struct {
	Type EntityType `json:"type"`
	ID   string     `json:"id"`
	Name string     `json:"name"`
}

// Ref returns the lookup key for e.
func (e DetectedEntity) Ref() EntityRef {
	return EntityRef{Type: e.Type, ID: e.ID, Name: e.Name}
}
