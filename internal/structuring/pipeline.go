// internal/structuring/pipeline.go

// Package structuring implements the document structuring pipeline: a
// deterministic transform from free-form text (meeting notes, call logs,
// bill-analysis memos) plus a source context into detected entities, a
// prioritized summary, actionable items, a sectioned task bundle, and
// rendered follow-up drafts.
//
// Every stage is a pure function of its inputs; the only time dependency is
// the injected invocation instant, so a fixed clock makes two runs
// byte-identical. The pipeline has no failure modes: any input, including an
// empty string, produces a well-formed result.
package structuring

import (
	"time"

	"warroom-workers/internal/models"
	"warroom-workers/internal/structuring/roster"
)

// Pipeline runs the five structuring stages in order. It holds no mutable
// state; the roster is fixed at construction.
type Pipeline struct {
	clients roster.Roster
}

// NewPipeline builds a pipeline over the given client roster. A nil roster
// falls back to the built-in default.
func NewPipeline(clients roster.Roster) *Pipeline {
	if clients == nil {
		clients = roster.Default()
	}
	return &Pipeline{clients: clients}
}

// Run executes extraction, classification, summary, action-item, bundle, and
// draft generation against text. now anchors every generated due date.
func (p *Pipeline) Run(text string, sctx models.SourceContext, now time.Time) models.StructuringResult {
	entities := ExtractEntities(text, p.clients)
	signals := Classify(text, entities)

	summary := BuildSummary(signals, entities)
	items := GenerateActionItems(signals, entities, now)
	bundle := AssembleBundle(sctx, signals, entities, now)
	drafts := GenerateDrafts(summary, items, now)

	return models.StructuringResult{
		Summary:        summary,
		ActionItems:    items,
		TaskBundle:     bundle,
		FollowUpDrafts: drafts,
	}
}
