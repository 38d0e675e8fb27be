// internal/structuring/pipeline_test.go
package structuring

import (
	"encoding/json"
	"testing"

	"warroom-workers/internal/models"
	"warroom-workers/internal/structuring/roster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_DeterministicWithFixedClock(t *testing.T) {
	p := NewPipeline(roster.Default())
	sctx := models.SourceContext{Type: models.ContextBill, ID: "HB247", Name: "HB 247"}
	text := "Met with Sen. Maria Lopez about HB 247. Amendment due Friday. Apex Energy Partners needs an update before the compliance filing."

	first := p.Run(text, sctx, testNow)
	second := p.Run(text, sctx, testNow)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b), "same text, context, and clock must be byte-identical")
}

func TestPipeline_NoSignalFallback(t *testing.T) {
	p := NewPipeline(roster.Default())
	result := p.Run("Spoke with the team regarding logistics.", models.SourceContext{Type: models.ContextGeneral}, testNow)

	assert.Len(t, result.Summary.Bullets, 3)
	assert.Empty(t, result.Summary.Entities)

	require.Len(t, result.ActionItems, 2)
	assert.True(t, result.ActionItems[0].Selected)
	assert.False(t, result.ActionItems[1].Selected)

	names := sectionNames(result.TaskBundle)
	assert.Equal(t, []string{"Research Tasks", "Drafting Tasks"}, names)

	require.Len(t, result.FollowUpDrafts, 2)
	assert.Equal(t, models.DraftEmail, result.FollowUpDrafts[0].Type)
	assert.Equal(t, models.DraftStatusUpdate, result.FollowUpDrafts[1].Type)
}

func TestPipeline_EmptyInput(t *testing.T) {
	p := NewPipeline(nil)
	result := p.Run("", models.SourceContext{Type: models.ContextGeneral}, testNow)

	assert.Len(t, result.Summary.Bullets, 3)
	assert.Len(t, result.ActionItems, 2)
	assert.NotEmpty(t, result.TaskBundle.Sections)
	assert.NotEmpty(t, result.FollowUpDrafts)
}

func TestPipeline_ClientOnlyBranching(t *testing.T) {
	p := NewPipeline(roster.Default())
	result := p.Run("Lunch with Apex Energy Partners next week.", models.SourceContext{Type: models.ContextGeneral}, testNow)

	require.Len(t, result.Summary.Entities, 1)
	assert.Equal(t, models.EntityClient, result.Summary.Entities[0].Type)

	blurbFound := false
	for _, d := range result.FollowUpDrafts {
		if d.Type == models.DraftClientUpdate {
			blurbFound = true
			assert.Contains(t, d.Content, "Apex Energy Partners")
			assert.Contains(t, d.Content, "the legislation")
		}
	}
	assert.True(t, blurbFound, "client mention must produce a client update blurb")
	assert.Contains(t, sectionNames(result.TaskBundle), "Outreach Tasks")
}

func TestPipeline_ComplianceBranching(t *testing.T) {
	p := NewPipeline(nil)
	result := p.Run("Start the compliance review before the filing date.", models.SourceContext{Type: models.ContextGeneral}, testNow)

	var compliance *models.BundleSection
	for i := range result.TaskBundle.Sections {
		if result.TaskBundle.Sections[i].Name == "Compliance Tasks" {
			compliance = &result.TaskBundle.Sections[i]
		}
	}
	require.NotNil(t, compliance)
	assert.Len(t, compliance.Tasks, 2)
	assert.Len(t, result.TaskBundle.Sections, 3, "compliance adds to the two unconditional sections")
}
