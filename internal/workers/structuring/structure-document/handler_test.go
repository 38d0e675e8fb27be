// internal/workers/structuring/structure-document/handler_test.go
package structuredocument

import (
	"context"
	"testing"
	"time"

	"warroom-workers/internal/common/logger"
	"warroom-workers/internal/common/observability"
	"warroom-workers/internal/models"
	"warroom-workers/internal/structuring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Setup
// ==========================

var testNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	h := NewHandler(
		LoadConfig(),
		structuring.NewPipeline(nil),
		observability.New("structure-document-test", ""),
		logger.NewNoOpLogger(),
	)
	h.clock = func() time.Time { return testNow }
	return h
}

// ==========================
// Execute Tests
// ==========================

func TestExecute_StructuresDocument(t *testing.T) {
	h := newTestHandler(t)

	input := &Input{
		SourceText: "Met with Sen. Maria Lopez to discuss HB 247. The amendment deadline is Friday.",
		SourceContext: models.SourceContext{
			Type: models.ContextRecord,
			Name: "Meeting notes",
		},
	}

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, output)

	assert.Equal(t, "2025-03-10T09:00:00Z", output.StructuredAt)
	assert.NotEmpty(t, output.Result.Summary.Entities)
	assert.NotEmpty(t, output.Result.Summary.Bullets)
	assert.NotEmpty(t, output.Result.ActionItems)
	assert.NotEmpty(t, output.Result.TaskBundle.Sections)
	assert.NotEmpty(t, output.Result.FollowUpDrafts)
}

func TestExecute_FallbackOnEmptySignals(t *testing.T) {
	h := newTestHandler(t)

	input := &Input{
		SourceText: "Spoke with the team regarding logistics.",
		SourceContext: models.SourceContext{
			Type: models.ContextGeneral,
		},
	}

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Empty(t, output.Result.Summary.Entities)
	assert.Len(t, output.Result.Summary.Bullets, 3)
	assert.Len(t, output.Result.ActionItems, 2)
}

func TestExecute_Deterministic(t *testing.T) {
	h := newTestHandler(t)

	input := &Input{
		SourceText: "Apex Energy Partners asked for an update on SB 156 before the hearing.",
		SourceContext: models.SourceContext{
			Type: models.ContextClient,
			Name: "Apex Energy Partners",
		},
	}

	first, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_DueDatesDerivedFromClock(t *testing.T) {
	h := newTestHandler(t)

	input := &Input{
		SourceText: "Discussed HB 247 in the meeting with Rep. James Chen.",
		SourceContext: models.SourceContext{
			Type: models.ContextBill,
			Name: "HB 247",
		},
	}

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	require.NotEmpty(t, output.Result.ActionItems)

	// action-meeting-recap is due one day after the clock reading.
	assert.Equal(t, "2025-03-11", output.Result.ActionItems[0].SuggestedDueDate)
}
