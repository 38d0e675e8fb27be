// internal/structuring/summary_test.go
package structuring

import (
	"testing"

	"warroom-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSummary_GenericFallback(t *testing.T) {
	summary := BuildSummary(Signals{}, nil)

	require.Len(t, summary.Bullets, 3, "fallback is exactly three generic bullets")
	assert.Empty(t, summary.Entities)
}

func TestBuildSummary_NeverMixesGenericAndSpecific(t *testing.T) {
	signals := Signals{SignalMeeting: true}
	summary := BuildSummary(signals, nil)

	require.Len(t, summary.Bullets, 1)
	assert.NotContains(t, genericBullets, summary.Bullets[0])
}

func TestBuildSummary_PriorityOrder(t *testing.T) {
	// Signals activated in reverse of the output order; bullets must still
	// come out meeting -> bills -> deadline -> clients -> testimony -> amendment.
	signals := Signals{
		SignalAmendment:      true,
		SignalTestimony:      true,
		SignalClientsPresent: true,
		SignalDeadline:       true,
		SignalBillsPresent:   true,
		SignalMeeting:        true,
	}
	summary := BuildSummary(signals, nil)

	require.Len(t, summary.Bullets, 6)
	for i, row := range summaryOrder {
		assert.Equal(t, row.Bullet, summary.Bullets[i])
	}
}

func TestBuildSummary_EntitiesPassThroughUnfiltered(t *testing.T) {
	entities := []models.DetectedEntity{
		{Type: models.EntityBill, ID: "HB1", Name: "HB 1"},
		{Type: models.EntityBill, ID: "HB1", Name: "HB 1"}, // duplicate mention
	}
	summary := BuildSummary(Signals{SignalBillsPresent: true}, entities)

	assert.Equal(t, entities, summary.Entities, "duplicates are preserved, not deduplicated")
}
