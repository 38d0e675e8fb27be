// internal/structuring/actions_test.go
package structuring

import (
	"testing"
	"time"

	"warroom-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func TestGenerateActionItems_Fallback(t *testing.T) {
	items := GenerateActionItems(Signals{}, nil, testNow)

	require.Len(t, items, 2, "no signals yields exactly two fallback items")
	assert.True(t, items[0].Selected)
	assert.False(t, items[1].Selected)
	assert.Equal(t, "2025-03-13", items[0].SuggestedDueDate)
	assert.Equal(t, "2025-03-17", items[1].SuggestedDueDate)
}

func TestGenerateActionItems_SignalMapping(t *testing.T) {
	signals := Signals{SignalMeeting: true, SignalDeadline: true}
	items := GenerateActionItems(signals, nil, testNow)

	require.Len(t, items, 2)
	assert.Equal(t, "action-meeting-recap", items[0].ID)
	assert.Equal(t, models.PriorityHigh, items[0].Priority)
	assert.Equal(t, "Account Lead", items[0].SuggestedOwner)
	assert.Equal(t, "2025-03-11", items[0].SuggestedDueDate)

	assert.Equal(t, "action-deadline-check", items[1].ID)
	assert.Equal(t, "2025-03-12", items[1].SuggestedDueDate)
}

func TestGenerateActionItems_EntityLinks(t *testing.T) {
	entities := []models.DetectedEntity{
		{Type: models.EntityBill, ID: "HB247", Name: "HB 247"},
		{Type: models.EntityBill, ID: "SB156", Name: "SB 156"},
		{Type: models.EntityLegislator, ID: "leg-wells", Name: "Wells"},
	}
	items := GenerateActionItems(Signals{SignalTestimony: true}, entities, testNow)

	require.Len(t, items, 1)
	require.Len(t, items[0].LinkedObjects, 1, "testimony action links only the first bill")
	assert.Equal(t, "HB247", items[0].LinkedObjects[0].ID)
}

func TestGenerateActionItems_LinkCapRespected(t *testing.T) {
	entities := []models.DetectedEntity{
		{Type: models.EntityLegislator, ID: "leg-a", Name: "A"},
		{Type: models.EntityLegislator, ID: "leg-b", Name: "B"},
		{Type: models.EntityLegislator, ID: "leg-c", Name: "C"},
	}
	items := GenerateActionItems(Signals{SignalMeeting: true}, entities, testNow)

	require.Len(t, items, 1)
	assert.Len(t, items[0].LinkedObjects, 2, "meeting recap links at most two legislators")
}

func TestGenerateActionItems_ClientUpdateFiresOnEitherTrigger(t *testing.T) {
	fromKeyword := GenerateActionItems(Signals{SignalClientComm: true}, nil, testNow)
	fromEntity := GenerateActionItems(Signals{SignalClientsPresent: true}, nil, testNow)

	require.Len(t, fromKeyword, 1)
	require.Len(t, fromEntity, 1)
	assert.Equal(t, "action-client-update", fromKeyword[0].ID)
	assert.Equal(t, fromKeyword[0].ID, fromEntity[0].ID)
}

func TestGenerateActionItems_TableOrderIsStable(t *testing.T) {
	all := make(Signals)
	for _, row := range triggerVocabulary {
		all[row.Signal] = true
	}
	items := GenerateActionItems(all, nil, testNow)

	require.Len(t, items, len(actionRules))
	for i, rule := range actionRules {
		assert.Equal(t, rule.ID, items[i].ID)
	}
}
