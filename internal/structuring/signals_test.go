// internal/structuring/signals_test.go
package structuring

import (
	"testing"

	"warroom-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClassify_KeywordTriggers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Signal
	}{
		{"meeting keyword", "we discussed the agenda", SignalMeeting},
		{"deadline keyword", "the response is due friday", SignalDeadline},
		{"testimony keyword", "hearing set for next month", SignalTestimony},
		{"amendment keyword", "a change to section 2", SignalAmendment},
		{"client keyword", "send the client a note", SignalClientComm},
		{"compliance keyword", "the filing window opens", SignalCompliance},
		{"schedule keyword", "schedule a call", SignalScheduling},
		{"briefing keyword", "a brief for the principal", SignalBriefing},
		{"research keyword", "deeper analysis needed", SignalResearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signals := Classify(tt.text, nil)
			assert.True(t, signals.Active(tt.want))
		})
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	signals := Classify("MEETING scheduled, DEADLINE Friday", nil)
	assert.True(t, signals.Active(SignalMeeting))
	assert.True(t, signals.Active(SignalDeadline))
	assert.True(t, signals.Active(SignalScheduling))
}

func TestClassify_EntityPresence(t *testing.T) {
	entities := []models.DetectedEntity{
		{Type: models.EntityBill, ID: "HB1", Name: "HB 1"},
		{Type: models.EntityClient, ID: "client-x", Name: "X"},
	}
	signals := Classify("nothing here", entities)

	assert.True(t, signals.Active(SignalBillsPresent))
	assert.True(t, signals.Active(SignalClientsPresent))
	assert.False(t, signals.Active(SignalLegislatorsPresent))
	assert.False(t, signals.Active(SignalCommitteesPresent))
}

func TestClassify_Empty(t *testing.T) {
	signals := Classify("nothing interesting in this text", nil)
	assert.True(t, signals.Empty())

	signals = Classify("we discussed things", nil)
	assert.False(t, signals.Empty())
}

func TestClassify_SignalsAreIndependent(t *testing.T) {
	signals := Classify("meeting about the amendment deadline", nil)
	assert.True(t, signals.Active(SignalMeeting))
	assert.True(t, signals.Active(SignalAmendment))
	assert.True(t, signals.Active(SignalDeadline))
}
