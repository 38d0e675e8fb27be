// internal/structuring/signals.go
package structuring

import (
	"strings"

	"warroom-workers/internal/models"
)

// Signal names a binary trigger derived from the source text. Signals are
// independent; several can be active at once and none carries a score.
type Signal string

const (
	SignalMeeting    Signal = "meeting"
	SignalDeadline   Signal = "deadline"
	SignalTestimony  Signal = "testimony"
	SignalAmendment  Signal = "amendment"
	SignalClientComm Signal = "client-communication"
	SignalCompliance Signal = "compliance"
	SignalScheduling Signal = "scheduling"
	SignalBriefing   Signal = "briefing"
	SignalResearch   Signal = "research"

	SignalBillsPresent       Signal = "bills-present"
	SignalLegislatorsPresent Signal = "legislators-present"
	SignalClientsPresent     Signal = "clients-present"
	SignalCommitteesPresent  Signal = "committees-present"
)

// triggerVocabulary is the fixed keyword table evaluated once per run. Each
// row is an OR over its keywords against the lower-cased text.
var triggerVocabulary = []struct {
	Signal   Signal
	Keywords []string
}{
	{SignalMeeting, []string{"meeting", "discussed"}},
	{SignalDeadline, []string{"deadline", "due"}},
	{SignalTestimony, []string{"testimony", "hearing"}},
	{SignalAmendment, []string{"amendment", "change"}},
	{SignalClientComm, []string{"client", "update"}},
	{SignalCompliance, []string{"compliance", "filing"}},
	{SignalScheduling, []string{"schedule"}},
	{SignalBriefing, []string{"brief", "summary"}},
	{SignalResearch, []string{"research", "analysis"}},
}

// Signals is the flat set of active triggers for one run.
type Signals map[Signal]bool

// Classify evaluates the trigger vocabulary over the lower-cased text and
// records the presence of each entity family.
func Classify(text string, entities []models.DetectedEntity) Signals {
	lower := strings.ToLower(text)
	out := make(Signals, len(triggerVocabulary)+4)

	for _, row := range triggerVocabulary {
		for _, kw := range row.Keywords {
			if strings.Contains(lower, kw) {
				out[row.Signal] = true
				break
			}
		}
	}

	if hasType(entities, models.EntityBill) {
		out[SignalBillsPresent] = true
	}
	if hasType(entities, models.EntityLegislator) {
		out[SignalLegislatorsPresent] = true
	}
	if hasType(entities, models.EntityClient) {
		out[SignalClientsPresent] = true
	}
	if hasType(entities, models.EntityCommittee) {
		out[SignalCommitteesPresent] = true
	}

	return out
}

// Active reports whether sig fired.
func (s Signals) Active(sig Signal) bool {
	return s[sig]
}

// Empty reports whether no signal fired at all, which routes the summary and
// action-item stages onto their fixed fallback output.
func (s Signals) Empty() bool {
	return len(s) == 0
}
