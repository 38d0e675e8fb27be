// internal/structuring/actions.go
package structuring

import (
	"time"

	"warroom-workers/internal/models"
)

// actionRule maps one or more signals to a generated action item. Signals are
// not mutually exclusive; every rule whose trigger fired contributes its item,
// in table order. LinkFamily/LinkMax select up to LinkMax already-extracted
// entities of one family as lookup links.
type actionRule struct {
	ID         string
	Triggers   []Signal
	Text       string
	Priority   models.Priority
	Owner      string
	OffsetDays int
	LinkFamily models.EntityType
	LinkMax    int
	Selected   bool
}

var actionRules = []actionRule{
	{
		ID:         "action-meeting-recap",
		Triggers:   []Signal{SignalMeeting},
		Text:       "Send a follow-up recap to everyone in the meeting",
		Priority:   models.PriorityHigh,
		Owner:      "Account Lead",
		OffsetDays: 1,
		LinkFamily: models.EntityLegislator,
		LinkMax:    2,
		Selected:   true,
	},
	{
		ID:         "action-deadline-check",
		Triggers:   []Signal{SignalDeadline},
		Text:       "Confirm all filing and response deadlines on the calendar",
		Priority:   models.PriorityHigh,
		Owner:      "Operations",
		OffsetDays: 2,
		LinkFamily: models.EntityBill,
		LinkMax:    1,
		Selected:   true,
	},
	{
		ID:         "action-testimony-prep",
		Triggers:   []Signal{SignalTestimony},
		Text:       "Prepare testimony talking points for the upcoming hearing",
		Priority:   models.PriorityHigh,
		Owner:      "Policy Team",
		OffsetDays: 5,
		LinkFamily: models.EntityBill,
		LinkMax:    1,
		Selected:   true,
	},
	{
		ID:         "action-amendment-review",
		Triggers:   []Signal{SignalAmendment},
		Text:       "Draft a comparison of the proposed amendment language",
		Priority:   models.PriorityMedium,
		Owner:      "Policy Team",
		OffsetDays: 4,
		LinkFamily: models.EntityBill,
		LinkMax:    1,
		Selected:   false,
	},
	{
		ID:         "action-client-update",
		Triggers:   []Signal{SignalClientComm, SignalClientsPresent},
		Text:       "Send a status update to the affected clients",
		Priority:   models.PriorityMedium,
		Owner:      "Account Lead",
		OffsetDays: 3,
		LinkFamily: models.EntityClient,
		LinkMax:    2,
		Selected:   true,
	},
	{
		ID:         "action-compliance-review",
		Triggers:   []Signal{SignalCompliance},
		Text:       "Review compliance and disclosure filing obligations",
		Priority:   models.PriorityHigh,
		Owner:      "Compliance",
		OffsetDays: 7,
		Selected:   false,
	},
	{
		ID:         "action-research-memo",
		Triggers:   []Signal{SignalResearch},
		Text:       "Compile a background research memo",
		Priority:   models.PriorityMedium,
		Owner:      "Research Desk",
		OffsetDays: 6,
		LinkFamily: models.EntityCommittee,
		LinkMax:    1,
		Selected:   false,
	},
	{
		ID:         "action-schedule-holds",
		Triggers:   []Signal{SignalScheduling},
		Text:       "Coordinate calendar holds with all participants",
		Priority:   models.PriorityLow,
		Owner:      "Scheduler",
		OffsetDays: 2,
		Selected:   false,
	},
	{
		ID:         "action-briefing-packet",
		Triggers:   []Signal{SignalBriefing},
		Text:       "Assemble a briefing packet from these notes",
		Priority:   models.PriorityMedium,
		Owner:      "Research Desk",
		OffsetDays: 3,
		LinkFamily: models.EntityBill,
		LinkMax:    1,
		Selected:   false,
	},
}

// fallbackActions is emitted verbatim (dates aside) when no signal fired:
// exactly two items, the first selected, the second not.
var fallbackActions = []actionRule{
	{
		ID:         "action-review-notes",
		Text:       "Review and categorize these notes",
		Priority:   models.PriorityMedium,
		Owner:      "Account Lead",
		OffsetDays: 3,
		Selected:   true,
	},
	{
		ID:         "action-archive-source",
		Text:       "Archive the source material to records",
		Priority:   models.PriorityLow,
		Owner:      "Operations",
		OffsetDays: 7,
		Selected:   false,
	},
}

// GenerateActionItems walks the rule table and emits one item per rule whose
// trigger fired. Due dates are now + the rule's offset; now is injected so two
// runs at the same instant are byte-identical.
func GenerateActionItems(signals Signals, entities []models.DetectedEntity, now time.Time) []models.ActionItem {
	rules := actionRules
	if signals.Empty() {
		rules = fallbackActions
	}

	var out []models.ActionItem
	for _, rule := range rules {
		if !signals.Empty() && !anyActive(signals, rule.Triggers) {
			continue
		}
		out = append(out, buildActionItem(rule, entities, now))
	}
	return out
}

func buildActionItem(rule actionRule, entities []models.DetectedEntity, now time.Time) models.ActionItem {
	var links []models.EntityRef
	if rule.LinkMax > 0 {
		links = refsOfType(entities, rule.LinkFamily, rule.LinkMax)
	}
	return models.ActionItem{
		ID:               rule.ID,
		Text:             rule.Text,
		Priority:         rule.Priority,
		SuggestedOwner:   rule.Owner,
		SuggestedDueDate: dueDate(now, rule.OffsetDays),
		LinkedObjects:    links,
		Selected:         rule.Selected,
	}
}

func anyActive(signals Signals, triggers []Signal) bool {
	for _, t := range triggers {
		if signals.Active(t) {
			return true
		}
	}
	return false
}

// dueDate renders now + offset days as a calendar date. Every stage that
// mentions a date goes through this helper so upstream and downstream
// never drift apart.
func dueDate(now time.Time, offsetDays int) string {
	return now.AddDate(0, 0, offsetDays).Format("2006-01-02")
}
