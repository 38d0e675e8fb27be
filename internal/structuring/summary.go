// internal/structuring/summary.go
package structuring

import (
	"warroom-workers/internal/models"
)

// summaryOrder fixes the bullet priority: meeting first, then bill mentions,
// deadlines, client mentions, testimony, amendment.
var summaryOrder = []struct {
	Signal Signal
	Bullet string
}{
	{SignalMeeting, "A meeting or discussion took place that requires follow-up."},
	{SignalBillsPresent, "Specific legislation was referenced and should be tracked."},
	{SignalDeadline, "Time-sensitive deadlines were mentioned."},
	{SignalClientsPresent, "Client accounts were mentioned and may need an update."},
	{SignalTestimony, "Testimony or hearing activity is on the horizon."},
	{SignalAmendment, "Amendment or bill language changes are in play."},
}

var genericBullets = []string{
	"General notes were captured for later review.",
	"No specific legislative activity was detected in the text.",
	"Consider adding bill numbers, names, or dates for a richer breakdown.",
}

// BuildSummary maps active signals to their fixed bullets in priority order.
// When no signal fired at all it emits exactly the three generic bullets;
// generic and specific bullets are never mixed. The full entity list passes
// through unfiltered.
func BuildSummary(signals Signals, entities []models.DetectedEntity) models.StructuredSummary {
	if signals.Empty() {
		bullets := make([]string, len(genericBullets))
		copy(bullets, genericBullets)
		return models.StructuredSummary{Bullets: bullets, Entities: entities}
	}

	var bullets []string
	for _, row := range summaryOrder {
		if signals.Active(row.Signal) {
			bullets = append(bullets, row.Bullet)
		}
	}
	return models.StructuredSummary{Bullets: bullets, Entities: entities}
}
