// internal/structuring/bundle.go
package structuring

import (
	"time"

	"warroom-workers/internal/models"
)

const genericBundleName = "Structured Work Plan"

// AssembleBundle builds the sectioned work plan. "Research Tasks" and
// "Drafting Tasks" are always present; "Outreach Tasks" only when a
// legislator or client was detected; "Compliance Tasks" only when the
// compliance signal fired. Drafting tasks reference their research
// predecessor by ID within the same bundle. The dependency is informational,
// nothing schedules or enforces it.
func AssembleBundle(sctx models.SourceContext, signals Signals, entities []models.DetectedEntity, now time.Time) models.TaskBundle {
	bundle := models.TaskBundle{Name: bundleName(sctx)}

	if hasType(entities, models.EntityLegislator) || hasType(entities, models.EntityClient) {
		bundle.Sections = append(bundle.Sections, outreachSection(entities, now))
	}
	bundle.Sections = append(bundle.Sections, researchSection(entities, now))
	bundle.Sections = append(bundle.Sections, draftingSection(entities, now))
	if signals.Active(SignalCompliance) {
		bundle.Sections = append(bundle.Sections, complianceSection(now))
	}

	return bundle
}

func bundleName(sctx models.SourceContext) string {
	switch {
	case sctx.Type == models.ContextBill && sctx.Name != "":
		return sctx.Name + " Work Plan"
	case sctx.Type == models.ContextClient && sctx.Name != "":
		return sctx.Name + " Action Bundle"
	default:
		return genericBundleName
	}
}

func outreachSection(entities []models.DetectedEntity, now time.Time) models.BundleSection {
	contact := firstOfType(entities, models.EntityLegislator)
	if contact == nil {
		contact = firstOfType(entities, models.EntityClient)
	}
	return models.BundleSection{
		Name: "Outreach Tasks",
		Tasks: []models.BundleTask{
			{
				ID:           "outreach-1",
				Title:        "Schedule a stakeholder check-in call",
				Owner:        "Account Lead",
				DueDate:      dueDate(now, 2),
				LinkedObject: refOrNil(contact),
			},
			{
				ID:      "outreach-2",
				Title:   "Send a recap memo to the principals",
				Owner:   "Account Lead",
				DueDate: dueDate(now, 3),
			},
		},
	}
}

func researchSection(entities []models.DetectedEntity, now time.Time) models.BundleSection {
	bill := firstOfType(entities, models.EntityBill)
	return models.BundleSection{
		Name: "Research Tasks",
		Tasks: []models.BundleTask{
			{
				ID:           "research-1",
				Title:        "Compile legislative history and context",
				Owner:        "Research Desk",
				DueDate:      dueDate(now, 4),
				LinkedObject: refOrNil(bill),
			},
			{
				ID:      "research-2",
				Title:   "Summarize known stakeholder positions",
				Owner:   "Research Desk",
				DueDate: dueDate(now, 5),
			},
		},
	}
}

func draftingSection(entities []models.DetectedEntity, now time.Time) models.BundleSection {
	bill := firstOfType(entities, models.EntityBill)
	return models.BundleSection{
		Name: "Drafting Tasks",
		Tasks: []models.BundleTask{
			{
				ID:           "drafting-1",
				Title:        "Draft the position summary",
				Owner:        "Policy Team",
				DueDate:      dueDate(now, 6),
				Dependency:   "research-1",
				LinkedObject: refOrNil(bill),
			},
			{
				ID:         "drafting-2",
				Title:      "Prepare a client-ready one-pager",
				Owner:      "Policy Team",
				DueDate:    dueDate(now, 7),
				Dependency: "research-2",
			},
		},
	}
}

func complianceSection(now time.Time) models.BundleSection {
	return models.BundleSection{
		Name: "Compliance Tasks",
		Tasks: []models.BundleTask{
			{
				ID:      "compliance-1",
				Title:   "Verify lobbying disclosure requirements",
				Owner:   "Compliance",
				DueDate: dueDate(now, 5),
			},
			{
				ID:         "compliance-2",
				Title:      "File the required activity reports",
				Owner:      "Compliance",
				DueDate:    dueDate(now, 10),
				Dependency: "compliance-1",
			},
		},
	}
}

func refOrNil(e *models.DetectedEntity) *models.EntityRef {
	if e == nil {
		return nil
	}
	ref := e.Ref()
	return &ref
}
