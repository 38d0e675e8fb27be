// internal/structuring/drafts.go
package structuring

import (
	"fmt"
	"strings"
	"time"

	"warroom-workers/internal/models"
)

const followUpEmailTemplate = `Hi,

Thank you for the time today. I wanted to follow up on the points we covered and confirm next steps on our end. We will circulate a full recap shortly.

Please let me know if anything needs to be corrected or added.

Best regards`

const clientUpdateTemplate = `{{clientName}} update ({{date}}): our team reviewed the latest developments on {{billName}} and is tracking next steps. A detailed work plan is in motion and we will flag anything requiring your input.`

// GenerateDrafts renders the three follow-up communication drafts. The
// generic email and the internal status update are always produced; the
// client blurb only when a client entity was detected. Dates inside the
// drafts come from the same offset helper as the action items, so the two
// stages cannot drift apart.
func GenerateDrafts(summary models.StructuredSummary, items []models.ActionItem, now time.Time) []models.FollowUpDraft {
	drafts := []models.FollowUpDraft{
		{
			Type:    models.DraftEmail,
			Title:   "Follow-Up Email",
			Content: followUpEmailTemplate,
		},
	}

	if client := firstOfType(summary.Entities, models.EntityClient); client != nil {
		billName := "the legislation"
		if bill := firstOfType(summary.Entities, models.EntityBill); bill != nil {
			billName = bill.Name
		}
		drafts = append(drafts, models.FollowUpDraft{
			Type:  models.DraftClientUpdate,
			Title: "Client Update Blurb",
			Content: renderTemplate(clientUpdateTemplate, map[string]string{
				"clientName": client.Name,
				"date":       now.Format("January 2, 2006"),
				"billName":   billName,
			}),
		})
	}

	drafts = append(drafts, models.FollowUpDraft{
		Type:    models.DraftStatusUpdate,
		Title:   "Internal Status Update",
		Content: statusUpdateContent(summary, items),
	})

	return drafts
}

func statusUpdateContent(summary models.StructuredSummary, items []models.ActionItem) string {
	var b strings.Builder
	b.WriteString("Status update\n\nSummary:\n")
	for _, bullet := range summary.Bullets {
		fmt.Fprintf(&b, "- %s\n", bullet)
	}

	b.WriteString("\nNext actions:\n")
	for i, item := range items {
		if i == 3 {
			break
		}
		fmt.Fprintf(&b, "- %s (%s, due %s)\n", item.Text, item.SuggestedOwner, item.SuggestedDueDate)
	}
	return b.String()
}

// renderTemplate substitutes {{key}} placeholders. Unknown placeholders are
// left in place so a missing value is visible rather than silently blank.
func renderTemplate(tmpl string, data map[string]string) string {
	out := tmpl
	for key, val := range data {
		out = strings.ReplaceAll(out, "{{"+key+"}}", val)
	}
	return out
}
