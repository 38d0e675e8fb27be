// internal/structuring/extractor.go
package structuring

import (
	"regexp"
	"sort"
	"strings"

	"warroom-workers/internal/models"
	"warroom-workers/internal/structuring/roster"
)

var (
	billPattern       = regexp.MustCompile(`(?i)\b(HB|SB)\s*(\d+)\b`)
	legislatorPattern = regexp.MustCompile(`\b(?:Sen\.|Senator|Rep\.|Representative)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
	committeePattern  = regexp.MustCompile(`(?i)\b(Energy|Education|Finance|Appropriations|Healthcare|Transportation|Judiciary)\s+Committee\b`)
)

// ExtractEntities scans text with four independent matchers (bills,
// legislators, known clients, committees) and returns every match in matcher
// order, text order within each matcher. Spans index into the original text.
// Matches are not deduplicated across or within families: a bill mentioned
// twice yields two entities with the same ID.
func ExtractEntities(text string, clients roster.Roster) []models.DetectedEntity {
	var out []models.DetectedEntity
	out = append(out, extractBills(text)...)
	out = append(out, extractLegislators(text)...)
	out = append(out, extractClients(text, clients)...)
	out = append(out, extractCommittees(text)...)
	return out
}

func extractBills(text string) []models.DetectedEntity {
	var out []models.DetectedEntity
	for _, m := range billPattern.FindAllStringSubmatchIndex(text, -1) {
		prefix := strings.ToUpper(text[m[2]:m[3]])
		digits := text[m[4]:m[5]]
		out = append(out, models.DetectedEntity{
			Type: models.EntityBill,
			ID:   prefix + digits,
			Name: prefix + " " + digits,
			Span: models.Span{Start: m[0], End: m[1]},
		})
	}
	return out
}

func extractLegislators(text string) []models.DetectedEntity {
	var out []models.DetectedEntity
	for _, m := range legislatorPattern.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		out = append(out, models.DetectedEntity{
			Type: models.EntityLegislator,
			ID:   "leg-" + slugify(name),
			Name: name,
			Span: models.Span{Start: m[0], End: m[1]},
		})
	}
	return out
}

// extractClients does an exact, case-sensitive substring search for each
// roster name, first occurrence only, then orders the hits by position.
func extractClients(text string, clients roster.Roster) []models.DetectedEntity {
	var out []models.DetectedEntity
	for _, name := range clients {
		idx := strings.Index(text, name)
		if idx < 0 {
			continue
		}
		out = append(out, models.DetectedEntity{
			Type: models.EntityClient,
			ID:   "client-" + slugify(name),
			Name: name,
			Span: models.Span{Start: idx, End: idx + len(name)},
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Span.Start < out[j].Span.Start
	})
	return out
}

func extractCommittees(text string) []models.DetectedEntity {
	var out []models.DetectedEntity
	for _, m := range committeePattern.FindAllStringSubmatchIndex(text, -1) {
		subject := text[m[2]:m[3]]
		out = append(out, models.DetectedEntity{
			Type: models.EntityCommittee,
			ID:   "committee-" + strings.ToLower(subject),
			Name: text[m[0]:m[1]],
			Span: models.Span{Start: m[0], End: m[1]},
		})
	}
	return out
}

func slugify(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

// firstOfType returns the first extracted entity of the given family, in
// extraction order, or nil.
func firstOfType(entities []models.DetectedEntity, t models.EntityType) *models.DetectedEntity {
	for i := range entities {
		if entities[i].Type == t {
			return &entities[i]
		}
	}
	return nil
}

// refsOfType returns lookup keys for up to max entities of the given family.
func refsOfType(entities []models.DetectedEntity, t models.EntityType, max int) []models.EntityRef {
	var out []models.EntityRef
	for i := range entities {
		if entities[i].Type != t {
			continue
		}
		out = append(out, entities[i].Ref())
		if len(out) == max {
			break
		}
	}
	return out
}

func hasType(entities []models.DetectedEntity, t models.EntityType) bool {
	return firstOfType(entities, t) != nil
}
