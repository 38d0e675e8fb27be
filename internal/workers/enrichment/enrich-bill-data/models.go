// internal/workers/enrichment/enrich-bill-data/models.go
package enrichbilldata

type Input struct {
	BillID   string `json:"billId"`
	BillName string `json:"billName,omitempty"`
}

type Output struct {
	BillID     string `json:"billId"`
	Status     string `json:"status"`
	Sponsor    string `json:"sponsor,omitempty"`
	Chamber    string `json:"chamber,omitempty"`
	LastAction string `json:"lastAction,omitempty"`
	Enriched   bool   `json:"enriched"`
	EnrichedAt string `json:"enrichedAt"` // ISO 8601
}

// billResponse is the Legislature API bill payload.
type billResponse struct {
	BillNumber string `json:"billNumber"`
	Status     string `json:"status"`
	Sponsor    string `json:"sponsor"`
	Chamber    string `json:"chamber"`
	LastAction string `json:"lastAction"`
}
