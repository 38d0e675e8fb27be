// internal/workers/enrichment/enrich-bill-data/config.go
package enrichbilldata

import "time"

type Config struct {
	Timeout    time.Duration
	BaseURL    string
	APIKey     string
	MaxRetries int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    10 * time.Second,
		BaseURL:    "https://api.legislature.example.com/v1",
		MaxRetries: 3,
	}
}
