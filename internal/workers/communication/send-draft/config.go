// internal/workers/communication/send-draft/config.go
package senddraft

import "time"

type Config struct {
	Timeout    time.Duration
	FromEmail  string
	SMSEnabled bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    15 * time.Second,
		FromEmail:  "notifications@warroom.example.com",
		SMSEnabled: true,
	}
}
