// internal/workers/records/create-bundle/config.go
package createbundle

import "time"

type Config struct {
	Timeout time.Duration
	Index   string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 20 * time.Second,
		Index:   "warroom-bundles",
	}
}
