// internal/config/normalize.go
package config

import (
	"fmt"
	"strings"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	// The pulse-train gap must be distinguishable from the off time,
	// otherwise pulse counts run together.
	if cfg.Indicator.GapMs < 3*cfg.Indicator.OffMs {
		cfg.Indicator.GapMs = 3 * cfg.Indicator.OffMs
	}

	if cfg.Radio.Driver == "mqtt" {
		if cfg.Radio.ClientID == "" {
			cfg.Radio.ClientID = fmt.Sprintf("weather-node-%d", cfg.Node.ID)
		}
		cfg.Radio.Topic = strings.TrimRight(cfg.Radio.Topic, "/")
	}
}
