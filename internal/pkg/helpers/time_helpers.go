package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a config duration such as "1h", falling back to defaultDuration
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("duration", durationStr).Dur("default", defaultDuration).Msg("Invalid duration, using default")
		return defaultDuration
	}
	return duration
}
