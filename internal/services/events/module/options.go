package module

import (
	"time"

	"landingrouter/internal/platform/config"
)

// Options holds configuration settings for the events module
type Options struct {
	MaxInFlight int
	Timeout     time.Duration
	HardLimit   int
}

// FromConfig reads EDGE_EVENTS_* and CORE_EVENTS_* settings
func FromConfig(cfg config.Conf) Options {
	ec := cfg.Prefix("EDGE_EVENTS_")
	qc := cfg.Prefix("CORE_EVENTS_")
	return Options{
		MaxInFlight: ec.MayInt("MAX_INFLIGHT", 64),
		Timeout:     ec.MayDuration("TIMEOUT", 2*time.Second),
		HardLimit:   qc.MayInt("HARD_LIMIT", 100),
	}
}
