package module

import (
	"time"

	"landingrouter/internal/platform/config"
	"landingrouter/internal/services/routingconf"
)

// Options holds the edge settings
type Options struct {
	Routing            routingconf.Settings
	LookupTimeout      time.Duration
	TrustForwardedHost bool
	EventsEnabled      bool
	// Skip lists path prefixes served without host routing
	Skip []string
}

// FromConfig reads EDGE_* and ROUTING_* settings
func FromConfig(cfg config.Conf) Options {
	ec := cfg.Prefix("EDGE_")
	return Options{
		Routing:            routingconf.Load(cfg),
		LookupTimeout:      ec.MayDuration("LOOKUP_TIMEOUT", 2*time.Second),
		TrustForwardedHost: ec.MayBool("TRUST_FORWARDED_HOST", false),
		EventsEnabled:      ec.MayBool("EVENTS_ENABLED", true),
	}
}
