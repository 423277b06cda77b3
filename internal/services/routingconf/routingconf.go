// Package routingconf reads the routing settings shared by the API, the edge and the CLI
package routingconf

import (
	"landingrouter/internal/core/hostname"
	"landingrouter/internal/platform/config"
)

// Settings is the resolved ROUTING_* configuration
type Settings struct {
	// PrimaryDomain serves TLD-only and unmatched preview hosts; empty disables it
	PrimaryDomain string
	Policy        hostname.Policy
}

// Load reads ROUTING_PRIMARY_DOMAIN, ROUTING_SUBDOMAINS and ROUTING_PREVIEW_SUFFIXES from c
// unset lists keep hostname.DefaultPolicy values
func Load(c config.Conf) Settings {
	rc := c.Prefix("ROUTING_")
	return Settings{
		PrimaryDomain: rc.MayString("PRIMARY_DOMAIN", ""),
		Policy: hostname.Policy{
			Subdomains:      rc.MayCSV("SUBDOMAINS", hostname.DefaultPolicy.Subdomains),
			PreviewSuffixes: dotted(rc.MayCSV("PREVIEW_SUFFIXES", hostname.DefaultPolicy.PreviewSuffixes)),
		},
	}
}

// dotted makes every suffix start with a dot so "vercel.app" cannot match "myvercel.app"
func dotted(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		if s != "" && s[0] != '.' {
			s = "." + s
		}
		out[i] = s
	}
	return out
}
