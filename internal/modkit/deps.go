package modkit

import (
	"landingrouter/internal/core/hostname"
	"landingrouter/internal/platform/config"
	"landingrouter/internal/platform/logger"
	"landingrouter/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  store.RowQuerier
	CH  store.Clickhouse

	// Policy is the subdomain and preview table shared by every surface
	Policy hostname.Policy
}

// HostPolicy returns Policy, or hostname.DefaultPolicy when unset
func (d Deps) HostPolicy() hostname.Policy {
	if len(d.Policy.Subdomains) == 0 && len(d.Policy.PreviewSuffixes) == 0 {
		return hostname.DefaultPolicy
	}
	return d.Policy
}
