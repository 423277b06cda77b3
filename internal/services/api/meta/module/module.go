// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "landingrouter/internal/modkit"
	"landingrouter/internal/modkit/httpkit"

	metahttp "landingrouter/internal/services/api/meta/http"
)

// Options are the meta module settings
type Options struct {
	ServiceName   string
	PrimaryDomain string
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	deps metahttp.Deps
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	d := metahttp.Deps{
		ServiceName:   o.ServiceName,
		StartedAt:     time.Now(),
		PrimaryDomain: o.PrimaryDomain,
		Policy:        deps.HostPolicy(),
	}
	// keep typed nils out of the interface so the probe reports skipped
	if deps.PG != nil {
		d.PG = deps.PG
	}
	if deps.CH != nil {
		d.CH = deps.CH
	}
	return &Module{
		Base: modkit.Build([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...),
		deps: d,
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

var _ modkit.Module = (*Module)(nil)
