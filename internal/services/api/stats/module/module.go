// Package module wires routing stats into the API using modkit
package module

import (
	modkit "landingrouter/internal/modkit"
	"landingrouter/internal/modkit/httpkit"
	statshttp "landingrouter/internal/services/api/stats/http"
	statssvc "landingrouter/internal/services/api/stats/service"
	evdom "landingrouter/internal/services/events/domain"
)

// Module implements the stats module
type Module struct {
	modkit.Base
	svc statssvc.Service
}

// New constructs the stats module over the events query port
func New(q evdom.QueryPort, opts ...modkit.Option) *Module {
	svc := statssvc.New(q)
	return &Module{
		Base: modkit.Build([]modkit.Option{
			modkit.WithName("stats"),
			modkit.WithPrefix("/stats"),
			modkit.WithPorts(statssvc.Service(svc)),
		}, opts...),
		svc: svc,
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.Mount(r, func(rr httpkit.Router) { statshttp.Register(rr, m.svc) })
}

var _ modkit.Module = (*Module)(nil)
