// Package module wires routing diagnostics into the API using modkit
package module

import (
	"time"

	modkit "landingrouter/internal/modkit"
	"landingrouter/internal/modkit/httpkit"
	"landingrouter/internal/services/api/routing/domain"
	routinghttp "landingrouter/internal/services/api/routing/http"
	routingrepo "landingrouter/internal/services/api/routing/repo"
	routingsvc "landingrouter/internal/services/api/routing/service"
)

// Ports is what the module exposes to other modules and the CLI
type Ports struct {
	Diagnostics domain.ServicePort
}

// Options are the module settings
type Options struct {
	// Fallback is ROUTING_PRIMARY_DOMAIN
	Fallback string
	// LookupTimeout bounds the registry calls of one diagnostics run; zero keeps the service default
	LookupTimeout time.Duration
}

// Module implements the routing diagnostics module
type Module struct {
	modkit.Base
	svc routingsvc.Service
}

// New constructs the routing module over the postgres registry in deps.PG
func New(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	svc := routingsvc.New(deps.PG, routingrepo.NewPG(), o.Fallback, deps.HostPolicy())
	if o.LookupTimeout > 0 {
		svc.Timeout = o.LookupTimeout
	}
	return newModule(svc, opts...)
}

func newModule(svc routingsvc.Service, opts ...modkit.Option) *Module {
	defaults := []modkit.Option{
		modkit.WithName("routing"),
		modkit.WithPrefix("/routing"),
		modkit.WithPorts(Ports{Diagnostics: svc}),
	}
	return &Module{Base: modkit.Build(defaults, opts...), svc: svc}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.Mount(r, func(rr httpkit.Router) { routinghttp.Register(rr, m.svc) })
}

var _ modkit.Module = (*Module)(nil)
