// Package module implements the routing events service module
package module

import (
	"landingrouter/internal/modkit"
	"landingrouter/internal/modkit/httpkit"
	"landingrouter/internal/services/events/domain"
	"landingrouter/internal/services/events/repo"
	"landingrouter/internal/services/events/service"
)

// Ports exposed by the events module
type Ports struct {
	Writer domain.WriterPort
	Sink   *service.Sink
	Query  domain.QueryPort
}

// Module implements the events service module, it mounts no routes
type Module struct {
	ports Ports
}

// New constructs the events module, deps.CH must be set
func New(deps modkit.Deps, o Options) *Module {
	storage := repo.NewCH(deps.CH)
	return &Module{ports: Ports{
		Writer: storage,
		Sink:   service.NewSink(storage, service.SinkConfig{MaxInFlight: o.MaxInFlight, Timeout: o.Timeout}),
		Query:  service.New(storage, service.Config{HardLimit: o.HardLimit}),
	}}
}

// Events returns the typed ports
func (m *Module) Events() Ports { return m.ports }

// Name satisfies modkit.Module
func (m *Module) Name() string { return "events" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}

var _ modkit.Module = (*Module)(nil)
