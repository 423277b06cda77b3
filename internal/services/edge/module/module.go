// Package module wires the edge router: host routing middleware, site handler and the events sink
package module

import (
	"context"

	modkit "landingrouter/internal/modkit"
	"landingrouter/internal/modkit/httpkit"
	"landingrouter/internal/platform/logger"
	routingrepo "landingrouter/internal/services/api/routing/repo"
	edgehttp "landingrouter/internal/services/edge/http"
	edgesvc "landingrouter/internal/services/edge/service"
	evdom "landingrouter/internal/services/events/domain"
	eventsmod "landingrouter/internal/services/events/module"
	eventssvc "landingrouter/internal/services/events/service"
)

// Ports exposed by the edge module
type Ports struct {
	Router edgesvc.RoutePort
	// Sink is nil when events are disabled or clickhouse is not configured
	Sink *eventssvc.Sink
}

// Module implements modkit.Module for the edge server
type Module struct {
	modkit.Base
	svc  edgesvc.RoutePort
	sink *eventssvc.Sink
	opt  Options
}

// New constructs the edge module; deps.PG is required and deps.CH enables events
func New(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	reg := routingrepo.Coalesce(routingrepo.NewPG().Bind(deps.PG), o.LookupTimeout)
	svc := edgesvc.New(reg, edgesvc.Config{
		Fallback:      o.Routing.PrimaryDomain,
		Policy:        o.Routing.Policy,
		LookupTimeout: o.LookupTimeout,
	})

	var sink *eventssvc.Sink
	switch {
	case o.EventsEnabled && deps.CH != nil:
		sink = eventsmod.New(deps, eventsmod.FromConfig(deps.Cfg)).Events().Sink
	case o.EventsEnabled:
		logger.Named("edge").Warn().Msg("routing events enabled but clickhouse is not configured; events disabled")
	}
	return newModule(svc, sink, o, opts...)
}

func newModule(svc edgesvc.RoutePort, sink *eventssvc.Sink, o Options, opts ...modkit.Option) *Module {
	m := &Module{svc: svc, sink: sink, opt: o}
	m.Base = modkit.Build([]modkit.Option{
		modkit.WithName("edge"),
		modkit.WithPorts(Ports{Router: svc, Sink: sink}),
	}, opts...)
	return m
}

// MountRoutes installs the host router on r itself, it must run before any route is added
// routing happens on the rewritten path so the middleware cannot live in a group
func (m *Module) MountRoutes(r httpkit.Router) {
	var sink evdom.SinkPort
	if m.sink != nil {
		sink = m.sink
	}
	r.Use(edgehttp.Router(m.svc, edgehttp.Options{
		TrustForwardedHost: m.opt.TrustForwardedHost,
		Sink:               sink,
		Skip:               m.opt.Skip,
	}))
	edgehttp.RegisterSites(r)
}

// Close drains the events sink until ctx ends
func (m *Module) Close(ctx context.Context) error {
	if m.sink == nil {
		return nil
	}
	return m.sink.Close(ctx)
}

var _ modkit.Module = (*Module)(nil)
