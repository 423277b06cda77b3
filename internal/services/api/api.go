// Package api provides the routing diagnostics HTTP API
package api

import (
	"time"

	"landingrouter/internal/platform/config"
	phttp "landingrouter/internal/platform/net/http"
	"landingrouter/internal/platform/net/middleware"
	"landingrouter/internal/platform/store"

	"landingrouter/internal/modkit"
	"landingrouter/internal/modkit/httpkit"
	"landingrouter/internal/modkit/swaggerkit"

	metamod "landingrouter/internal/services/api/meta/module"
	routingmod "landingrouter/internal/services/api/routing/module"
	statsmod "landingrouter/internal/services/api/stats/module"
	eventsmod "landingrouter/internal/services/events/module"
	"landingrouter/internal/services/routingconf"
)

// Options are the API options
type Options struct {
	ServiceName string
	// Config is the root view, modules read their own prefixes
	Config  config.Conf
	Store   *store.Store
	Routing routingconf.Settings
	// LookupTimeout bounds registry calls of one diagnostics request
	LookupTimeout  time.Duration
	EnableSwagger  bool
	EnableProfiler bool

	// RateLimitRPS is the per client request rate on /api/v1; zero disables it
	RateLimitRPS float64
	CORSOrigins  []string
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg:    opt.Config,
		PG:     opt.Store.PG,
		CH:     opt.Store.CH,
		Policy: opt.Routing.Policy,
	}

	mods := []modkit.Module{
		metamod.New(deps, metamod.Options{ServiceName: opt.ServiceName, PrimaryDomain: opt.Routing.PrimaryDomain}),
		routingmod.New(deps, routingmod.Options{Fallback: opt.Routing.PrimaryDomain, LookupTimeout: opt.LookupTimeout}),
	}

	// routing stats need the events store
	if opt.Store.CH != nil {
		ev := eventsmod.New(deps, eventsmod.FromConfig(opt.Config))
		mods = append(mods, statsmod.New(ev.Events().Query))
	}

	// chi wants middleware before any route
	r.Use(middleware.Heartbeat("/health"))
	swaggerkit.Mount(r, "/api/v1", opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORS:      middleware.CORSOptions{AllowedOrigins: opt.CORSOrigins},
		RateLimit: middleware.RateLimitOptions{RPS: opt.RateLimitRPS},
	})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}
