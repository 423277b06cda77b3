// Package service resolves inbound edge hosts with the shared routing core
package service

import (
	"context"
	"time"

	"landingrouter/internal/core/hostname"
	"landingrouter/internal/core/routing"
)

// Config controls edge resolution
type Config struct {
	// Fallback is ROUTING_PRIMARY_DOMAIN
	Fallback string
	Policy   hostname.Policy
	// LookupTimeout bounds the registry calls of one request
	LookupTimeout time.Duration
}

// RoutePort is what the edge middleware consumes
type RoutePort interface {
	Route(ctx context.Context, host string) routing.Report
}

// Svc implements RoutePort
type Svc struct {
	diag    routing.Diagnostics
	timeout time.Duration
}

// New constructs the edge service over reg
func New(reg routing.Registry, cfg Config) *Svc {
	if reg == nil {
		panic("edge.Service requires a non nil registry")
	}
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = 2 * time.Second
	}
	return &Svc{
		diag:    routing.Diagnostics{Registry: reg, Fallback: cfg.Fallback, Policy: cfg.Policy},
		timeout: cfg.LookupTimeout,
	}
}

// Route resolves host under the lookup timeout
func (s *Svc) Route(ctx context.Context, host string) routing.Report {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.diag.Diagnose(ctx, host)
}

// RedirectHost returns the bare host a www request should move to, or ""
func RedirectHost(rep routing.Report) string {
	m := rep.Resolution.Matched
	if m == nil || !m.RedirectWWWToNonWWW || !rep.Parsed.HadWWWPrefix || !rep.Routable {
		return ""
	}
	return rep.Parsed.Normalized
}
