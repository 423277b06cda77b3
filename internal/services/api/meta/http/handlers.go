// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"landingrouter/internal/core/hostname"
	"landingrouter/internal/core/version"
	"landingrouter/internal/modkit/httpkit"
)

// Pinger is satisfied by store adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName   string
	StartedAt     time.Time
	PrimaryDomain string
	Policy        hostname.Policy

	// PG and CH are probed when they implement Pinger, nil means skipped
	PG any
	CH any
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

// ReadyTimeout bounds the dependency probes of /ready
var ReadyTimeout = 2 * time.Second

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/policy", h.policy)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"landingrouter-api"`
	Started string `json:"started"  example:"2026-09-03T13:00:00Z"`
	Now     string `json:"now"      example:"2026-09-03T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-09-03T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"landingrouter-api"`
	Started string `json:"started" example:"2026-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// PolicyResponse is the routing policy this process applies
type PolicyResponse struct {
	PrimaryDomain   string   `json:"primary_domain,omitempty" example:"example.com"`
	Subdomains      []string `json:"subdomains"       example:"landing,app"`
	PreviewSuffixes []string `json:"preview_suffixes" example:".vercel.app"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), ReadyTimeout)
	defer cancel()

	check := func(name string, c any) ReadyCheck {
		if c == nil {
			return ReadyCheck{Name: name, Status: "skipped"}
		}
		if p, ok := c.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
			}
			return ReadyCheck{Name: name, Status: "ok"}
		}
		return ReadyCheck{Name: name, Status: "unknown"}
	}

	checks := []ReadyCheck{check("pg", h.deps.PG), check("ch", h.deps.CH)}
	return ReadyResponse{
		Status: overall(checks),
		Checks: checks,
		Now:    h.now().UTC().Format(time.RFC3339),
	}, nil
}

// overall is fail when any probe failed and degraded when any was not ok
// the registry is required so a skipped pg is degraded too
func overall(checks []ReadyCheck) string {
	status := "ok"
	for _, c := range checks {
		switch c.Status {
		case "fail":
			return "fail"
		case "ok":
		case "skipped":
			if c.Name == "pg" {
				status = "degraded"
			}
		default:
			status = "degraded"
		}
	}
	return status
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(h.now().Sub(h.deps.StartedAt) / time.Second),
	}, nil
}

// swagger:route GET /meta/policy Meta metaPolicy
// @Summary Subdomain allow-list, preview suffixes and primary domain
// @Tags Meta
// @Produce json
// @Success 200 {object} PolicyResponse
// @Router /meta/policy [get]
func (h *handlers) policy(_ *http.Request) (any, error) {
	return PolicyResponse{
		PrimaryDomain:   h.deps.PrimaryDomain,
		Subdomains:      append([]string{}, h.deps.Policy.Subdomains...),
		PreviewSuffixes: append([]string{}, h.deps.Policy.PreviewSuffixes...),
	}, nil
}
