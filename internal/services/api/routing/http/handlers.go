// Package http provides http transport for routing diagnostics
package http

import (
	stdhttp "net/http"

	"landingrouter/internal/modkit/httpkit"
	"landingrouter/internal/services/api/routing/domain"
	svc "landingrouter/internal/services/api/routing/service"
)

// Register mounts the diagnostics endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON(r, "/test", h.test)
	httpkit.PostJSON(r, "/test-tld", h.testTLD)
	httpkit.PostJSON(r, "/test-www", h.testWWW)
}

type handlers struct{ svc svc.Service }

// reply keeps the partial report in the envelope when the registry failed
func reply(rep domain.Report, err error) (any, error) {
	if err != nil {
		return httpkit.ErrorWith(err, rep), nil
	}
	return rep, nil
}

// swagger:route POST /routing/test Routing routingTest
// @Summary Test how a host routes
// @Tags Routing
// @Accept json
// @Produce json
// @Param payload body domain.HostInput true "Host"
// @Success 200 {object} domain.Report "ok"
// @Router /routing/test [post]
func (h *handlers) test(r *stdhttp.Request, in domain.HostInput) (any, error) {
	return reply(h.svc.Test(r.Context(), in))
}

// swagger:route POST /routing/test-tld Routing routingTestTLD
// @Summary Test the TLD-only variant of a domain
// @Tags Routing
// @Accept json
// @Produce json
// @Param payload body domain.HostInput true "Domain"
// @Success 200 {object} domain.Report "ok"
// @Router /routing/test-tld [post]
func (h *handlers) testTLD(r *stdhttp.Request, in domain.HostInput) (any, error) {
	return reply(h.svc.TestTLD(r.Context(), in))
}

// swagger:route POST /routing/test-www Routing routingTestWWW
// @Summary Test the www variant of a domain
// @Tags Routing
// @Accept json
// @Produce json
// @Param payload body domain.HostInput true "Domain"
// @Success 200 {object} domain.Report "ok"
// @Router /routing/test-www [post]
func (h *handlers) testWWW(r *stdhttp.Request, in domain.HostInput) (any, error) {
	return reply(h.svc.TestWWW(r.Context(), in))
}
