// Package http provides http transport for routing stats
package http

import (
	stdhttp "net/http"

	"landingrouter/internal/modkit/httpkit"
	"landingrouter/internal/services/api/stats/domain"
	svc "landingrouter/internal/services/api/stats/service"
)

// Register mounts stats endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// newest routing events with a keyset cursor
	httpkit.PostJSON[domain.RecentInput](r, "/recent", h.recent)

	// requests per matched domain
	httpkit.PostJSON[domain.ByDomainInput](r, "/domains", h.byDomain)

	// issue frequency
	httpkit.PostJSON[domain.ByIssueInput](r, "/issues", h.byIssue)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /stats/recent Stats statsRecent
// @Summary Recent routing events
// @Tags Stats
// @Accept json
// @Produce json
// @Param payload body domain.RecentInput true "Query"
// @Success 200 {object} domain.RecentPage "ok"
// @Router /stats/recent [post]
func (h *handlers) recent(r *stdhttp.Request, in domain.RecentInput) (any, error) {
	return h.svc.Recent(r.Context(), in)
}

// swagger:route POST /stats/domains Stats statsByDomain
// @Summary Requests per domain
// @Tags Stats
// @Accept json
// @Produce json
// @Param payload body domain.ByDomainInput true "Query"
// @Success 200 {array} domain.ByDomainRow "ok"
// @Router /stats/domains [post]
func (h *handlers) byDomain(r *stdhttp.Request, in domain.ByDomainInput) (any, error) {
	return h.svc.ByDomain(r.Context(), in)
}

// swagger:route POST /stats/issues Stats statsByIssue
// @Summary Routing issues by frequency
// @Tags Stats
// @Accept json
// @Produce json
// @Param payload body domain.ByIssueInput true "Query"
// @Success 200 {array} domain.ByIssueRow "ok"
// @Router /stats/issues [post]
func (h *handlers) byIssue(r *stdhttp.Request, in domain.ByIssueInput) (any, error) {
	return h.svc.ByIssue(r.Context(), in)
}
