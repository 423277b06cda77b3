package http

import (
	stdhttp "net/http"
	"strings"

	"landingrouter/internal/core/routing"
	perr "landingrouter/internal/platform/errors"
	phttp "landingrouter/internal/platform/net/http"
)

// SiteResponse is what the site handler renders for a routed request
type SiteResponse struct {
	Host      string          `json:"host"`
	Handler   routing.Handler `json:"handler"`
	Domain    string          `json:"domain"`
	Subdomain string          `json:"subdomain,omitempty"`
	SitePath  string          `json:"site_path"`
	Path      string          `json:"path"`
	Issues    []routing.Issue `json:"issues"`
}

// RegisterSites mounts the site handler under /_sites
// direct requests that skipped the edge middleware get 404
func RegisterSites(r phttp.Router) {
	h := phttp.JSONHandlerNoBody(site)
	r.Handle(routing.SitesPrefix, stdhttp.HandlerFunc(h))
	r.Handle(routing.SitesPrefix+"/*", stdhttp.HandlerFunc(h))
}

func site(r *stdhttp.Request) (any, error) {
	rt, ok := RoutedFrom(r.Context())
	if !ok || !strings.HasPrefix(r.URL.Path, rt.Target.Path) {
		return nil, perr.Newf(perr.ErrorCodeNotFound, "no site at %s", r.URL.Path)
	}
	issues := rt.Issues
	if issues == nil {
		issues = []routing.Issue{}
	}
	return SiteResponse{
		Host:      rt.Host,
		Handler:   rt.Target.Handler,
		Domain:    rt.Target.Domain,
		Subdomain: rt.Target.Subdomain,
		SitePath:  r.URL.Path,
		Path:      rt.Rest,
		Issues:    issues,
	}, nil
}
