package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"landingrouter/internal/core/hostname"
	"landingrouter/internal/core/routing"
	phttp "landingrouter/internal/platform/net/http"
	"landingrouter/internal/platform/net/middleware"
	kit "landingrouter/internal/platform/testkit"
	edgesvc "landingrouter/internal/services/edge/service"
	evdom "landingrouter/internal/services/events/domain"

	"github.com/go-chi/chi/v5"
)

type registry struct {
	recs map[string]routing.DomainRecord
	err  error
}

func (m registry) LookupByExactName(_ context.Context, name string) (routing.DomainRecord, bool, error) {
	r, ok := m.recs[name]
	return r, ok, m.err
}

func (m registry) LookupByTLD(context.Context, string) (routing.DomainRecord, bool, error) {
	return routing.DomainRecord{}, false, m.err
}

type sink struct {
	mu  sync.Mutex
	evs []evdom.RoutingEvent
}

func (s *sink) Emit(ev evdom.RoutingEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evs = append(s.evs, ev)
}

func (s *sink) last(t *testing.T) evdom.RoutingEvent {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.evs) == 0 {
		t.Fatalf("no event emitted")
	}
	return s.evs[len(s.evs)-1]
}

func record(name string, redirect bool) routing.DomainRecord {
	return routing.DomainRecord{
		Name: name, IsActive: true, VerificationStatus: routing.VerificationActive,
		HasRootPage: true, RootPageActive: true, RedirectWWWToNonWWW: redirect,
	}
}

func newEdge(t *testing.T, reg routing.Registry, trust bool) (stdhttp.Handler, *sink) {
	t.Helper()
	s := &sink{}
	svc := edgesvc.New(reg, edgesvc.Config{Policy: hostname.DefaultPolicy, LookupTimeout: time.Second})
	r := phttp.AdaptChi(chi.NewRouter())
	r.Use(Router(svc, Options{TrustForwardedHost: trust, Sink: s, Skip: []string{"/health"}}))
	r.Get("/health", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(stdhttp.StatusNoContent) })
	RegisterSites(r)
	return r.Mux(), s
}

func get(h stdhttp.Handler, host, target string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(stdhttp.MethodGet, target, nil)
	req.Host = host
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func healthyRegistry() registry {
	return registry{recs: map[string]routing.DomainRecord{
		"example.com":  record("example.com", false),
		"redirect.com": record("redirect.com", true),
	}}
}

func TestRouter_RewritesToSite(t *testing.T) {
	t.Parallel()
	h, s := newEdge(t, healthyRegistry(), false)

	rec := get(h, "landing.example.com", "/offers/spring?ref=x", nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("code = %d body %s", rec.Code, rec.Body.String())
	}
	env := kit.DecodeJSON[struct {
		Data SiteResponse `json:"data"`
	}](t, rec.Body.Bytes())
	got := env.Data
	if got.Handler != routing.HandlerSubdomain || got.Domain != "example.com" || got.Subdomain != "landing" {
		t.Fatalf("site = %+v", got)
	}
	if got.SitePath != "/_sites/example.com/landing/offers/spring" || got.Path != "/offers/spring" {
		t.Fatalf("paths = %q %q", got.SitePath, got.Path)
	}

	ev := s.last(t)
	if ev.Host != "landing.example.com" || ev.Status != stdhttp.StatusOK || !ev.Routable || ev.Handler != "subdomain" || ev.UsedFallback != "none" {
		t.Fatalf("event = %+v", ev)
	}
}

func TestRouter_RootPathIsSiteRoot(t *testing.T) {
	t.Parallel()
	h, _ := newEdge(t, healthyRegistry(), false)

	rec := get(h, "www.example.com:8080", "/", nil)
	env := kit.DecodeJSON[struct {
		Data SiteResponse `json:"data"`
	}](t, rec.Body.Bytes())
	if rec.Code != stdhttp.StatusOK || env.Data.SitePath != "/_sites/example.com" || env.Data.Handler != routing.HandlerRootDomain {
		t.Fatalf("code=%d site=%+v", rec.Code, env.Data)
	}
}

func TestRouter_WWWRedirect(t *testing.T) {
	t.Parallel()
	h, s := newEdge(t, healthyRegistry(), false)

	rec := get(h, "www.redirect.com", "/a/b?c=d", nil)
	if rec.Code != stdhttp.StatusMovedPermanently {
		t.Fatalf("code = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "http://redirect.com/a/b?c=d" {
		t.Fatalf("location = %q", loc)
	}
	if ev := s.last(t); ev.Status != stdhttp.StatusMovedPermanently {
		t.Fatalf("event status = %d", ev.Status)
	}

	// bare host is served, not redirected
	if rec := get(h, "redirect.com", "/", nil); rec.Code != stdhttp.StatusOK {
		t.Fatalf("bare code = %d", rec.Code)
	}
}

func TestRouter_Unroutable(t *testing.T) {
	t.Parallel()
	inactive := record("off.com", false)
	inactive.IsActive = false
	reg := healthyRegistry()
	reg.recs["off.com"] = inactive
	h, s := newEdge(t, reg, false)

	for host, issue := range map[string]routing.Issue{
		"missing.dev": routing.IssueDomainNotFound,
		"off.com":     routing.IssueDomainInactive,
		"10.0.0.1":    routing.IssueInvalidHost,
	} {
		rec := get(h, host, "/", nil)
		if rec.Code != stdhttp.StatusNotFound {
			t.Fatalf("%s: code = %d", host, rec.Code)
		}
		kit.MustContain(t, rec.Body.String(), string(issue))
		if ev := s.last(t); ev.Routable || ev.Status != stdhttp.StatusNotFound || ev.Issues[0] != string(issue) {
			t.Fatalf("%s: event = %+v", host, ev)
		}
	}
}

func TestRouter_RegistryDown(t *testing.T) {
	t.Parallel()
	h, s := newEdge(t, registry{err: errors.New("dial tcp: connection refused")}, false)

	rec := get(h, "example.com", "/", nil)
	if rec.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("code = %d", rec.Code)
	}
	kit.MustContain(t, rec.Body.String(), string(routing.IssueRegistryUnavailable))
	if ev := s.last(t); ev.Status != stdhttp.StatusServiceUnavailable {
		t.Fatalf("event = %+v", ev)
	}
}

func TestRouter_ForwardedHost(t *testing.T) {
	t.Parallel()
	hdr := map[string]string{"X-Forwarded-Host": "www.redirect.com, proxy.internal", "X-Forwarded-Proto": "https"}

	untrusted, _ := newEdge(t, healthyRegistry(), false)
	if rec := get(untrusted, "proxy.internal", "/", hdr); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("untrusted code = %d", rec.Code)
	}

	trusted, _ := newEdge(t, healthyRegistry(), true)
	rec := get(trusted, "proxy.internal", "/x", hdr)
	if rec.Code != stdhttp.StatusMovedPermanently || rec.Header().Get("Location") != "https://redirect.com/x" {
		t.Fatalf("code=%d location=%q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRouter_SkipAndDirectSiteAccess(t *testing.T) {
	t.Parallel()
	h, s := newEdge(t, healthyRegistry(), false)

	if rec := get(h, "anything", "/health", nil); rec.Code != stdhttp.StatusNoContent {
		t.Fatalf("health code = %d", rec.Code)
	}
	if len(s.evs) != 0 {
		t.Fatalf("skipped paths must not emit events")
	}

	// the site handler refuses requests the middleware did not route
	r := phttp.AdaptChi(chi.NewRouter())
	RegisterSites(r)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/_sites/example.com", nil))
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("direct code = %d", rec.Code)
	}
}

func TestRedirectURL_KeepsPort(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(stdhttp.MethodGet, "/p?q=1", nil)
	req.Host = "www.example.com:8443"
	if got := redirectURL(req, "example.com", false); got != "http://example.com:8443/p?q=1" {
		t.Fatalf("redirectURL = %q", got)
	}
}

func TestRouter_PanicRecordsServerError(t *testing.T) {
	t.Parallel()
	s := &sink{}
	svc := edgesvc.New(healthyRegistry(), edgesvc.Config{Policy: hostname.DefaultPolicy, LookupTimeout: time.Second})
	r := phttp.AdaptChi(chi.NewRouter())
	r.Use(middleware.RecoverJSON, Router(svc, Options{Sink: s}))
	r.Handle(routing.SitesPrefix+"/*", stdhttp.HandlerFunc(func(stdhttp.ResponseWriter, *stdhttp.Request) {
		panic("site renderer blew up")
	}))

	rec := get(r.Mux(), "example.com", "/boom", nil)
	if rec.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("code = %d body %s", rec.Code, rec.Body.String())
	}
	if ev := s.last(t); ev.Status != stdhttp.StatusInternalServerError || ev.Host != "example.com" {
		t.Fatalf("event = %+v", ev)
	}
}
