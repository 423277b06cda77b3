// Package http is the edge middleware that routes requests by Host and the site handler behind it
package http

import (
	"context"
	"net"
	stdhttp "net/http"
	"strings"
	"time"

	"landingrouter/internal/core/routing"
	perr "landingrouter/internal/platform/errors"
	"landingrouter/internal/platform/logger"
	phttp "landingrouter/internal/platform/net/http"
	edgesvc "landingrouter/internal/services/edge/service"
	evdom "landingrouter/internal/services/events/domain"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Options tune the edge middleware
type Options struct {
	// TrustForwardedHost reads X-Forwarded-Host and X-Forwarded-Proto, only behind a trusted proxy
	TrustForwardedHost bool
	// Sink receives one event per routed request, nil disables events
	Sink evdom.SinkPort
	// Skip lists path prefixes served without host routing, e.g. /health
	Skip []string
}

type ctxKey struct{}

// Routed is what the middleware hands to the site handler
type Routed struct {
	Host   string         `json:"host"`
	Target routing.Target `json:"target"`
	// Rest is the original request path below the site root
	Rest string `json:"rest"`
	// Issues are non fatal problems found while routing, e.g. an inactive root page
	Issues []routing.Issue `json:"issues"`
}

// RoutedFrom returns the routing decision stored by the middleware
func RoutedFrom(ctx context.Context) (Routed, bool) {
	v, ok := ctx.Value(ctxKey{}).(Routed)
	return v, ok
}

// unroutableBody is the data of a 404 or 503 envelope
type unroutableBody struct {
	Host            string          `json:"host"`
	Issues          []routing.Issue `json:"issues"`
	Recommendations []string        `json:"recommendations"`
}

// Router routes each request by host: redirect, rewrite under /_sites or reject
func Router(svc edgesvc.RoutePort, o Options) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			for _, p := range o.Skip {
				if strings.HasPrefix(r.URL.Path, p) {
					next.ServeHTTP(w, r)
					return
				}
			}

			start := time.Now()
			host := requestHost(r, o.TrustForwardedHost)
			rep := svc.Route(r.Context(), host)
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				if o.Sink == nil {
					return
				}
				status := ww.Status()
				// a panic unwinds through here before the recoverer writes its 500
				if v := recover(); v != nil {
					if status == 0 {
						status = stdhttp.StatusInternalServerError
					}
					o.Sink.Emit(event(start, host, rep, status))
					panic(v)
				}
				o.Sink.Emit(event(start, host, rep, status))
			}()

			switch {
			case rep.Error != "":
				logger.C(r.Context()).Warn().Str("host", host).Str("error", rep.Error).Msg("edge registry lookup failed")
				phttp.RespondError(ww, r, perr.Unavailablef("%s", routing.IssueRegistryUnavailable), body(host, rep))
				return
			case !rep.Routable:
				phttp.RespondError(ww, r, perr.Unroutablef("no site for %s", host), body(host, rep))
				return
			}

			if bare := edgesvc.RedirectHost(rep); bare != "" {
				stdhttp.Redirect(ww, r, redirectURL(r, bare, o.TrustForwardedHost), stdhttp.StatusMovedPermanently)
				return
			}

			routed := Routed{Host: host, Target: rep.Target, Rest: r.URL.Path, Issues: rep.Resolution.Issues}
			r2 := r.Clone(context.WithValue(r.Context(), ctxKey{}, routed))
			r2.URL.Path = rewrite(rep.Target.Path, r.URL.Path)
			r2.URL.RawPath = ""
			next.ServeHTTP(ww, r2)
		})
	}
}

func body(host string, rep routing.Report) unroutableBody {
	return unroutableBody{Host: host, Issues: rep.Resolution.Issues, Recommendations: rep.Resolution.Recommendations}
}

// requestHost is Host unless a trusted proxy set X-Forwarded-Host; the first value wins
func requestHost(r *stdhttp.Request, trust bool) string {
	if trust {
		if fh := r.Header.Get("X-Forwarded-Host"); fh != "" {
			first, _, _ := strings.Cut(fh, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
	}
	return r.Host
}

// rewrite joins the site root and the request path, "/" maps to the root itself
func rewrite(root, path string) string {
	if path == "" || path == "/" {
		return root
	}
	return root + path
}

// redirectURL keeps scheme, port, path and query while swapping in the bare host
func redirectURL(r *stdhttp.Request, bare string, trust bool) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if trust {
		if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
			scheme = p
		}
	}
	if _, port, err := net.SplitHostPort(requestHost(r, trust)); err == nil && port != "" {
		bare = net.JoinHostPort(bare, port)
	}
	return scheme + "://" + bare + r.URL.RequestURI()
}

func event(start time.Time, host string, rep routing.Report, status int) evdom.RoutingEvent {
	issues := make([]string, 0, len(rep.Resolution.Issues))
	for _, is := range rep.Resolution.Issues {
		issues = append(issues, string(is))
	}
	if status == 0 {
		status = stdhttp.StatusOK
	}
	return evdom.RoutingEvent{
		ID:           uuid.New(),
		At:           start.UTC(),
		Host:         host,
		Domain:       rep.Target.Domain,
		Subdomain:    rep.Target.Subdomain,
		Handler:      string(rep.Target.Handler),
		UsedFallback: string(rep.Resolution.UsedFallback),
		Issues:       issues,
		Routable:     rep.Routable,
		Status:       status,
		ElapsedUS:    time.Since(start).Microseconds(),
	}
}
