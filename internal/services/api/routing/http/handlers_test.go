package http_test

import (
	"context"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"landingrouter/internal/core/hostname"
	"landingrouter/internal/core/routing"
	"landingrouter/internal/modkit/httpkit"
	phttp "landingrouter/internal/platform/net/http"
	kit "landingrouter/internal/platform/testkit"
	routinghttp "landingrouter/internal/services/api/routing/http"
	"landingrouter/internal/services/api/routing/service"

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

type envelope struct {
	StatusCode int            `json:"status_code"`
	Code       int            `json:"code"`
	Error      string         `json:"error"`
	Data       routing.Report `json:"data"`
}

func newServer(t *testing.T, reg routing.Registry) stdhttp.Handler {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	s := service.NewWithRegistry(reg, "", hostname.DefaultPolicy)
	httpkit.MountAPIV1(r, nil, func(api httpkit.Router) {
		api.Route("/routing", func(rr httpkit.Router) { routinghttp.Register(rr, s) })
	})
	return r.Mux()
}

func post(h stdhttp.Handler, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	return rec
}

func TestEndpoints(t *testing.T) {
	h := newServer(t, registry{recs: map[string]routing.DomainRecord{
		"example.com": {Name: "example.com", IsActive: true, VerificationStatus: routing.VerificationActive, HasRootPage: true, RootPageActive: true},
	}})

	tests := []struct {
		path     string
		host     string
		tested   string
		variant  routing.Variant
		healthy  bool
		wantPath string
	}{
		{"/api/v1/routing/test", "landing.example.com", "landing.example.com", routing.VariantStandard, true, "/_sites/example.com/landing"},
		{"/api/v1/routing/test", "xyz.example.com", "xyz.example.com", routing.VariantStandard, false, "/_sites/example.com"},
		{"/api/v1/routing/test-tld", "example.com", "com", routing.VariantTLD, true, "/_sites/example.com"},
		{"/api/v1/routing/test-www", "example.com", "www.example.com", routing.VariantWWW, true, "/_sites/example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.path+" "+tt.host, func(t *testing.T) {
			rec := post(h, tt.path, `{"host":"`+tt.host+`"}`)
			if rec.Code != stdhttp.StatusOK {
				t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
			}
			env := kit.DecodeJSON[envelope](t, rec.Body.Bytes())
			rep := env.Data
			if rep.Variant != tt.variant || rep.TestedHost != tt.tested || rep.Healthy != tt.healthy || rep.Target.Path != tt.wantPath {
				t.Fatalf("report = %+v", rep)
			}
		})
	}
}

func TestEndpoints_TLDWithoutMatches(t *testing.T) {
	h := newServer(t, registry{})
	rec := post(h, "/api/v1/routing/test", `{"host":"com"}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	rep := kit.DecodeJSON[envelope](t, rec.Body.Bytes()).Data
	if len(rep.Resolution.Issues) != 1 || rep.Resolution.Issues[0] != routing.IssueNoTLDFallback {
		t.Fatalf("issues = %v", rep.Resolution.Issues)
	}
	if len(rep.Resolution.Recommendations) != 1 {
		t.Fatalf("recommendations = %v", rep.Resolution.Recommendations)
	}
}

func TestEndpoints_BadInput(t *testing.T) {
	h := newServer(t, registry{})
	for _, body := range []string{
		`{}`,
		`{"host":""}`,
		`{"host":"` + strings.Repeat("a", 254) + `"}`,
		`{"host":"example.com","extra":1}`,
		`not json`,
	} {
		if rec := post(h, "/api/v1/routing/test", body); rec.Code != stdhttp.StatusBadRequest {
			t.Fatalf("%.40s: status = %d", body, rec.Code)
		}
	}
}

func TestEndpoints_RegistryDown(t *testing.T) {
	h := newServer(t, registry{err: errors.New("connection refused")})
	rec := post(h, "/api/v1/routing/test", `{"host":"example.com"}`)
	if rec.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	env := kit.DecodeJSON[envelope](t, rec.Body.Bytes())
	if env.Data.TestedHost != "example.com" || !strings.Contains(env.Data.Error, "connection refused") {
		t.Fatalf("partial report missing: %+v", env.Data)
	}
	kit.MustContain(t, env.Error, string(routing.IssueRegistryUnavailable))
}
