package routing

import (
	"context"
	"strings"

	"landingrouter/internal/core/hostname"
)

// Variant names a diagnostics input transformation
type Variant string

const (
	// VariantStandard tests the host as given
	VariantStandard Variant = "standard"

	// VariantTLD derives the last label of a full domain and tests only that
	VariantTLD Variant = "tld"

	// VariantWWW forces a www prefix onto a domain and tests the result
	VariantWWW Variant = "www"
)

// Handler names the rendering target a host routes to
type Handler string

const (
	// HandlerRootDomain serves the root page of a domain
	HandlerRootDomain Handler = "root-domain"

	// HandlerSubdomain serves content under an allow-listed subdomain
	HandlerSubdomain Handler = "subdomain"
)

// SitesPrefix is the internal path prefix requests are rewritten under
const SitesPrefix = "/_sites"

// Target is the routed-to handler and rewritten path
type Target struct {
	Handler   Handler `json:"handler"`
	Domain    string  `json:"domain,omitempty"`
	Subdomain string  `json:"subdomain,omitempty"`
	Path      string  `json:"path,omitempty"`
}

// TargetFor picks the handler for p given a resolution
// routable is false unless an active record matched
func TargetFor(p hostname.Parsed, res Result) (t Target, routable bool) {
	t.Handler = HandlerRootDomain
	if p.HasSubdomain() {
		t.Handler = HandlerSubdomain
		t.Subdomain = p.Subdomain
	}
	if res.Matched == nil {
		t.Domain = res.LookupKey
		return t, false
	}
	t.Domain = res.Matched.Name
	t.Path = SitesPrefix + "/" + t.Domain
	if t.Subdomain != "" {
		t.Path += "/" + t.Subdomain
	}
	return t, res.Matched.IsActive
}

// Report is one diagnostics run
type Report struct {
	Variant    Variant         `json:"variant"`
	Input      string          `json:"input"`
	TestedHost string          `json:"tested_host"`
	Parsed     hostname.Parsed `json:"parsed"`
	Resolution Result          `json:"resolution"`
	Target     Target          `json:"target"`
	Routable   bool            `json:"routable"`
	Healthy    bool            `json:"healthy"`

	// Error explains a registry failure; empty otherwise
	Error string `json:"error,omitempty"`
}

// Diagnostics composes parse and resolve for operational tooling
// it only reads from Registry and is safe for concurrent use
type Diagnostics struct {
	Registry Registry
	Fallback string
	Policy   hostname.Policy
}

func (d Diagnostics) resolver() Resolver { return Resolver{Policy: d.Policy} }

// Diagnose runs the standard test on rawHost
func (d Diagnostics) Diagnose(ctx context.Context, rawHost string) Report {
	return d.run(ctx, VariantStandard, rawHost, rawHost)
}

// DiagnoseTLD tests only the last label of domain
func (d Diagnostics) DiagnoseTLD(ctx context.Context, domain string) Report {
	p := hostname.ParseWith(d.resolver().policy(), domain)
	return d.run(ctx, VariantTLD, domain, p.TLD())
}

// DiagnoseWWW tests domain with a forced www prefix
func (d Diagnostics) DiagnoseWWW(ctx context.Context, domain string) Report {
	p := hostname.ParseWith(d.resolver().policy(), domain)
	base := p.Normalized
	if base == "" {
		base = strings.TrimSpace(domain)
	}
	return d.run(ctx, VariantWWW, domain, "www."+base)
}

// Run dispatches by variant; unknown variants run the standard test
func (d Diagnostics) Run(ctx context.Context, v Variant, input string) Report {
	switch v {
	case VariantTLD:
		return d.DiagnoseTLD(ctx, input)
	case VariantWWW:
		return d.DiagnoseWWW(ctx, input)
	default:
		return d.Diagnose(ctx, input)
	}
}

func (d Diagnostics) run(ctx context.Context, v Variant, input, tested string) Report {
	r := d.resolver()
	p := hostname.ParseWith(r.policy(), tested)
	res := r.Resolve(ctx, p, d.Registry, d.Fallback)
	target, routable := TargetFor(p, res)

	rep := Report{
		Variant:    v,
		Input:      input,
		TestedHost: tested,
		Parsed:     p,
		Resolution: res,
		Target:     target,
		Routable:   routable,
		Healthy:    routable && len(res.Issues) == 0,
	}
	if res.Err != nil {
		rep.Error = string(IssueRegistryUnavailable) + ": " + res.Err.Error()
	}
	return rep
}
