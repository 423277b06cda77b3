package routing

import (
	"context"

	"landingrouter/internal/core/hostname"
)

// Fallback records which fallback path was taken when the literal lookup could not apply
type Fallback string

const (
	// FallbackNone means the host itself was looked up
	FallbackNone Fallback = "none"

	// FallbackPrimaryDomain means the configured PRIMARY_DOMAIN was looked up
	FallbackPrimaryDomain Fallback = "primary_domain_env"

	// FallbackTLDMatch means a registered domain sharing the TLD was looked up
	FallbackTLDMatch Fallback = "tld_matched_domain"
)

// Result is the outcome of resolving one parsed host
type Result struct {
	Matched         *DomainRecord `json:"matched_domain,omitempty"`
	LookupKey       string        `json:"lookup_key,omitempty"`
	UsedFallback    Fallback      `json:"used_fallback"`
	Issues          []Issue       `json:"issues"`
	Recommendations []string      `json:"recommendations"`

	// Err is the registry failure behind IssueRegistryUnavailable, if any
	Err error `json:"-"`
}

// Resolver applies the resolution policy; the zero value uses hostname.DefaultPolicy
type Resolver struct {
	Policy hostname.Policy
}

// Resolve resolves with the default policy
func Resolve(ctx context.Context, p hostname.Parsed, reg Registry, fallbackDomain string) Result {
	return Resolver{}.Resolve(ctx, p, reg, fallbackDomain)
}

func (r Resolver) policy() hostname.Policy {
	if len(r.Policy.Subdomains) == 0 && len(r.Policy.PreviewSuffixes) == 0 {
		return hostname.DefaultPolicy
	}
	return r.Policy
}

// Resolve picks the domain record for p
// order: literal host, parent of a rejected subdomain, PRIMARY_DOMAIN, TLD match
func (r Resolver) Resolve(ctx context.Context, p hostname.Parsed, reg Registry, fallbackDomain string) Result {
	pol := r.policy()
	res := Result{UsedFallback: FallbackNone, Issues: []Issue{}}
	if p.RejectedSubdomain != "" {
		res.Issues = append(res.Issues, IssueInvalidSubdomain)
	}

	fallback := hostname.ParseWith(pol, fallbackDomain).Normalized

	var (
		rec   DomainRecord
		found bool
		err   error
	)
	switch {
	case p.IsValidFormat:
		rec, found, err = r.lookupHost(ctx, p, reg, fallback, &res)
	case p.IsTLDOnly:
		rec, found, err = r.lookupTLDOnly(ctx, p, reg, fallback, &res)
	default:
		res.Issues = append(res.Issues, IssueInvalidHost)
	}

	switch {
	case err != nil:
		res.Err = err
		res.Issues = append(res.Issues, IssueRegistryUnavailable)
	case found:
		res.Matched = &rec
		res.Issues = append(res.Issues, recordIssues(rec)...)
	}

	res.Recommendations = Recommend(pol, res.Issues)
	return res
}

func (r Resolver) lookupHost(ctx context.Context, p hostname.Parsed, reg Registry, fallback string, res *Result) (DomainRecord, bool, error) {
	res.LookupKey = p.Apex()
	rec, found, err := reg.LookupByExactName(ctx, res.LookupKey)
	if err != nil || found {
		return rec, found, err
	}

	// a rejected first label still routes to the root handler of its parent
	if p.RejectedSubdomain != "" {
		res.LookupKey = p.Parent()
		rec, found, err = reg.LookupByExactName(ctx, res.LookupKey)
		if err != nil || found {
			return rec, found, err
		}
	}

	if p.IsPreview && fallback != "" {
		res.UsedFallback = FallbackPrimaryDomain
		res.LookupKey = fallback
		rec, found, err = reg.LookupByExactName(ctx, fallback)
		if err == nil && !found {
			res.Issues = append(res.Issues, IssuePrimaryNotFound)
		}
		return rec, found, err
	}

	res.Issues = append(res.Issues, IssueDomainNotFound)
	return rec, false, nil
}

func (r Resolver) lookupTLDOnly(ctx context.Context, p hostname.Parsed, reg Registry, fallback string, res *Result) (DomainRecord, bool, error) {
	if fallback != "" {
		res.UsedFallback = FallbackPrimaryDomain
		res.LookupKey = fallback
		rec, found, err := reg.LookupByExactName(ctx, fallback)
		if err == nil && !found {
			res.Issues = append(res.Issues, IssuePrimaryNotFound)
		}
		return rec, found, err
	}

	res.UsedFallback = FallbackTLDMatch
	res.LookupKey = p.TLD()
	rec, found, err := reg.LookupByTLD(ctx, res.LookupKey)
	if err == nil && !found {
		res.Issues = append(res.Issues, IssueNoTLDFallback)
	}
	return rec, found, err
}

// recordIssues checks a matched record; later checks only run once earlier ones pass
func recordIssues(rec DomainRecord) []Issue {
	if !rec.IsActive {
		return []Issue{IssueDomainInactive}
	}
	var out []Issue
	if rec.VerificationStatus != VerificationActive {
		out = append(out, IssueNotVerified)
	}
	switch {
	case !rec.HasRootPage:
		out = append(out, IssueNoRootPage)
	case !rec.RootPageActive:
		out = append(out, IssueRootPageInactive)
	}
	return out
}
