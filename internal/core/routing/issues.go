package routing

import (
	"strings"

	"landingrouter/internal/core/hostname"
)

// Issue is a human readable routing problem; values are stable strings
type Issue string

const (
	IssueInvalidHost         Issue = "Hostname is not a valid domain"
	IssueInvalidSubdomain    Issue = "Invalid subdomain type"
	IssueDomainNotFound      Issue = "Domain not found in database"
	IssuePrimaryNotFound     Issue = "PRIMARY_DOMAIN is configured but not found in database"
	IssueNoTLDFallback       Issue = "No PRIMARY_DOMAIN configured and no matching domain found for TLD-only request"
	IssueDomainInactive      Issue = "Domain is inactive."
	IssueNotVerified         Issue = "Domain verification is not complete."
	IssueNoRootPage          Issue = "No root page configured for this domain."
	IssueRootPageInactive    Issue = "Root page exists but is not active."
	IssueRegistryUnavailable Issue = "Domain registry lookup failed"
)

// recommendations is the fixed issue to remediation table
// IssueInvalidSubdomain is derived from the policy in Recommend
var recommendations = map[Issue]string{
	IssueInvalidHost:         "Access the site through its registered domain name, not an IP address or malformed host",
	IssueDomainNotFound:      "Add the domain via the admin dashboard and complete verification",
	IssuePrimaryNotFound:     "Register the PRIMARY_DOMAIN value in the admin dashboard or correct the variable",
	IssueNoTLDFallback:       "Set PRIMARY_DOMAIN to the domain that should serve TLD-only requests",
	IssueDomainInactive:      "Activate the domain in the admin dashboard",
	IssueNotVerified:         "Complete DNS verification for the domain",
	IssueNoRootPage:          "Create a root page via the admin dashboard",
	IssueRootPageInactive:    "Activate the root page in the admin dashboard",
	IssueRegistryUnavailable: "Check database connectivity and retry the test",
}

// Recommend maps issues to remediations in order; unknown issues get none
func Recommend(policy hostname.Policy, issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, is := range issues {
		if is == IssueInvalidSubdomain {
			out = append(out, "Use one of the supported subdomains: "+strings.Join(policy.Subdomains, ", "))
			continue
		}
		if rec, ok := recommendations[is]; ok {
			out = append(out, rec)
		}
	}
	return out
}
