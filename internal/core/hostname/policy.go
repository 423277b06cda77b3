package hostname

import "strings"

// Policy is the routing constant table shared by the edge router, the
// diagnostics service and the CLI. Treat values as read only once built
type Policy struct {
	// Subdomains is the allow-list of first labels routed to the subdomain handler
	Subdomains []string

	// PreviewSuffixes are platform-assigned preview host suffixes (leading dot included)
	// hosts ending in one of these never produce a subdomain candidate
	PreviewSuffixes []string
}

// DefaultPolicy is the production table
var DefaultPolicy = Policy{
	Subdomains:      []string{"landing", "app", "dashboard", "admin"},
	PreviewSuffixes: []string{".vercel.app", ".vercel.sh"},
}

// AllowsSubdomain reports whether label is in the allow-list
func (p Policy) AllowsSubdomain(label string) bool {
	for _, s := range p.Subdomains {
		if s == label {
			return true
		}
	}
	return false
}

// IsPreview reports whether host ends in a preview suffix
func (p Policy) IsPreview(host string) bool {
	for _, suf := range p.PreviewSuffixes {
		if strings.HasSuffix(host, suf) {
			return true
		}
	}
	return false
}
