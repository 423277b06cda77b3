// Package routing resolves parsed hosts to registered domains and builds routing diagnostics
// The package is pure apart from calls on the injected Registry
package routing

import "context"

// VerificationStatus mirrors the registry verification column
type VerificationStatus string

const (
	// VerificationPending means DNS verification has not completed yet
	VerificationPending VerificationStatus = "pending"

	// VerificationActive means the domain is verified
	VerificationActive VerificationStatus = "active"

	// VerificationInactive means verification was revoked or lapsed
	VerificationInactive VerificationStatus = "inactive"

	// VerificationError means the last verification attempt failed
	VerificationError VerificationStatus = "error"
)

// DomainRecord is the registry view of one domain; read only here
type DomainRecord struct {
	Name                string             `json:"name"`
	IsActive            bool               `json:"is_active"`
	VerificationStatus  VerificationStatus `json:"verification_status"`
	HasRootPage         bool               `json:"has_root_page"`
	RootPageActive      bool               `json:"root_page_active"`
	RedirectWWWToNonWWW bool               `json:"redirect_www_to_non_www"`
}

// Registry is the Domain Registry lookup contract
// names passed in are already normalized by the caller
type Registry interface {
	LookupByExactName(ctx context.Context, name string) (DomainRecord, bool, error)
	// LookupByTLD returns the lexicographically first domain whose last label is tld
	LookupByTLD(ctx context.Context, tld string) (DomainRecord, bool, error)
}
