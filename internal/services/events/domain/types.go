// Package domain defines the types and ports of the routing events service
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Table is the clickhouse table events land in
const Table = "routing_events"

// RoutingEvent records how one edge request was routed
type RoutingEvent struct {
	ID           uuid.UUID `json:"id"`
	At           time.Time `json:"at"`
	Host         string    `json:"host"`
	Domain       string    `json:"domain"`
	Subdomain    string    `json:"subdomain,omitempty"`
	Handler      string    `json:"handler"`
	UsedFallback string    `json:"used_fallback"`
	Issues       []string  `json:"issues"`
	Routable     bool      `json:"routable"`
	Status       int       `json:"status"`
	ElapsedUS    int64     `json:"elapsed_us"`
}

// Window defines a time range [Since, Until)
type Window struct {
	Since time.Time
	Until time.Time
}

// AfterKey is the keyset cursor for listing events newest first
type AfterKey struct {
	At time.Time
	ID uuid.UUID
}

// IsZero reports whether the cursor is unset
func (k AfterKey) IsZero() bool { return k.At.IsZero() && k.ID == uuid.Nil }

// Filters narrow event queries, zero values match everything
type Filters struct {
	Domain       string
	Host         string
	Handler      string
	OnlyFailures bool
}

// AggByDomainRow counts requests per matched domain
type AggByDomainRow struct {
	Domain     string
	Requests   int64
	Unroutable int64
	Fallbacks  int64
	P95US      float64
}

// AggByIssueRow counts how often an issue was reported
type AggByIssueRow struct {
	Issue    string
	Requests int64
	Hosts    int64
}
