// Package domain holds DTOs for the routing stats http and service contracts
package domain

import evdom "landingrouter/internal/services/events/domain"

// Times are RFC3339; an empty range means the last 24 hours

// TimeRange defines a start and end time for queries
type TimeRange struct {
	Start string `json:"start,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00" example:"2026-08-01T00:00:00Z"`
	End   string `json:"end,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00" example:"2026-08-02T00:00:00Z"`
}

// RecentInput lists routing events newest first
type RecentInput struct {
	Range        TimeRange `json:"range"`
	Domain       string    `json:"domain,omitempty" validate:"omitempty,max=253" example:"example.com"`
	Host         string    `json:"host,omitempty" validate:"omitempty,host_input" example:"www.example.com"`
	OnlyFailures bool      `json:"only_failures,omitempty" example:"true"`
	Cursor       string    `json:"cursor,omitempty" validate:"omitempty,base64rawurl" example:"eyJhdCI6IjIwMjYtMDgtMDFUMDA6MDA6MDBaIn0"`
	Limit        int       `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"100"`
}

// RecentPage is one page of events and the cursor of the next, empty at the end
type RecentPage struct {
	Events []evdom.RoutingEvent `json:"events"`
	Next   string               `json:"next,omitempty"`
}

// Domain buckets

// ByDomainInput is the input for per domain counts
type ByDomainInput struct {
	Range   TimeRange `json:"range"`
	Handler string    `json:"handler,omitempty" validate:"omitempty,oneof=root-domain subdomain" example:"subdomain"`
	Limit   int       `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"20"`
}

// ByDomainRow represents a row in the ByDomain output
type ByDomainRow struct {
	Domain     string  `json:"domain" example:"example.com"`
	Requests   int64   `json:"requests" example:"1200"`
	Unroutable int64   `json:"unroutable" example:"3"`
	Fallbacks  int64   `json:"fallbacks" example:"40"`
	P95Ms      float64 `json:"p95_ms" example:"4.2"`
}

// Issue buckets

// ByIssueInput is the input for issue counts
type ByIssueInput struct {
	Range  TimeRange `json:"range"`
	Domain string    `json:"domain,omitempty" validate:"omitempty,max=253" example:"example.com"`
}

// ByIssueRow represents a row in the ByIssue output
type ByIssueRow struct {
	Issue    string `json:"issue" example:"No root page configured for this domain."`
	Requests int64  `json:"requests" example:"9"`
	Hosts    int64  `json:"hosts" example:"2"`
}
