package domain

import "context"

// WriterPort writes routing events
type WriterPort interface {
	WriteBatch(ctx context.Context, xs []RoutingEvent) error
}

// SinkPort accepts events without blocking the caller
type SinkPort interface {
	Emit(ev RoutingEvent)
}

// QueryPort lists and aggregates routing events
type QueryPort interface {
	ListRecent(ctx context.Context, w Window, f Filters, after AfterKey, limit int) (rows []RoutingEvent, next AfterKey, err error)
	AggByDomain(ctx context.Context, w Window, f Filters, limit int) ([]AggByDomainRow, error)
	AggByIssue(ctx context.Context, w Window, f Filters) ([]AggByIssueRow, error)
}
