package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Recent(ctx context.Context, in RecentInput) (RecentPage, error)
	ByDomain(ctx context.Context, in ByDomainInput) ([]ByDomainRow, error)
	ByIssue(ctx context.Context, in ByIssueInput) ([]ByIssueRow, error)
}
