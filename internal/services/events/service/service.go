// Package service provides the routing events sink and query service
package service

import (
	"context"
	"time"

	dom "landingrouter/internal/services/events/domain"
)

// Config for the query service
type Config struct {
	HardLimit int
	// DefaultWindow applies when a query has no Since
	DefaultWindow time.Duration
}

// Service implements domain.QueryPort on top of the clickhouse repo
type Service struct {
	Storage dom.QueryPort
	Cfg     Config

	now func() time.Time
}

// New constructs the query service with a required storage
func New(storage dom.QueryPort, cfg Config) *Service {
	if storage == nil {
		panic("events.Service requires a non nil storage")
	}
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 100
	}
	if cfg.DefaultWindow <= 0 {
		cfg.DefaultWindow = 24 * time.Hour
	}
	return &Service{Storage: storage, Cfg: cfg, now: time.Now}
}

// window fills a missing Until with now and a missing Since with Until minus the default window
func (s *Service) window(w dom.Window) dom.Window {
	if w.Until.IsZero() {
		w.Until = s.now()
	}
	if w.Since.IsZero() {
		w.Since = w.Until.Add(-s.Cfg.DefaultWindow)
	}
	return w
}

func (s *Service) limit(n int) int {
	if n <= 0 || n > s.Cfg.HardLimit {
		return s.Cfg.HardLimit
	}
	return n
}

// ListRecent implements domain.QueryPort
func (s *Service) ListRecent(ctx context.Context, w dom.Window, f dom.Filters, after dom.AfterKey, limit int) ([]dom.RoutingEvent, dom.AfterKey, error) {
	return s.Storage.ListRecent(ctx, s.window(w), f, after, s.limit(limit))
}

// AggByDomain implements domain.QueryPort
func (s *Service) AggByDomain(ctx context.Context, w dom.Window, f dom.Filters, limit int) ([]dom.AggByDomainRow, error) {
	return s.Storage.AggByDomain(ctx, s.window(w), f, s.limit(limit))
}

// AggByIssue implements domain.QueryPort
func (s *Service) AggByIssue(ctx context.Context, w dom.Window, f dom.Filters) ([]dom.AggByIssueRow, error) {
	return s.Storage.AggByIssue(ctx, s.window(w), f)
}
