// Package service contains routing stats workflows
package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"time"

	perr "landingrouter/internal/platform/errors"
	"landingrouter/internal/services/api/stats/domain"
	evdom "landingrouter/internal/services/events/domain"
)

// Service defines the stats service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the stats service over the events query port
type Svc struct {
	q evdom.QueryPort
}

// New constructs a stats service
func New(q evdom.QueryPort) *Svc {
	if q == nil {
		panic("stats.Service requires a non nil events QueryPort")
	}
	return &Svc{q: q}
}

// Recent returns one page of routing events
func (s *Svc) Recent(ctx context.Context, in domain.RecentInput) (domain.RecentPage, error) {
	w, err := window(in.Range)
	if err != nil {
		return domain.RecentPage{}, err
	}
	after, err := DecodeCursor(in.Cursor)
	if err != nil {
		return domain.RecentPage{}, err
	}
	rows, next, err := s.q.ListRecent(ctx, w, evdom.Filters{
		Domain:       in.Domain,
		Host:         in.Host,
		OnlyFailures: in.OnlyFailures,
	}, after, in.Limit)
	if err != nil {
		return domain.RecentPage{}, err
	}
	if rows == nil {
		rows = []evdom.RoutingEvent{}
	}
	return domain.RecentPage{Events: rows, Next: EncodeCursor(next)}, nil
}

// ByDomain returns request counts per matched domain
func (s *Svc) ByDomain(ctx context.Context, in domain.ByDomainInput) ([]domain.ByDomainRow, error) {
	w, err := window(in.Range)
	if err != nil {
		return nil, err
	}
	rows, err := s.q.AggByDomain(ctx, w, evdom.Filters{Handler: in.Handler}, in.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ByDomainRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.ByDomainRow{
			Domain:     r.Domain,
			Requests:   r.Requests,
			Unroutable: r.Unroutable,
			Fallbacks:  r.Fallbacks,
			P95Ms:      r.P95US / 1000,
		})
	}
	return out, nil
}

// ByIssue returns how often each routing issue was reported
func (s *Svc) ByIssue(ctx context.Context, in domain.ByIssueInput) ([]domain.ByIssueRow, error) {
	w, err := window(in.Range)
	if err != nil {
		return nil, err
	}
	rows, err := s.q.AggByIssue(ctx, w, evdom.Filters{Domain: in.Domain})
	if err != nil {
		return nil, err
	}
	out := make([]domain.ByIssueRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.ByIssueRow{Issue: r.Issue, Requests: r.Requests, Hosts: r.Hosts})
	}
	return out, nil
}

// window parses the range; zero bounds are filled in by the events service
func window(tr domain.TimeRange) (evdom.Window, error) {
	var (
		w   evdom.Window
		err error
	)
	if tr.Start != "" {
		if w.Since, err = time.Parse(time.RFC3339, tr.Start); err != nil {
			return w, perr.InvalidArgf("range.start: %v", err)
		}
	}
	if tr.End != "" {
		if w.Until, err = time.Parse(time.RFC3339, tr.End); err != nil {
			return w, perr.InvalidArgf("range.end: %v", err)
		}
	}
	if !w.Since.IsZero() && !w.Until.IsZero() && !w.Since.Before(w.Until) {
		return w, perr.InvalidArgf("range.start must be before range.end")
	}
	return w, nil
}

// EncodeCursor renders an AfterKey as url safe base64 JSON, empty for the zero key
func EncodeCursor(k evdom.AfterKey) string {
	if k.IsZero() {
		return ""
	}
	b, _ := json.Marshal(k)
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeCursor is the inverse of EncodeCursor; empty decodes to the zero key
func DecodeCursor(s string) (evdom.AfterKey, error) {
	var k evdom.AfterKey
	if s == "" {
		return k, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return k, perr.InvalidArgf("cursor: %v", err)
	}
	if err := json.Unmarshal(b, &k); err != nil {
		return k, perr.InvalidArgf("cursor: %v", err)
	}
	return k, nil
}
