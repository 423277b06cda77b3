// Package repo provides the clickhouse routing events repository
package repo

import (
	"context"
	"strings"

	perr "landingrouter/internal/platform/errors"
	"landingrouter/internal/platform/store"
	"landingrouter/internal/services/events/domain"
)

// CH is the routing events repository over the store clickhouse seam
type CH struct{ c store.Clickhouse }

// NewCH constructs the repository, c must be non nil
func NewCH(c store.Clickhouse) *CH {
	if c == nil {
		panic("events.repo requires a non nil clickhouse client")
	}
	return &CH{c: c}
}

// Columns is the insert column order of routing_events
var Columns = []string{
	"id", "at", "host", "domain", "subdomain", "handler",
	"used_fallback", "issues", "routable", "status", "elapsed_us",
}

// WriteBatch implements domain.WriterPort
func (s *CH) WriteBatch(ctx context.Context, xs []domain.RoutingEvent) error {
	if len(xs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(xs))
	for _, e := range xs {
		issues := e.Issues
		if issues == nil {
			issues = []string{}
		}
		rows = append(rows, []any{
			e.ID, e.At.UTC(), e.Host, e.Domain, e.Subdomain, e.Handler,
			e.UsedFallback, issues, e.Routable, clampU16(e.Status), clampU32(e.ElapsedUS),
		})
	}
	if err := s.c.Insert(ctx, domain.Table, Columns, rows); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "insert %d routing events", len(xs))
	}
	return nil
}

// where builds the shared predicate; clickhouse-go binds positional ? args
type where struct {
	sb   strings.Builder
	args []any
}

func (w *where) and(cond string, args ...any) {
	if w.sb.Len() == 0 {
		w.sb.WriteString("\nWHERE ")
	} else {
		w.sb.WriteString("\n  AND ")
	}
	w.sb.WriteString(cond)
	w.args = append(w.args, args...)
}

func filtered(win domain.Window, f domain.Filters) *where {
	w := &where{}
	w.and("at >= ? AND at < ?", win.Since.UTC(), win.Until.UTC())
	if f.Domain != "" {
		w.and("domain = ?", f.Domain)
	}
	if f.Host != "" {
		w.and("host = ?", f.Host)
	}
	if f.Handler != "" {
		w.and("handler = ?", f.Handler)
	}
	if f.OnlyFailures {
		w.and("(NOT routable OR notEmpty(issues))")
	}
	return w
}

// ListRecent implements domain.QueryPort, newest first with a keyset cursor
func (s *CH) ListRecent(
	ctx context.Context,
	win domain.Window,
	f domain.Filters,
	after domain.AfterKey,
	limit int,
) ([]domain.RoutingEvent, domain.AfterKey, error) {
	w := filtered(win, f)
	// keyset only when the cursor is set
	if !after.IsZero() {
		w.and("(at, id) < (?, ?)", after.At.UTC(), after.ID)
	}
	sql := `SELECT id, at, host, domain, subdomain, handler, used_fallback, issues, routable, status, elapsed_us
FROM ` + domain.Table + w.sb.String() + `
ORDER BY at DESC, id DESC
LIMIT ?`

	rows, err := s.c.Query(ctx, sql, append(w.args, limit)...)
	if err != nil {
		return nil, domain.AfterKey{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "list routing events")
	}
	defer rows.Close()

	out := make([]domain.RoutingEvent, 0, limit)
	var next domain.AfterKey
	for rows.Next() {
		var (
			e       domain.RoutingEvent
			status  uint16
			elapsed uint32
		)
		if err := rows.Scan(
			&e.ID, &e.At, &e.Host, &e.Domain, &e.Subdomain, &e.Handler,
			&e.UsedFallback, &e.Issues, &e.Routable, &status, &elapsed,
		); err != nil {
			return nil, domain.AfterKey{}, err
		}
		e.Status, e.ElapsedUS = int(status), int64(elapsed)
		out = append(out, e)
		next = domain.AfterKey{At: e.At, ID: e.ID}
	}
	if err := rows.Err(); err != nil {
		return nil, domain.AfterKey{}, err
	}
	// a short page means there is nothing after it
	if len(out) < limit {
		next = domain.AfterKey{}
	}
	return out, next, nil
}

// AggByDomain implements domain.QueryPort
func (s *CH) AggByDomain(ctx context.Context, win domain.Window, f domain.Filters, limit int) ([]domain.AggByDomainRow, error) {
	w := filtered(win, f)
	sql := `SELECT domain,
       count() AS requests,
       countIf(NOT routable) AS unroutable,
       countIf(used_fallback != 'none') AS fallbacks,
       quantile(0.95)(elapsed_us) AS p95
FROM ` + domain.Table + w.sb.String() + `
GROUP BY domain
ORDER BY requests DESC, domain
LIMIT ?`

	rows, err := s.c.Query(ctx, sql, append(w.args, limit)...)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "aggregate routing events by domain")
	}
	defer rows.Close()

	var out []domain.AggByDomainRow
	for rows.Next() {
		var (
			r                   domain.AggByDomainRow
			req, unr, fallbacks uint64
		)
		if err := rows.Scan(&r.Domain, &req, &unr, &fallbacks, &r.P95US); err != nil {
			return nil, err
		}
		r.Requests, r.Unroutable, r.Fallbacks = int64(req), int64(unr), int64(fallbacks)
		out = append(out, r)
	}
	return out, rows.Err()
}

// AggByIssue implements domain.QueryPort
func (s *CH) AggByIssue(ctx context.Context, win domain.Window, f domain.Filters) ([]domain.AggByIssueRow, error) {
	w := filtered(win, f)
	sql := `SELECT issue, count() AS requests, uniqExact(host) AS hosts
FROM ` + domain.Table + `
ARRAY JOIN issues AS issue` + w.sb.String() + `
GROUP BY issue
ORDER BY requests DESC, issue`

	rows, err := s.c.Query(ctx, sql, w.args...)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "aggregate routing events by issue")
	}
	defer rows.Close()

	var out []domain.AggByIssueRow
	for rows.Next() {
		var (
			r          domain.AggByIssueRow
			req, hosts uint64
		)
		if err := rows.Scan(&r.Issue, &req, &hosts); err != nil {
			return nil, err
		}
		r.Requests, r.Hosts = int64(req), int64(hosts)
		out = append(out, r)
	}
	return out, rows.Err()
}

func clampU16(v int) uint16 {
	if v < 0 {
		return 0
	}
	return uint16(min(v, 1<<16-1))
}

func clampU32(v int64) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(min(v, 1<<32-1))
}
