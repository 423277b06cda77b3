package repo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	perr "landingrouter/internal/platform/errors"
	"landingrouter/internal/platform/store"
	"landingrouter/internal/services/events/domain"

	"github.com/google/uuid"
)

type fakeCH struct {
	table string
	cols  []string
	rows  [][]any

	sql  string
	args []any
	out  store.Rows
	err  error
}

func (f *fakeCH) Insert(_ context.Context, table string, cols []string, rows [][]any) error {
	f.table, f.cols, f.rows = table, cols, rows
	return f.err
}
func (f *fakeCH) Exec(context.Context, string, ...any) error { return f.err }
func (f *fakeCH) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	f.sql, f.args = sql, args
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}
func (f *fakeCH) Close() error { return nil }

// sliceRows replays scan funcs, one per row
type sliceRows struct {
	scans []func(dest ...any) error
	i     int
}

func (r *sliceRows) Next() bool             { r.i++; return r.i <= len(r.scans) }
func (r *sliceRows) Scan(dest ...any) error { return r.scans[r.i-1](dest...) }
func (r *sliceRows) Err() error             { return nil }
func (r *sliceRows) Close()                 {}
func (r *sliceRows) Columns() []string      { return nil }

func TestWriteBatch(t *testing.T) {
	t.Parallel()
	f := &fakeCH{}
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	ev := domain.RoutingEvent{
		ID: uuid.New(), At: at, Host: "www.example.com", Domain: "example.com",
		Handler: "root-domain", UsedFallback: "none", Routable: true, Status: 200, ElapsedUS: 1500,
	}

	if err := NewCH(f).WriteBatch(context.Background(), []domain.RoutingEvent{ev}); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if f.table != domain.Table || len(f.cols) != 11 || len(f.rows) != 1 {
		t.Fatalf("insert table=%s cols=%v rows=%d", f.table, f.cols, len(f.rows))
	}
	row := f.rows[0]
	if row[1].(time.Time).Location() != time.UTC {
		t.Fatalf("at must be UTC: %v", row[1])
	}
	if issues, ok := row[7].([]string); !ok || issues == nil {
		t.Fatalf("issues must be a non nil slice: %#v", row[7])
	}
	if row[9].(uint16) != 200 || row[10].(uint32) != 1500 {
		t.Fatalf("status/elapsed = %v/%v", row[9], row[10])
	}
}

func TestWriteBatch_EmptyAndError(t *testing.T) {
	t.Parallel()
	f := &fakeCH{err: errors.New("broken pipe")}
	r := NewCH(f)
	if err := r.WriteBatch(context.Background(), nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}
	err := r.WriteBatch(context.Background(), []domain.RoutingEvent{{ID: uuid.New()}})
	if perr.CodeOf(err) != perr.ErrorCodeUnavailable {
		t.Fatalf("err = %v", err)
	}
}

func TestListRecent_FiltersAndCursor(t *testing.T) {
	t.Parallel()
	id := uuid.New()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := &fakeCH{out: &sliceRows{scans: []func(dest ...any) error{
		func(dest ...any) error {
			*dest[0].(*uuid.UUID) = id
			*dest[1].(*time.Time) = at
			*dest[2].(*string) = "xyz.example.com"
			*dest[3].(*string) = "example.com"
			*dest[7].(*[]string) = []string{"Invalid subdomain type"}
			*dest[8].(*bool) = true
			*dest[9].(*uint16) = 200
			*dest[10].(*uint32) = 900
			return nil
		},
	}}}
	win := domain.Window{Since: at.Add(-time.Hour), Until: at}
	after := domain.AfterKey{At: at.Add(time.Minute), ID: uuid.New()}

	got, next, err := NewCH(f).ListRecent(context.Background(), win, domain.Filters{Domain: "example.com", OnlyFailures: true}, after, 1)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	for _, frag := range []string{"domain = ?", "NOT routable OR notEmpty(issues)", "(at, id) < (?, ?)", "ORDER BY at DESC, id DESC"} {
		if !strings.Contains(f.sql, frag) {
			t.Fatalf("sql missing %q:\n%s", frag, f.sql)
		}
	}
	// since, until, domain, cursor at, cursor id, limit
	if len(f.args) != 6 || f.args[5] != 1 {
		t.Fatalf("args = %v", f.args)
	}
	if len(got) != 1 || got[0].Status != 200 || got[0].ElapsedUS != 900 || got[0].Issues[0] != "Invalid subdomain type" {
		t.Fatalf("rows = %+v", got)
	}
	if next.ID != id || !next.At.Equal(at) {
		t.Fatalf("next = %+v", next)
	}
}

func TestListRecent_ShortPageHasNoCursor(t *testing.T) {
	t.Parallel()
	f := &fakeCH{out: &sliceRows{}}
	_, next, err := NewCH(f).ListRecent(context.Background(), domain.Window{}, domain.Filters{}, domain.AfterKey{}, 10)
	if err != nil || !next.IsZero() {
		t.Fatalf("next=%+v err=%v", next, err)
	}
	if strings.Contains(f.sql, "(at, id) <") {
		t.Fatalf("zero cursor must not add keyset predicate")
	}
}

func TestAggregations(t *testing.T) {
	t.Parallel()
	f := &fakeCH{out: &sliceRows{scans: []func(dest ...any) error{
		func(dest ...any) error {
			*dest[0].(*string) = "example.com"
			*dest[1].(*uint64) = 10
			*dest[2].(*uint64) = 2
			*dest[3].(*uint64) = 1
			*dest[4].(*float64) = 1234.5
			return nil
		},
	}}}
	rows, err := NewCH(f).AggByDomain(context.Background(), domain.Window{}, domain.Filters{Handler: "subdomain"}, 5)
	if err != nil || len(rows) != 1 || rows[0].Requests != 10 || rows[0].Unroutable != 2 || rows[0].P95US != 1234.5 {
		t.Fatalf("rows=%+v err=%v", rows, err)
	}
	if !strings.Contains(f.sql, "GROUP BY domain") || !strings.Contains(f.sql, "handler = ?") {
		t.Fatalf("sql = %s", f.sql)
	}

	f.out = &sliceRows{scans: []func(dest ...any) error{
		func(dest ...any) error {
			*dest[0].(*string) = "Domain not found in database"
			*dest[1].(*uint64) = 4
			*dest[2].(*uint64) = 3
			return nil
		},
	}}
	issues, err := NewCH(f).AggByIssue(context.Background(), domain.Window{}, domain.Filters{})
	if err != nil || len(issues) != 1 || issues[0].Hosts != 3 {
		t.Fatalf("issues=%+v err=%v", issues, err)
	}
	if !strings.Contains(f.sql, "ARRAY JOIN issues AS issue\nWHERE") {
		t.Fatalf("array join must precede where:\n%s", f.sql)
	}
}

func TestQueryErrorsAreUnavailable(t *testing.T) {
	t.Parallel()
	f := &fakeCH{err: errors.New("code: 60, table does not exist")}
	if _, err := NewCH(f).AggByIssue(context.Background(), domain.Window{}, domain.Filters{}); perr.CodeOf(err) != perr.ErrorCodeUnavailable {
		t.Fatalf("err = %v", err)
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()
	if clampU16(-1) != 0 || clampU16(70000) != 65535 || clampU32(-5) != 0 || clampU32(1<<40) != 1<<32-1 {
		t.Fatalf("clamp out of range")
	}
}
