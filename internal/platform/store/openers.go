package store

import (
	"context"
	"fmt"
	"time"

	chx "landingrouter/internal/platform/store/ch"
	"landingrouter/internal/platform/store/pg"
)

// retry backoff bounds; tests shrink them
var (
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

// pgOpen and chOpen are seams for tests
var (
	pgOpen = pg.Open
	chOpen = chx.Open
)

// openPG opens pg and wraps it with our sql adapter once the pool answers a ping
func openPG(ctx context.Context, cfg Config, s *Store) (*pgAdapter, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pgOpen(ctx, pg.Config{
		URL:              cfg.PG.URL,
		MaxConns:         cfg.PG.MaxConns,
		SlowMs:           cfg.PG.SlowQueryMs,
		StatementTimeout: cfg.PG.StatementTimeout,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts <= 0 {
		attempts = 20
	}
	pingTimeout := cfg.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}

	// ping the pool directly so boot retries do not show up as traced SQL
	err = retry(ctx, attempts, func() error {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		return p.Pool.Ping(toCtx)
	})
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, err)
	}
	s.Log.Info().Int32("max_conns", cfg.PG.MaxConns).Bool("log_sql", cfg.PG.LogSQL).Msg("postgres ready")
	return newPGAdapter(p), nil
}

func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	c, err := chOpen(ctx, chx.Config{URL: cfg.CH.URL, Role: cfg.AppName})
	if err != nil {
		return nil, err
	}
	a := newCHAdapter(c)
	toCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.Ping(toCtx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("clickhouse ping: %w", err)
	}
	s.Log.Info().Msg("clickhouse ready")
	return a, nil
}

// retry calls fn until it succeeds, attempts run out or ctx ends
// the wait doubles from backoffStart up to backoffCeiling
func retry(ctx context.Context, attempts int, fn func() error) error {
	var last error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if last = fn(); last == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		backoff = min(backoff*2, backoffCeiling)
	}
	return last
}
