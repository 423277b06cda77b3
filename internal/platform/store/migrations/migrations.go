// Package migrations embeds the registry schema and applies it
// postgres runs through goose over database/sql; clickhouse gets idempotent DDL
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	// registers the "pgx" database/sql driver goose talks through
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed pg/*.sql
var pgFS embed.FS

//go:embed ch/routing_events.sql
var routingEventsDDL string

// Applied is one migration goose ran
type Applied struct {
	Version int64
	Path    string
	Empty   bool
}

// Postgres returns the embedded goose migrations rooted at the sql files
func Postgres() fs.FS {
	sub, err := fs.Sub(pgFS, "pg")
	if err != nil {
		panic(err) // embed path is fixed at build time
	}
	return sub
}

// Up applies pending postgres migrations on the database at url
func Up(ctx context.Context, url string) ([]Applied, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("migrations: open: %w", err)
	}
	defer db.Close()

	p, err := goose.NewProvider(goose.DialectPostgres, db, Postgres())
	if err != nil {
		return nil, fmt.Errorf("migrations: provider: %w", err)
	}
	res, err := p.Up(ctx)
	out := make([]Applied, 0, len(res))
	for _, r := range res {
		if r == nil || r.Source == nil {
			continue
		}
		out = append(out, Applied{Version: r.Source.Version, Path: r.Source.Path, Empty: r.Empty})
	}
	if err != nil {
		return out, fmt.Errorf("migrations: up: %w", err)
	}
	return out, nil
}

// Execer runs one statement; store.Clickhouse satisfies it
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) error
}

// EnsureClickhouse creates the routing_events table when missing
func EnsureClickhouse(ctx context.Context, ch Execer) error {
	if err := ch.Exec(ctx, RoutingEventsDDL()); err != nil {
		return fmt.Errorf("migrations: clickhouse: %w", err)
	}
	return nil
}

// RoutingEventsDDL returns the clickhouse table definition
func RoutingEventsDDL() string { return routingEventsDDL }
