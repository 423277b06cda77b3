package main

import (
	"fmt"

	"landingrouter/internal/platform/config"
	perr "landingrouter/internal/platform/errors"
	"landingrouter/internal/platform/store"
	"landingrouter/internal/platform/store/migrations"

	"github.com/spf13/cobra"
)

// migrateUp is the goose seam
var migrateUp = migrations.Up

func newMigrateCmd() *cobra.Command {
	var withCH bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded Postgres migrations, optionally the ClickHouse events table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := store.ConfigFromEnv(appName, config.New())
			if !cfg.PG.Enabled {
				return perr.InvalidArgf("SERVICE_PGSQL_DBURL is required")
			}

			applied, err := migrateUp(ctx, cfg.PG.URL)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				fmt.Fprintln(out, "postgres: up to date")
			}
			for _, a := range applied {
				fmt.Fprintf(out, "postgres: applied %05d %s\n", a.Version, a.Path)
			}

			if !withCH {
				return nil
			}
			if !cfg.CH.Enabled {
				return perr.InvalidArgf("--clickhouse needs SERVICE_CLICKHOUSE_DBURL")
			}
			cfg.PG.Enabled = false
			return withStore(ctx, cfg, func(st *store.Store) error {
				if err := migrations.EnsureClickhouse(ctx, st.CH); err != nil {
					return err
				}
				fmt.Fprintln(out, "clickhouse: routing_events ready")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&withCH, "clickhouse", false, "also create the routing_events table")
	return cmd
}
