package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"landingrouter/internal/platform/config"
	perr "landingrouter/internal/platform/errors"
	"landingrouter/internal/platform/store"
	"landingrouter/internal/services/events/domain"
	"landingrouter/internal/services/events/repo"
	"landingrouter/internal/services/events/service"

	"github.com/spf13/cobra"
)

func newEventsCmd(f *rootFlags) *cobra.Command {
	var (
		filters domain.Filters
		since   time.Duration
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List recent routing events recorded by the edge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := store.ConfigFromEnv(appName, config.New())
			if !cfg.CH.Enabled {
				return perr.InvalidArgf("SERVICE_CLICKHOUSE_DBURL is required")
			}
			cfg.PG.Enabled = false

			return withStore(ctx, cfg, func(st *store.Store) error {
				q := service.New(repo.NewCH(st.CH), service.Config{HardLimit: 1000})
				now := time.Now()
				rows, _, err := q.ListRecent(ctx, domain.Window{Since: now.Add(-since), Until: now}, filters, domain.AfterKey{}, limit)
				if err != nil {
					return err
				}
				if f.json {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(rows)
				}
				return writeEvents(cmd, rows)
			})
		},
	}
	cmd.Flags().StringVar(&filters.Domain, "domain", "", "only events for this matched domain")
	cmd.Flags().StringVar(&filters.Host, "host", "", "only events for this request host")
	cmd.Flags().BoolVar(&filters.OnlyFailures, "failures", false, "only unroutable events or events with issues")
	cmd.Flags().DurationVar(&since, "since", time.Hour, "how far back to look")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum events to print")
	return cmd
}

func writeEvents(cmd *cobra.Command, rows []domain.RoutingEvent) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AT\tHOST\tDOMAIN\tHANDLER\tSTATUS\tELAPSED\tISSUES")
	for _, e := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			e.At.UTC().Format(time.RFC3339), e.Host, dash(e.Domain), e.Handler, e.Status,
			time.Duration(e.ElapsedUS)*time.Microsecond, dash(strings.Join(e.Issues, "; ")))
	}
	return tw.Flush()
}
