package main

import (
	"context"
	"encoding/json"

	"landingrouter/internal/core/routing"
	"landingrouter/internal/platform/config"
	perr "landingrouter/internal/platform/errors"
	"landingrouter/internal/platform/store"
	"landingrouter/internal/services/api/routing/domain"
	routingrepo "landingrouter/internal/services/api/routing/repo"
	routingsvc "landingrouter/internal/services/api/routing/service"

	"github.com/spf13/cobra"
)

type variant struct {
	use   string
	short string
	run   func(s domain.ServicePort, ctx context.Context, in domain.HostInput) (domain.Report, error)
}

var (
	variantStandard = variant{"test <host>", "Resolve a host as given", domain.ServicePort.Test}
	variantTLD      = variant{"test-tld <domain>", "Resolve only the last label of a domain", domain.ServicePort.TestTLD}
	variantWWW      = variant{"test-www <domain>", "Resolve a domain with a forced www prefix", domain.ServicePort.TestWWW}
)

func newTestCmd(f *rootFlags, v variant) *cobra.Command {
	return &cobra.Command{
		Use:   v.use,
		Short: v.short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := store.ConfigFromEnv(appName, config.New())
			if !cfg.PG.Enabled {
				return perr.InvalidArgf("SERVICE_PGSQL_DBURL is required")
			}
			cfg.CH.Enabled = false

			return withStore(ctx, cfg, func(st *store.Store) error {
				set := f.settings()
				svc := routingsvc.New(st.PG, routingrepo.NewPG(), set.PrimaryDomain, set.Policy)
				svc.Timeout = f.timeout

				rep, err := v.run(svc, ctx, domain.HostInput{Host: args[0]})
				// a registry failure still carries a report worth printing
				if err != nil && rep.TestedHost == "" {
					return err
				}
				if werr := printReport(cmd, f.json, rep); werr != nil {
					return werr
				}
				if err != nil {
					return err
				}
				if f.strict && !rep.Healthy {
					return errUnhealthy
				}
				return nil
			})
		},
	}
}

func printReport(cmd *cobra.Command, asJSON bool, rep routing.Report) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return writeReport(cmd.OutOrStdout(), rep)
}
