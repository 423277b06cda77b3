package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"landingrouter/internal/core/version"
	"landingrouter/internal/platform/config"
	"landingrouter/internal/platform/logger"
	"landingrouter/internal/platform/store"
	"landingrouter/internal/services/routingconf"

	"github.com/spf13/cobra"
)

const appName = "landingrouter-diag"

// exit codes, scripts branch on them
const (
	exitOK        = 0
	exitError     = 1
	exitUnhealthy = 2
)

// errUnhealthy marks a clean run whose report was not healthy under --strict
var errUnhealthy = errors.New("host is not healthy")

// openStore is the store seam; tests swap it for in memory backends
var openStore = func(ctx context.Context, cfg store.Config) (*store.Store, error) {
	return store.Open(ctx, cfg, store.WithLogger(*logger.Get()))
}

type rootFlags struct {
	json          bool
	strict        bool
	primaryDomain string
	timeout       time.Duration
}

func newRootCmd() *cobra.Command {
	var f rootFlags
	root := &cobra.Command{
		Use:           appName,
		Short:         "Explain how hosts route to landing-page domains",
		Version:       version.Info(appName).Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opt := logger.FromEnv()
			opt.Writer = cmd.ErrOrStderr()
			if opt.Service == "" {
				opt.Service = appName
			}
			logger.Init(opt)
		},
	}
	root.PersistentFlags().BoolVar(&f.json, "json", false, "print the report as JSON")
	root.PersistentFlags().BoolVar(&f.strict, "strict", false, "exit 2 when the host is not healthy")
	root.PersistentFlags().StringVar(&f.primaryDomain, "primary-domain", "", "override ROUTING_PRIMARY_DOMAIN")
	root.PersistentFlags().DurationVar(&f.timeout, "timeout", 5*time.Second, "bound on the registry lookups of one test")

	root.AddCommand(
		newTestCmd(&f, variantStandard),
		newTestCmd(&f, variantTLD),
		newTestCmd(&f, variantWWW),
		newMigrateCmd(),
		newEventsCmd(&f),
	)
	return root
}

// settings resolves ROUTING_* with the flag override applied
func (f *rootFlags) settings() routingconf.Settings {
	s := routingconf.Load(config.New())
	if f.primaryDomain != "" {
		s.PrimaryDomain = f.primaryDomain
	}
	return s
}

// withStore opens the backends cfg enables, runs fn and closes them
func withStore(ctx context.Context, cfg store.Config, fn func(*store.Store) error) error {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(ctx) }()
	return fn(st)
}

func execute(ctx context.Context, args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUnhealthy):
		return exitUnhealthy
	default:
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		return exitError
	}
}
