package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"landingrouter/internal/modkit"
	"landingrouter/internal/modkit/repokit"
	"landingrouter/internal/platform/config"
	"landingrouter/internal/platform/logger"
	phttp "landingrouter/internal/platform/net/http"
	"landingrouter/internal/platform/net/middleware"
	"landingrouter/internal/platform/store"
	"landingrouter/internal/platform/store/migrations"
	edgemod "landingrouter/internal/services/edge/module"

	"github.com/go-chi/chi/v5"
)

const appName = "landingrouter-edge"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	edgeCfg := root.Prefix("EDGE_")

	opt := logger.FromEnv()
	if opt.Service == "" {
		opt.Service = appName
	}
	logger.Init(opt)
	l := logger.Get()

	cfg := store.ConfigFromEnv(appName, root)
	if !cfg.PG.Enabled {
		l.Panic().Msg("SERVICE_PGSQL_DBURL is required")
	}
	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	if st.CH != nil {
		if err := migrations.EnsureClickhouse(ctx, st.CH); err != nil {
			l.Panic().Err(err).Msg("clickhouse schema")
		}
	}

	profiler := edgeCfg.MayBool("PROFILER", false)
	o := edgemod.FromConfig(root)
	if profiler {
		o.Skip = append(o.Skip, "/debug")
	}
	m := edgemod.New(modkit.Deps{Log: *l, Cfg: root, PG: st.PG, CH: st.CH, Policy: o.Routing.Policy}, o)

	// every request passes the host router, so only process level middleware sits in front of it
	srv := phttp.NewServer(appName, edgeCfg.MayPort("PORT", 8081), func(mux *chi.Mux) {
		mux.Use(
			middleware.Heartbeat("/health"),
			middleware.RequestID(),
			middleware.RealIP(),
			middleware.RequestContext(),
			middleware.RecoverJSON,
			middleware.AccessLog(middleware.AccessLogOptions{Slow: edgeCfg.MayDuration("SLOW", 0)}),
		)
	})
	m.MountRoutes(srv.Router())
	phttp.MountProfiler(srv.Router(), "/debug", profiler)

	l.Info().Str("addr", srv.Addr()).Bool("events", st.CH != nil && o.EventsEnabled).Msg("edge listening")
	runErr := srv.Run(ctx)

	// the server is drained, flush the routing events still in flight
	gctx, cancel := context.WithTimeout(context.Background(), edgeCfg.MayDuration("EVENTS_GRACE", 5*time.Second))
	defer cancel()
	if err := m.Close(gctx); err != nil {
		l.Warn().Err(err).Msg("routing events not fully flushed")
	}
	if runErr != nil {
		l.Panic().Err(runErr).Msg("http server stopped")
	}
}
