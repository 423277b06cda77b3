// @title         landingrouter API
// @version       0.1.0
// @description   Routing diagnostics and routing event stats

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"landingrouter/internal/modkit/repokit"
	"landingrouter/internal/platform/config"
	"landingrouter/internal/platform/logger"
	phttp "landingrouter/internal/platform/net/http"
	"landingrouter/internal/platform/store"
	"landingrouter/internal/services/api"
	"landingrouter/internal/services/routingconf"
)

const appName = "landingrouter-api"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
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
	// open the platform store; clickhouse is optional and only backs /stats
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

	srv := phttp.NewServer(appName, apiCfg.MayPort("PORT", 8080))
	api.Mount(srv.Router(), api.Options{
		ServiceName:    appName,
		Config:         root,
		Store:          st,
		Routing:        routingconf.Load(root),
		LookupTimeout:  apiCfg.MayDuration("LOOKUP_TIMEOUT", 2*time.Second),
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		RateLimitRPS:   float64(apiCfg.MayInt("RATE_RPS", 20)),
		CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
	})

	l.Info().Str("addr", srv.Addr()).Bool("clickhouse", st.CH != nil).Msg("api listening")
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
