package store

import (
	"time"

	"landingrouter/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// StatementTimeout bounds every statement server side; zero keeps the server default
	StatementTimeout time.Duration

	// boot knobs
	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string
}

// ConfigFromEnv reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_* from c
// a backend is enabled when its URL is set
func ConfigFromEnv(app string, c config.Conf) Config {
	pgc := c.Prefix("SERVICE_PGSQL_")
	chc := c.Prefix("SERVICE_CLICKHOUSE_")

	cfg := Config{AppName: app}
	cfg.PG = PGConfig{
		URL:              pgc.MayString("DBURL", ""),
		MaxConns:         int32(pgc.MayInt("MAX_CONNS", 8)),
		LogSQL:           pgc.MayBool("LOG_SQL", false),
		SlowQueryMs:      pgc.MayInt("SLOW_MS", 250),
		StatementTimeout: pgc.MayDuration("STATEMENT_TIMEOUT", 0),
		ConnectRetries:   pgc.MayInt("CONNECT_RETRIES", 20),
		PingTimeout:      pgc.MayDuration("PING_TIMEOUT", 3*time.Second),
	}
	cfg.PG.Enabled = cfg.PG.URL != ""

	cfg.CH = CHConfig{URL: chc.MayString("DBURL", "")}
	cfg.CH.Enabled = cfg.CH.URL != ""
	return cfg
}
