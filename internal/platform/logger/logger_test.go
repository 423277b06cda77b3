package logger

import (
	"bytes"
	"context"
	"testing"

	kit "landingrouter/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":     zerolog.TraceLevel,
		"DEBUG":     zerolog.DebugLevel,
		"info":      zerolog.InfoLevel,
		"warning":   zerolog.WarnLevel,
		"error":     zerolog.ErrorLevel,
		"fatal":     zerolog.FatalLevel,
		"panic":     zerolog.PanicLevel,
		"":          zerolog.InfoLevel,
		" verbose ": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v want %v", in, got, want)
		}
	}
}

// Init runs once per process, so every root logger assertion lives here
func TestInit_ChildLoggers(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "landingrouter-edge",
		Writer:       &buf,
		WithCaller:   true,
		SampleEvery:  2,
		StaticFields: map[string]string{"region": "test"},
	})

	always := func(l *Logger) *Logger {
		s := l.Sample(&zerolog.BasicSampler{N: 1})
		return &s
	}

	always(Get()).Info().Msg("root-msg")
	always(Named("edge")).Info().Msg("named-msg")

	ctx := WithRequest(context.Background(), "req-123", "landing.example.com")
	always(C(ctx)).Info().Msg("ctx-msg")
	always(C(context.Background())).Info().Msg("bare-msg")

	out := buf.String()
	for _, want := range []string{
		"root-msg", "named-msg", "ctx-msg", "bare-msg",
		`"component":"edge"`,
		`"request_id":"req-123"`,
		`"host":"landing.example.com"`,
		`"service":"landingrouter-edge"`,
		`"region":"test"`,
	} {
		kit.MustContain(t, out, want)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "landingrouter-api")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "landingrouter-api" {
		t.Fatalf("FromEnv = %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("FromEnv caller/sample = %+v", opt)
	}
}
