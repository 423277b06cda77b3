package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"time"

	"landingrouter/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ShutdownGrace bounds how long Run waits for in-flight requests after ctx ends
var ShutdownGrace = 10 * time.Second

// Server pairs a chi mux with an http.Server; every request gets an otel server span
type Server struct {
	name string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer builds a server for addr; opts run against the mux before any route is added
func NewServer(name, addr string, opts ...func(*chi.Mux)) *Server {
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		name: name,
		mux:  m,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           otelhttp.NewHandler(m, name),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       90 * time.Second,
		},
	}
}

// Router returns the facade over the mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Handler returns the instrumented root handler
func (s *Server) Handler() stdhttp.Handler { return s.srv.Handler }

// Addr returns the configured listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run listens until ctx ends, then drains for up to ShutdownGrace
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log := logger.Named("http")
	log.Info().Str("server", s.name).Str("addr", ln.Addr().String()).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), ShutdownGrace)
	defer cancel()
	log.Info().Str("server", s.name).Msg("http draining")
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}
