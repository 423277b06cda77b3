package http_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	phttp "landingrouter/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestServer_ServeAndDrain(t *testing.T) {
	optCalled := false
	srv := phttp.NewServer("test", "127.0.0.1:0", func(*chi.Mux) { optCalled = true })
	if !optCalled {
		t.Fatalf("option not applied")
	}
	if srv.Addr() != "127.0.0.1:0" || srv.Handler() == nil {
		t.Fatalf("addr/handler = %q %v", srv.Addr(), srv.Handler())
	}
	srv.Router().Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "ok") })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("response = %d %q", resp.StatusCode, body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("Serve did not return after cancel")
	}
}

func TestServer_RunListenError(t *testing.T) {
	srv := phttp.NewServer("test", "127.0.0.1:abc")
	if err := srv.Run(context.Background()); err == nil {
		t.Fatalf("expected listen error")
	}
}
