package net_test

import (
	"context"
	"testing"

	pnet "landingrouter/internal/platform/net"
)

func TestWithRequest(t *testing.T) {
	base := context.Background()

	tests := []struct {
		name, reqID, host string
	}{
		{"both", "req-1", "landing.example.com"},
		{"request id only", "req-2", ""},
		{"host only", "", "example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := pnet.WithRequest(base, tt.reqID, tt.host)
			if got := pnet.RequestID(ctx); got != tt.reqID {
				t.Fatalf("RequestID = %q want %q", got, tt.reqID)
			}
			if got := pnet.Host(ctx); got != tt.host {
				t.Fatalf("Host = %q want %q", got, tt.host)
			}
		})
	}

	if ctx := pnet.WithRequest(base, "", ""); ctx != base {
		t.Fatalf("empty values must not derive a new context")
	}
}
