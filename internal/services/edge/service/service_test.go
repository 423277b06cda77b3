package service

import (
	"context"
	"testing"
	"time"

	"landingrouter/internal/core/hostname"
	"landingrouter/internal/core/routing"
)

type slowRegistry struct{ rec routing.DomainRecord }

func (s slowRegistry) LookupByExactName(ctx context.Context, name string) (routing.DomainRecord, bool, error) {
	if name == "slow.com" {
		<-ctx.Done()
		return routing.DomainRecord{}, false, ctx.Err()
	}
	return s.rec, name == s.rec.Name, nil
}

func (s slowRegistry) LookupByTLD(context.Context, string) (routing.DomainRecord, bool, error) {
	return routing.DomainRecord{}, false, nil
}

func TestRoute_AppliesLookupTimeout(t *testing.T) {
	t.Parallel()
	s := New(slowRegistry{}, Config{Policy: hostname.DefaultPolicy, LookupTimeout: 10 * time.Millisecond})

	start := time.Now()
	rep := s.Route(context.Background(), "slow.com")
	if time.Since(start) > time.Second {
		t.Fatalf("timeout not applied")
	}
	if rep.Routable || rep.Error == "" {
		t.Fatalf("report = %+v", rep)
	}
}

func TestRedirectHost(t *testing.T) {
	t.Parallel()
	rec := routing.DomainRecord{
		Name: "example.com", IsActive: true, VerificationStatus: routing.VerificationActive,
		HasRootPage: true, RootPageActive: true, RedirectWWWToNonWWW: true,
	}
	s := New(slowRegistry{rec: rec}, Config{})

	if got := RedirectHost(s.Route(context.Background(), "www.example.com:8443")); got != "example.com" {
		t.Fatalf("www redirect = %q", got)
	}
	if got := RedirectHost(s.Route(context.Background(), "example.com")); got != "" {
		t.Fatalf("bare host must not redirect, got %q", got)
	}

	rec.RedirectWWWToNonWWW = false
	s = New(slowRegistry{rec: rec}, Config{})
	if got := RedirectHost(s.Route(context.Background(), "www.example.com")); got != "" {
		t.Fatalf("redirect disabled, got %q", got)
	}
}
