// Package service runs routing diagnostics against the configured registry
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"landingrouter/internal/core/hostname"
	"landingrouter/internal/core/routing"
	"landingrouter/internal/modkit/repokit"
	perr "landingrouter/internal/platform/errors"
	"landingrouter/internal/platform/logger"
	"landingrouter/internal/services/api/routing/domain"
	"landingrouter/internal/services/api/routing/repo"
)

// Service defines the diagnostics service contract
type Service interface {
	domain.ServicePort
}

// DefaultLookupTimeout bounds the registry calls of one diagnostics run
const DefaultLookupTimeout = 2 * time.Second

// Svc implements the diagnostics service
type Svc struct {
	Diag routing.Diagnostics
	// Timeout bounds the registry calls of one run; zero uses DefaultLookupTimeout
	Timeout time.Duration
}

// New constructs the service over a Queryer bound through binder
func New(q repokit.Queryer, binder repokit.Binder[repo.Repo], fallback string, policy hostname.Policy) *Svc {
	if binder == nil {
		panic("routing.Service requires a non nil Repo binder")
	}
	return NewWithRegistry(repokit.MustBind(binder, q), fallback, policy)
}

// NewWithRegistry constructs the service over an existing registry
func NewWithRegistry(reg routing.Registry, fallback string, policy hostname.Policy) *Svc {
	if reg == nil {
		panic("routing.Service requires a non nil Registry")
	}
	return &Svc{
		Diag:    routing.Diagnostics{Registry: reg, Fallback: fallback, Policy: policy},
		Timeout: DefaultLookupTimeout,
	}
}

// Test runs the standard diagnostics on the host as given
func (s *Svc) Test(ctx context.Context, in domain.HostInput) (domain.Report, error) {
	return s.run(ctx, routing.VariantStandard, in)
}

// TestTLD tests only the last label of the host
func (s *Svc) TestTLD(ctx context.Context, in domain.HostInput) (domain.Report, error) {
	return s.run(ctx, routing.VariantTLD, in)
}

// TestWWW tests the host with a forced www prefix
func (s *Svc) TestWWW(ctx context.Context, in domain.HostInput) (domain.Report, error) {
	return s.run(ctx, routing.VariantWWW, in)
}

func (s *Svc) run(ctx context.Context, v routing.Variant, in domain.HostInput) (domain.Report, error) {
	host := strings.TrimSpace(in.Host)
	if host == "" {
		return domain.Report{}, perr.WithField(perr.InvalidArgf("host is required"), "host")
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	lctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rep := s.Diag.Run(lctx, v, host)
	log := logger.C(ctx)
	log.Debug().
		Str("variant", string(rep.Variant)).
		Str("tested_host", rep.TestedHost).
		Bool("routable", rep.Routable).
		Int("issues", len(rep.Resolution.Issues)).
		Msg("routing diagnostics")

	if err := rep.Resolution.Err; err != nil {
		log.Warn().Err(err).Str("tested_host", rep.TestedHost).Msg("domain registry lookup failed")
		code := perr.ErrorCodeUnavailable
		if perr.IsCode(err, perr.ErrorCodeTimeout) || errors.Is(err, context.DeadlineExceeded) {
			code = perr.ErrorCodeTimeout
		}
		return rep, perr.Wrap(err, code, string(routing.IssueRegistryUnavailable))
	}
	return rep, nil
}
