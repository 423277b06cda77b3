package repo

import (
	"context"
	"time"

	"landingrouter/internal/core/routing"

	"golang.org/x/sync/singleflight"
)

// Coalesce shares one registry round trip among concurrent lookups of the same key
// the shared call runs detached from any single caller with its own timeout
// each caller still stops waiting when its own ctx ends
func Coalesce(inner Repo, timeout time.Duration) Repo {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &coalesced{inner: inner, timeout: timeout}
}

type coalesced struct {
	inner   Repo
	timeout time.Duration
	g       singleflight.Group
}

type lookupResult struct {
	rec   routing.DomainRecord
	found bool
}

func (c *coalesced) LookupByExactName(ctx context.Context, name string) (routing.DomainRecord, bool, error) {
	return c.do(ctx, "name:"+name, func(ctx context.Context) (routing.DomainRecord, bool, error) {
		return c.inner.LookupByExactName(ctx, name)
	})
}

func (c *coalesced) LookupByTLD(ctx context.Context, tld string) (routing.DomainRecord, bool, error) {
	return c.do(ctx, "tld:"+tld, func(ctx context.Context) (routing.DomainRecord, bool, error) {
		return c.inner.LookupByTLD(ctx, tld)
	})
}

func (c *coalesced) do(ctx context.Context, key string, fn func(context.Context) (routing.DomainRecord, bool, error)) (routing.DomainRecord, bool, error) {
	ch := c.g.DoChan(key, func() (any, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		rec, found, err := fn(sctx)
		return lookupResult{rec: rec, found: found}, err
	})
	select {
	case <-ctx.Done():
		return routing.DomainRecord{}, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return routing.DomainRecord{}, false, res.Err
		}
		lr := res.Val.(lookupResult)
		return lr.rec, lr.found, nil
	}
}
