package repokit

import (
	"context"
	"errors"
	"testing"

	kit "landingrouter/internal/platform/testkit"
)

type fakeQ struct{ Queryer }

type lookupRepo struct{ q Queryer }

func TestBindFunc_AndMustBind(t *testing.T) {
	t.Parallel()
	b := BindFunc[*lookupRepo](func(q Queryer) *lookupRepo { return &lookupRepo{q: q} })
	q := fakeQ{}

	if got := MustBind[*lookupRepo](b, q); got.q != q {
		t.Fatalf("bound queryer mismatch")
	}
	kit.MustPanic(t, func() { _ = MustBind[*lookupRepo](b, nil) })
}

type guardFunc func(context.Context) error

func (g guardFunc) Guard(ctx context.Context) error { return g(ctx) }

func TestMustGuard(t *testing.T) {
	t.Parallel()

	var hadDeadline bool
	MustGuard(context.Background(), guardFunc(func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	}))
	if !hadDeadline {
		t.Fatalf("MustGuard must bound an open ended context")
	}

	kit.MustPanic(t, func() {
		MustGuard(context.Background(), guardFunc(func(context.Context) error { return errors.New("pg: refused") }))
	})
}
