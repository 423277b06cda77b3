// Package net holds transport neutral request context and reply envelopes
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keyHost ctxKey = "host"

// WithRequest stores the request id where chimw.GetReqID finds it, plus the routed host
func WithRequest(ctx context.Context, reqID, host string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if host != "" {
		ctx = context.WithValue(ctx, keyHost, host)
	}
	return ctx
}

// RequestID returns the request id, empty when absent
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// Host returns the host the request was routed for, empty when absent
func Host(ctx context.Context) string {
	s, _ := ctx.Value(keyHost).(string)
	return s
}
