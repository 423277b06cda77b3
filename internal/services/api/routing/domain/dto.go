// Package domain holds DTOs for routing diagnostics http and service contracts
package domain

import (
	"context"

	"landingrouter/internal/core/routing"
)

// HostInput is the body of every diagnostics endpoint
type HostInput struct {
	Host string `json:"host" validate:"required,host_input" example:"landing.example.com"`
}

// Report is the diagnostics result returned to callers
type Report = routing.Report

// ServicePort is consumed by handlers and the CLI
// a registry failure returns the partial report together with a classified error
type ServicePort interface {
	Test(ctx context.Context, in HostInput) (Report, error)
	TestTLD(ctx context.Context, in HostInput) (Report, error)
	TestWWW(ctx context.Context, in HostInput) (Report, error)
}
