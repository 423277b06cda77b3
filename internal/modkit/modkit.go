// Package modkit provides module wiring and core deps
package modkit

import (
	phttp "landingrouter/internal/platform/net/http"
)

// Module is the common surface for API modules
// keep this tiny so modules stay decoupled
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r phttp.Router)

	// Ports returns a module specific port set for cross wiring, may be nil
	Ports() any

	// Name returns the module name
	Name() string
}
