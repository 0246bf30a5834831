// Package modules contains the dependency modules of the composition root.
//
// Import Path: incidentlens.io/lens/internal/app/modules
package modules

import (
	"context"

	"incidentlens.io/lens/internal/api/handlers"
)

// Module represents a domain-specific dependency unit in the composition root.
type Module interface {
	// Name returns a stable module identifier for logging/debugging.
	Name() string

	// Start runs the module's startup work. It is called once, in module
	// order, before the HTTP server accepts requests.
	Start(context.Context) error

	// Shutdown performs module-local graceful cleanup.
	Shutdown(context.Context) error
}

// ServerDepsContributor is implemented by modules that own HTTP server dependencies.
type ServerDepsContributor interface {
	ContributeServerDeps(*handlers.ServerDeps)
}
