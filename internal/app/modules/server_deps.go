package modules

import (
	"incidentlens.io/lens/internal/api/handlers"
	"incidentlens.io/lens/internal/governance/audit"
)

// NewServerDeps builds base server deps then lets each module contribute explicit wiring.
func NewServerDeps(infra *Infrastructure, version string, mods []Module) handlers.ServerDeps {
	deps := handlers.ServerDeps{
		Store:   infra.Store,
		Audit:   audit.NewLogger(nil),
		Version: version,
	}
	for _, mod := range mods {
		if mod == nil {
			continue
		}
		contributor, ok := mod.(ServerDepsContributor)
		if !ok {
			continue
		}
		contributor.ContributeServerDeps(&deps)
	}
	return deps
}
