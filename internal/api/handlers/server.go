// Package handlers implements the generated ServerInterface over the query
// services.
//
// Routes and parameter binding come from generated.RegisterHandlersWithOptions;
// handlers fill defaults, call one service method and either write JSON or
// attach an AppError for middleware.ErrorHandler to render.
//
// Import Path: incidentlens.io/lens/internal/api/handlers
package handlers

import (
	"context"
	"time"

	"incidentlens.io/lens/internal/api/generated"
	"incidentlens.io/lens/internal/governance/audit"
	"incidentlens.io/lens/internal/loader"
	"incidentlens.io/lens/internal/service"
	"incidentlens.io/lens/internal/store"
)

// Compile-time check: Server must implement generated.ServerInterface.
var _ generated.ServerInterface = (*Server)(nil)

// Reloader rebuilds the served snapshot from its source.
type Reloader interface {
	Reload(ctx context.Context) (loader.Report, error)
}

// Server holds the dependencies of every handler.
type Server struct {
	events    *service.EventService
	clusters  *service.ClusterService
	people    *service.PersonService
	analysis  *service.AnalysisService
	store     *store.Store
	reloader  Reloader
	audit     *audit.Logger
	version   string
	startedAt time.Time
}

// ServerDeps holds all dependencies for creating a Server.
type ServerDeps struct {
	Store    *store.Store
	Reloader Reloader      // optional; reload is unavailable when nil
	Audit    *audit.Logger // optional; admin actions go unrecorded when nil
	Version  string
}

// NewServer creates a new Server with all dependencies.
func NewServer(deps ServerDeps) *Server {
	return &Server{
		events:    service.NewEventService(deps.Store),
		clusters:  service.NewClusterService(deps.Store),
		people:    service.NewPersonService(deps.Store),
		analysis:  service.NewAnalysisService(deps.Store),
		store:     deps.Store,
		reloader:  deps.Reloader,
		audit:     deps.Audit,
		version:   deps.Version,
		startedAt: time.Now(),
	}
}
