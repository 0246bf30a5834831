package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"incidentlens.io/lens/internal/api/middleware"
	"incidentlens.io/lens/internal/governance/audit"
	apperrors "incidentlens.io/lens/internal/pkg/errors"
	"incidentlens.io/lens/internal/pkg/logger"
)

// ReloadDatasets handles POST /admin/reload. The new snapshot replaces the
// served one only when at least one dataset could be read.
func (s *Server) ReloadDatasets(c *gin.Context) {
	if s.reloader == nil {
		_ = c.Error(apperrors.Unavailable(apperrors.CodeReloadFailed, "reload is not configured"))
		return
	}

	// A client that goes away must not abort a reload halfway; the loader's
	// own timeout bounds it.
	report, err := s.reloader.Reload(context.WithoutCancel(c.Request.Context()))
	if err != nil {
		s.recordAdminAction(c, audit.ActionDatasetReload, audit.OutcomeFailure, map[string]interface{}{
			"error": err.Error(),
		})
		_ = c.Error(err)
		return
	}
	s.recordAdminAction(c, audit.ActionDatasetReload, audit.OutcomeSuccess, map[string]interface{}{
		"failed":      report.Failed,
		"duration_ms": report.DurationMS,
	})
	logger.Info("Datasets reloaded on request",
		zap.Strings("failed", report.Failed),
		zap.Duration("duration", report.Duration),
	)
	c.JSON(http.StatusOK, report)
}

// GetLogLevel handles GET /admin/log-level.
func (s *Server) GetLogLevel(c *gin.Context) {
	logger.LevelHandler().ServeHTTP(c.Writer, c.Request)
}

// SetLogLevel handles PUT /admin/log-level through zap's AtomicLevel
// endpoint. Every attempt is audited.
func (s *Server) SetLogLevel(c *gin.Context) {
	before := logger.GetLevel()
	logger.LevelHandler().ServeHTTP(c.Writer, c.Request)

	outcome := audit.OutcomeSuccess
	if c.Writer.Status() != http.StatusOK {
		outcome = audit.OutcomeFailure
	}
	s.recordAdminAction(c, audit.ActionLogLevelChange, outcome, map[string]interface{}{
		"from": before.String(),
		"to":   logger.GetLevel().String(),
	})
}

func (s *Server) recordAdminAction(c *gin.Context, action, outcome string, details map[string]interface{}) {
	s.audit.LogAction(audit.Entry{
		Action:     action,
		Outcome:    outcome,
		RequestID:  middleware.GetRequestID(c.Request.Context()),
		RemoteAddr: c.ClientIP(),
		Details:    details,
	})
}
