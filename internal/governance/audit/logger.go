// Package audit records administrative actions such as snapshot reloads and
// log level changes.
//
// Audit records are append-only and go to a dedicated "audit" logger so they
// can be routed separately from request logs. Query parameters are never
// recorded; searched identifiers stay out of the trail.
//
// Import Path: incidentlens.io/lens/internal/governance/audit
package audit

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"incidentlens.io/lens/internal/pkg/logger"
)

// Actions.
const (
	ActionDatasetReload  = "dataset.reload"
	ActionLogLevelChange = "log_level.change"
)

// Outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Entry is one audited action.
type Entry struct {
	Action     string
	Outcome    string
	RequestID  string
	RemoteAddr string
	Details    map[string]interface{}
}

// Logger writes audit records.
type Logger struct {
	log *zap.Logger
}

// NewLogger creates an audit Logger on top of base, or on the global logger
// when base is nil.
func NewLogger(base *zap.Logger) *Logger {
	if base == nil {
		base = logger.L()
	}
	return &Logger{log: base.Named("audit")}
}

// LogAction records e and returns the id assigned to the record. A nil
// Logger records nothing.
func (l *Logger) LogAction(e Entry) string {
	if l == nil {
		return ""
	}
	id := generateAuditID()
	fields := []zap.Field{
		zap.String("audit_id", id),
		zap.String("action", e.Action),
		zap.String("outcome", e.Outcome),
	}
	if e.RequestID != "" {
		fields = append(fields, zap.String("request_id", e.RequestID))
	}
	if e.RemoteAddr != "" {
		fields = append(fields, zap.String("remote_addr", e.RemoteAddr))
	}
	if len(e.Details) > 0 {
		fields = append(fields, zap.Any("details", e.Details))
	}

	if e.Outcome == OutcomeFailure {
		l.log.Warn("Audit", fields...)
	} else {
		l.log.Info("Audit", fields...)
	}
	return id
}

func generateAuditID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return fmt.Sprintf("audit-%s", id.String())
}
