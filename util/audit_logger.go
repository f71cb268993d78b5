package util

import (
	"encoding/json"
	"strings"

	"github.com/ariebrainware/medical-forum/model"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEventType represents different types of audit events
type AuditEventType string

const (
	EventResourceCreated   AuditEventType = "RESOURCE_CREATED"
	EventRequestRejected   AuditEventType = "REQUEST_REJECTED"
	EventRateLimitExceeded AuditEventType = "RATE_LIMIT_EXCEEDED"
	EventRateLimitFailure  AuditEventType = "RATE_LIMIT_FAILURE"
)

// AuditEvent represents an event to be logged and persisted
type AuditEvent struct {
	EventType AuditEventType
	RequestID string
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(value)
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// RecordAuditEvent logs the event and, when db is not nil, persists it to the
// audit_logs table. Persisting is best effort: failures are logged, never
// returned.
func RecordAuditEvent(db *gorm.DB, event AuditEvent) {
	entry := model.AuditLog{
		EventType: string(event.EventType),
		RequestID: sanitizeLogValue(event.RequestID),
		IP:        sanitizeLogValue(event.IP),
		UserAgent: sanitizeLogValue(event.UserAgent),
		Message:   sanitizeLogValue(event.Message),
	}

	Logger().Info("audit",
		zap.String("event", entry.EventType),
		zap.String("request_id", entry.RequestID),
		zap.String("ip", entry.IP),
		zap.String("user_agent", entry.UserAgent),
		zap.String("message", entry.Message),
		zap.Int("details_count", len(event.Details)),
	)

	if db == nil {
		return
	}
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			entry.Details = datatypes.JSON(b)
		}
	}
	if err := db.Create(&entry).Error; err != nil {
		Logger().Warn("failed to persist audit event", zap.Error(err))
	}
}

// LogRateLimitExceeded records a request rejected by the rate limiter.
func LogRateLimitExceeded(db *gorm.DB, requestID, ip, endpoint string) {
	RecordAuditEvent(db, AuditEvent{
		EventType: EventRateLimitExceeded,
		RequestID: requestID,
		IP:        ip,
		Message:   "Rate limit exceeded for endpoint: " + endpoint,
	})
}
