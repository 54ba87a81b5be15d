package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemLog is one ERROR+ record written by the database log sink. Rows
// older than LOG_RETENTION are purged by the log_retention job.
type SystemLog struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Timestamp time.Time `gorm:"not null;index:idx_system_logs_timestamp" json:"timestamp"`
	Level     string    `gorm:"size:10;not null;index" json:"level"`
	Message   string    `gorm:"type:text" json:"message"`

	// Operation is the GraphQL field, job or endpoint that failed.
	Operation string  `gorm:"size:100;index" json:"operation"`
	RequestID string  `gorm:"size:36;index" json:"request_id"`
	UserID    *string `gorm:"size:36;index" json:"user_id"`
	Error     string  `gorm:"type:text" json:"error"`
	LatencyMs int     `json:"latency_ms"`

	Extra     datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"extra"`
	CreatedAt time.Time      `json:"created_at"`
}
