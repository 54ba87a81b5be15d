// Package dto holds request inputs and the response views returned by
// services. Views carry IDs in canonical uuid string form and timestamps
// as ISO-8601 UTC text with millisecond precision.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the textual form of every timestamp leaving the services.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime accepts RFC 3339 timestamps and bare YYYY-MM-DD dates.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func formatID(id uuid.UUID) string {
	return id.String()
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

type UploadResponse struct {
	FileURL string `json:"fileUrl"`
}
