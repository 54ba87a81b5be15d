// Package storage persists uploaded files and returns their public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Uploader stores one object and returns the URL clients can fetch it from.
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// ObjectName builds a collision-resistant name that keeps the original
// file extension: <unix-millis>-<8 hex chars><ext>.
func ObjectName(original string, now time.Time) string {
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), suffix, filepath.Ext(original))
}
