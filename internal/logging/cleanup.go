package logging

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"gorm.io/gorm"
)

// PurgeOld deletes system_logs older than retention and reports how many
// rows were removed.
func PurgeOld(ctx context.Context, db *gorm.DB, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	result := db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
