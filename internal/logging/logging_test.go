package logging

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type captured struct {
	mu   sync.Mutex
	logs []models.SystemLog
}

func (c *captured) write(batch []models.SystemLog) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logs = append(c.logs, batch...)
	return nil
}

func (c *captured) all() []models.SystemLog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.SystemLog(nil), c.logs...)
}

func TestPGHandler_LiftsKnownAttrs(t *testing.T) {
	sink := &captured{}
	h := newPGHandler(sink.write, time.Hour)
	log := slog.New(h).With("operation", "actualizarEstadoReporte")

	log.Info("ignored below error")
	log.Error("resolver failed", "user_id", "u-1", "error", "boom", "latency_ms", 12.6, "report_id", "r-9")
	h.Stop()

	logs := sink.all()
	require.Len(t, logs, 1)
	entry := logs[0]
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "resolver failed", entry.Message)
	assert.Equal(t, "actualizarEstadoReporte", entry.Operation)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "u-1", *entry.UserID)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, 13, entry.LatencyMs)
	assert.JSONEq(t, `{"report_id":"r-9"}`, string(entry.Extra))
}

func TestPGHandler_FlushesOnBatchSize(t *testing.T) {
	sink := &captured{}
	h := newPGHandler(sink.write, time.Hour)
	defer h.Stop()
	log := slog.New(h)

	for i := 0; i < batchSize; i++ {
		log.Error("failure")
	}
	assert.Eventually(t, func() bool { return len(sink.all()) == batchSize }, time.Second, 10*time.Millisecond)
}

type recordingHandler struct {
	level slog.Level
	count *int
	err   error
}

func (r recordingHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= r.level }
func (r recordingHandler) Handle(context.Context, slog.Record) error {
	*r.count++
	return r.err
}
func (r recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r recordingHandler) WithGroup(string) slog.Handler      { return r }

func TestMultiHandler(t *testing.T) {
	var infoCount, errCount int
	failing := recordingHandler{level: slog.LevelInfo, count: &infoCount, err: errors.New("stdout closed")}
	errorsOnly := recordingHandler{level: slog.LevelError, count: &errCount}
	m := NewMultiHandler(failing, errorsOnly)

	assert.True(t, m.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, m.Enabled(context.Background(), slog.LevelDebug))

	err := m.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "x", 0))
	assert.Error(t, err)
	assert.Equal(t, 1, infoCount)
	assert.Equal(t, 0, errCount)

	err = m.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "y", 0))
	assert.Error(t, err)
	assert.Equal(t, 2, infoCount)
	assert.Equal(t, 1, errCount, "a failing handler must not block the others")
}

func TestPurgeOld(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "system_logs" WHERE timestamp < $1`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := PurgeOld(context.Background(), db, 30*24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
