package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestDeleteExpiredUsesStrictEndDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStore(db).Announcements

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "announcements" WHERE fecha_final < $1`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.DeleteExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListActiveFiltersByWindow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStore(db).Announcements

	now := time.Now().UTC()
	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "titulo", "contenido", "fecha_inicio", "fecha_final", "creado"}).
		AddRow(id.String(), "Mantenimiento", "El foro estará en mantenimiento", now.Add(-time.Hour), now.Add(time.Hour), now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "announcements" WHERE fecha_inicio <= $1 AND fecha_final >= $2`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(rows)

	list, err := repo.ListActive(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, "Mantenimiento", list[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveRejectsNonPendingReport(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStore(db).Reports

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "reports" SET "estado"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Resolve(context.Background(), uuid.New(), Resolution{Status: models.ReportRejected})
	assert.ErrorIs(t, err, ErrStale)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveRollsBackWhenPostDeleteFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStore(db).Reports
	postID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "reports" SET "estado"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "posts"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Resolve(context.Background(), uuid.New(), Resolution{
		Status:       models.ReportReviewed,
		DeletePostID: &postID,
		Notification: &models.Notification{UserID: uuid.New(), Message: "x"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByIDReportsMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStore(db).Comments

	mock.ExpectExec(`DELETE FROM "comments"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
