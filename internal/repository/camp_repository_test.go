package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmhmc/camp-attendance-api/internal/models"
)

func TestCampRepositoryListOrdersByDateDesc(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCampRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "camp_date"}).
		AddRow(int64(2), "Eye Camp", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)).
		AddRow(int64(1), "Dental Camp", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, camp_date FROM camps ORDER BY camp_date DESC, id DESC")).
		WillReturnRows(rows)

	camps, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, camps, 2)
	assert.Equal(t, "Eye Camp", camps[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCampRepository(db)

	date := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO camps").
		WithArgs("Health Camp", date).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	camp := &models.Camp{Title: "Health Camp", CampDate: date}
	err := repo.Create(context.Background(), camp)
	require.NoError(t, err)
	assert.Equal(t, int64(11), camp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampRepositoryDeleteCascadesAndRecounts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCampRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assignments WHERE camp_id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 6))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM camps WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(recountAttendanceQuery)).
		WillReturnResult(sqlmock.NewResult(0, 9))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampRepositoryDeleteMissingRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCampRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assignments WHERE camp_id = $1")).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM camps WHERE id = $1")).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
