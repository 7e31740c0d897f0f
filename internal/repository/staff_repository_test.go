package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmhmc/camp-attendance-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestStaffRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	joined := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	serial := 1
	rows := sqlmock.NewRows([]string{"id", "serial_no", "name", "category", "pg_year", "joining_date", "camps_attended"}).
		AddRow(int64(1), serial, "Dr. Rao", models.CategoryDoctor, nil, joined, 3).
		AddRow(int64(2), nil, "Sana", models.CategoryPG, "2nd Year", nil, 0)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, serial_no, name, category, pg_year, joining_date, camps_attended\nFROM staff ORDER BY COALESCE(serial_no, id), id")).
		WillReturnRows(rows)

	staff, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, staff, 2)
	assert.Equal(t, "Dr. Rao", staff[0].Name)
	assert.Equal(t, 3, staff[0].CampsAttended)
	assert.Nil(t, staff[1].SerialNo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	mock.ExpectQuery("SELECT id, serial_no, name, category, pg_year, joining_date, camps_attended FROM staff WHERE").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffRepositoryCreateForcesZeroCounter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	mock.ExpectQuery("INSERT INTO staff").
		WithArgs(nil, "Nurse Devi", models.CategoryNurse, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	staff := &models.Staff{Name: "Nurse Devi", Category: models.CategoryNurse, CampsAttended: 42}
	err := repo.Create(context.Background(), staff)
	require.NoError(t, err)
	assert.Equal(t, int64(7), staff.ID)
	assert.Equal(t, 0, staff.CampsAttended)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffRepositoryUpdateExcludesCounter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE staff SET serial_no = $2, name = $3, category = $4, pg_year = $5, joining_date = $6 WHERE id = $1")).
		WithArgs(int64(3), nil, "Renamed", models.CategoryFaculty, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &models.Staff{ID: 3, Name: "Renamed", Category: models.CategoryFaculty})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffRepositoryDeleteCascadesAndRecounts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assignments WHERE staff_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM staff WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(recountAttendanceQuery)).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffRepositoryDeleteMissingRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assignments WHERE staff_id = $1")).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM staff WHERE id = $1")).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffRepositoryBulkInsertReplaceClearsTables(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM assignments").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM staff").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO staff").
		WithArgs(nil, "Imported", models.CategoryInternee, nil, nil, 0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	inserted, err := repo.BulkInsert(context.Background(), []models.Staff{
		{Name: "Imported", Category: models.CategoryInternee},
	}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffRepositoryExistingIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStaffRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM staff WHERE id IN ($1,$2,$3)")).
		WithArgs(int64(1), int64(2), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(3)))

	found, err := repo.ExistingIDs(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, found[1])
	assert.False(t, found[2])
	assert.True(t, found[3])
	assert.NoError(t, mock.ExpectationsWereMet())
}
