package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "camp_id", "staff_id", "camp_title", "staff_name"}).
		AddRow(int64(1), int64(10), int64(20), "Eye Camp", "Dr. Rao")
	mock.ExpectQuery("SELECT a.id, a.camp_id, a.staff_id, c.title AS camp_title, s.name AS staff_name").
		WillReturnRows(rows)

	details, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Eye Camp", details[0].CampTitle)
	assert.Equal(t, "Dr. Rao", details[0].StaffName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryAssignSkipsDuplicates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	insert := regexp.QuoteMeta("INSERT INTO assignments (camp_id, staff_id) VALUES ($1, $2) ON CONFLICT (camp_id, staff_id) DO NOTHING")
	mock.ExpectBegin()
	mock.ExpectExec(insert).WithArgs(int64(1), int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insert).WithArgs(int64(1), int64(6)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(recountAttendanceQuery)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	inserted, err := repo.Assign(context.Background(), 1, []int64{5, 6})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryAssignRollsBackOnError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO assignments").
		WithArgs(int64(1), int64(5)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repo.Assign(context.Background(), 1, []int64{5})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryUnassign(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assignments WHERE camp_id = $1 AND staff_id = $2")).
		WithArgs(int64(1), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(recountAttendanceQuery)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := repo.Unassign(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryUnassignMissingPair(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assignments WHERE camp_id = $1 AND staff_id = $2")).
		WithArgs(int64(1), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(recountAttendanceQuery)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	removed, err := repo.Unassign(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryRecount(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(recountAttendanceQuery)).WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.Recount(context.Background())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
