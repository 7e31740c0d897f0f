package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmhmc/camp-attendance-api/internal/models"
)

func TestSettingsRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("theme.accent", "#9b6bff").
		AddRow("theme.primary", "#131321")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT key, value FROM settings ORDER BY key ASC")).
		WillReturnRows(rows)

	settings, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, settings, 2)
	assert.Equal(t, "theme.accent", settings[0].Key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepositoryBulkUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO settings").
		WithArgs("theme.primary", "#101010").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.BulkUpsert(context.Background(), []models.Setting{{Key: "theme.primary", Value: "#101010"}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepositoryBulkUpsertEmptyIsNoop(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	err := repo.BulkUpsert(context.Background(), nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepositorySeedDefaultsKeepsExisting(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO settings (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING")).
		WithArgs("theme.bg", "#0f0f13").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SeedDefaults(context.Background(), []models.Setting{{Key: "theme.bg", Value: "#0f0f13"}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
