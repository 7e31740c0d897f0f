package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wmhmc/camp-attendance-api/internal/models"
	appErrors "github.com/wmhmc/camp-attendance-api/pkg/errors"
)

type mockBulkRepo struct {
	inserted    []models.Staff
	lastReplace bool
}

func (m *mockBulkRepo) BulkInsert(ctx context.Context, staff []models.Staff, replace bool) (int, error) {
	m.inserted = staff
	m.lastReplace = replace
	return len(staff), nil
}

func TestParseImportMode(t *testing.T) {
	mode, err := ParseImportMode("")
	require.NoError(t, err)
	assert.Equal(t, ImportModeAppend, mode)

	mode, err = ParseImportMode("Replace")
	require.NoError(t, err)
	assert.Equal(t, ImportModeReplace, mode)

	_, err = ParseImportMode("merge")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestMapHeaders(t *testing.T) {
	fields := MapHeaders([]string{"Sl No", "Staff Name", "Category", "PG Year", "DOJ", "Camps Attended", "Remarks"})
	assert.Equal(t, []string{
		FieldSerialNo,
		FieldName,
		FieldCategory,
		FieldPGYear,
		FieldJoiningDate,
		FieldCampsAttended,
		"",
	}, fields)
}

func TestMapHeadersIsCaseInsensitive(t *testing.T) {
	fields := MapHeaders([]string{"SERIAL NUMBER", "name", "Date of Joining"})
	assert.Equal(t, []string{FieldSerialNo, FieldName, FieldJoiningDate}, fields)
}

func TestImporterServiceImportRows(t *testing.T) {
	repo := &mockBulkRepo{}
	svc := NewImporterService(repo, NewWriteGate(), nil, zap.NewNop())

	rows := [][]string{
		{"Sl No", "Name", "Category", "PG Year", "Joining Date", "Camps"},
		{"1", "Dr. Rao", "Doctor", "", "2022-03-01", "4"},
		{"", "", "", "", "", ""},
		{"2", "Sana", "PG", "2nd Year", "", "not-a-number"},
	}
	result, err := svc.ImportRows(context.Background(), rows, ImportModeAppend)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, 2, result.Inserted)
	assert.False(t, repo.lastReplace)

	require.Len(t, repo.inserted, 2)
	first := repo.inserted[0]
	require.NotNil(t, first.SerialNo)
	assert.Equal(t, 1, *first.SerialNo)
	assert.Equal(t, "Dr. Rao", first.Name)
	assert.Equal(t, models.CategoryDoctor, first.Category)
	require.NotNil(t, first.JoiningDate)
	assert.Equal(t, time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC), *first.JoiningDate)
	assert.Equal(t, 4, first.CampsAttended)

	second := repo.inserted[1]
	assert.Equal(t, "Sana", second.Name)
	require.NotNil(t, second.PGYear)
	assert.Equal(t, "2nd Year", *second.PGYear)
	assert.Nil(t, second.JoiningDate)
	// A malformed counter cell falls back to zero instead of failing the row.
	assert.Equal(t, 0, second.CampsAttended)
}

func TestImporterServiceImportRowsReplaceMode(t *testing.T) {
	repo := &mockBulkRepo{}
	svc := NewImporterService(repo, NewWriteGate(), nil, zap.NewNop())

	rows := [][]string{
		{"Name", "Category"},
		{"Nurse Devi", "Nurse"},
	}
	result, err := svc.ImportRows(context.Background(), rows, ImportModeReplace)
	require.NoError(t, err)
	assert.Equal(t, ImportModeReplace, result.Mode)
	assert.True(t, repo.lastReplace)
}

func TestImporterServiceImportRowsRequiresHeader(t *testing.T) {
	svc := NewImporterService(&mockBulkRepo{}, NewWriteGate(), nil, zap.NewNop())

	_, err := svc.ImportRows(context.Background(), nil, ImportModeAppend)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestParseImportDate(t *testing.T) {
	parsed, ok := parseImportDate("2023-01-15")
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), parsed)

	parsed, ok = parseImportDate("15/01/2023")
	require.True(t, ok)
	assert.Equal(t, 2023, parsed.Year())

	// Excel serial for 2020-02-20.
	parsed, ok = parseImportDate("43881")
	require.True(t, ok)
	assert.Equal(t, 2020, parsed.Year())

	// Numbers outside the serial window are not dates.
	_, ok = parseImportDate("1987")
	assert.False(t, ok)

	_, ok = parseImportDate("someday")
	assert.False(t, ok)
}
