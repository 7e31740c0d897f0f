package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/wmhmc/camp-attendance-api/internal/models"
	appErrors "github.com/wmhmc/camp-attendance-api/pkg/errors"
	"github.com/wmhmc/camp-attendance-api/pkg/export"
)

// ImportMode selects how a staff import treats the existing directory.
type ImportMode string

const (
	// ImportModeAppend inserts each mapped row as a new staff record.
	ImportModeAppend ImportMode = "append"
	// ImportModeReplace clears the staff directory (and its assignment
	// rows) before inserting.
	ImportModeReplace ImportMode = "replace"
)

// ParseImportMode validates a raw mode string, defaulting to append.
func ParseImportMode(raw string) (ImportMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(ImportModeAppend):
		return ImportModeAppend, nil
	case string(ImportModeReplace):
		return ImportModeReplace, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown import mode %q", raw))
	}
}

// Canonical staff field names used for header mapping and workbook columns.
const (
	FieldID            = "id"
	FieldSerialNo      = "serialNo"
	FieldName          = "name"
	FieldCategory      = "category"
	FieldPGYear        = "pgYear"
	FieldJoiningDate   = "joiningDate"
	FieldCampsAttended = "campsAttended"
)

type bulkStaffRepository interface {
	BulkInsert(ctx context.Context, staff []models.Staff, replace bool) (int, error)
}

// ImportResult reports the outcome of a bulk staff import.
type ImportResult struct {
	Mode     ImportMode `json:"mode"`
	Rows     int        `json:"rows"`
	Inserted int        `json:"inserted"`
}

// ImporterService ingests spreadsheet rows into the staff directory.
type ImporterService struct {
	repo   bulkStaffRepository
	gate   *WriteGate
	cache  *CacheService
	logger *zap.Logger
}

// NewImporterService constructs an ImporterService.
func NewImporterService(repo bulkStaffRepository, gate *WriteGate, cache *CacheService, logger *zap.Logger) *ImporterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImporterService{repo: repo, gate: gate, cache: cache, logger: logger}
}

// ImportWorkbook reads the first worksheet of an XLSX stream and imports its
// rows. The first row is treated as the header row.
func (s *ImporterService) ImportWorkbook(ctx context.Context, r io.Reader, mode ImportMode) (*ImportResult, error) {
	rows, err := export.ReadFirstSheet(r)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unreadable workbook")
	}
	return s.ImportRows(ctx, rows, mode)
}

// ImportRows maps tabular rows onto staff records and inserts them. Headers
// are matched leniently; unmapped columns are dropped and missing canonical
// fields are defaulted. A malformed cell never aborts the batch.
func (s *ImporterService) ImportRows(ctx context.Context, rows [][]string, mode ImportMode) (*ImportResult, error) {
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "import requires a header row")
	}

	fields := MapHeaders(rows[0])
	staff := make([]models.Staff, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}
		staff = append(staff, buildImportedStaff(fields, row))
	}

	if s.gate != nil {
		s.gate.Lock()
		defer s.gate.Unlock()
	}
	inserted, err := s.repo.BulkInsert(ctx, staff, mode == ImportModeReplace)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import staff")
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, dashboardCachePattern)
	}

	s.logger.Info("staff import completed",
		zap.String("mode", string(mode)),
		zap.Int("rows", len(staff)),
		zap.Int("inserted", inserted),
	)

	return &ImportResult{Mode: mode, Rows: len(staff), Inserted: inserted}, nil
}

// MapHeaders resolves each column header to a canonical staff field using
// case-insensitive substring matching. Columns with no match map to the
// empty string and are dropped.
func MapHeaders(headers []string) []string {
	fields := make([]string, len(headers))
	for i, header := range headers {
		lc := strings.ToLower(strings.TrimSpace(header))
		switch {
		case lc == "":
			fields[i] = ""
		case strings.Contains(lc, "serial") || strings.Contains(lc, "sl"):
			fields[i] = FieldSerialNo
		case strings.Contains(lc, "name"):
			fields[i] = FieldName
		case strings.Contains(lc, "category"):
			fields[i] = FieldCategory
		case strings.Contains(lc, "pg") || strings.Contains(lc, "year"):
			fields[i] = FieldPGYear
		case strings.Contains(lc, "join") || strings.Contains(lc, "doj"):
			fields[i] = FieldJoiningDate
		case strings.Contains(lc, "camp") || strings.Contains(lc, "attend"):
			fields[i] = FieldCampsAttended
		default:
			fields[i] = ""
		}
	}
	return fields
}

func buildImportedStaff(fields []string, row []string) models.Staff {
	staff := models.Staff{}
	for i, field := range fields {
		if field == "" || i >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[i])
		if value == "" {
			continue
		}
		switch field {
		case FieldSerialNo:
			if n, ok := parseInt(value); ok && n > 0 {
				staff.SerialNo = &n
			}
		case FieldName:
			staff.Name = value
		case FieldCategory:
			staff.Category = models.StaffCategory(value)
		case FieldPGYear:
			v := value
			staff.PGYear = &v
		case FieldJoiningDate:
			if parsed, ok := parseImportDate(value); ok {
				staff.JoiningDate = &parsed
			}
		case FieldCampsAttended:
			if n, ok := parseInt(value); ok && n >= 0 {
				staff.CampsAttended = n
			}
		}
	}
	return staff
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseInt(value string) (int, bool) {
	if n, err := strconv.Atoi(value); err == nil {
		return n, true
	}
	// Spreadsheet cells frequently carry integers as floats ("3.0").
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

var importDateFormats = []string{
	models.DateLayout,
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"1/2/2006",
	"01/02/2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"2006-01-02T15:04:05",
}

func parseImportDate(value string) (time.Time, bool) {
	// Excel numeric date serials; the range guard keeps plain years or
	// serial numbers from being misread as dates.
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if serial >= 20000 && serial <= 80000 {
			if parsed, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	}
	for _, format := range importDateFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
