package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/wmhmc/camp-attendance-api/internal/models"
	appErrors "github.com/wmhmc/camp-attendance-api/pkg/errors"
	"github.com/wmhmc/camp-attendance-api/pkg/export"
)

// Worksheet names of the full export.
const (
	SheetStaff       = "Staff"
	SheetCamps       = "Camps"
	SheetAssignments = "Assignments"
)

type staffLister interface {
	List(ctx context.Context) ([]models.Staff, error)
}

type campLister interface {
	List(ctx context.Context) ([]models.Camp, error)
}

type assignmentLister interface {
	ListAll(ctx context.Context) ([]models.AssignmentDetail, error)
}

type workbookRenderer interface {
	Render(sheets []export.Sheet) ([]byte, error)
}

// WorkbookService renders the three collections into a single XLSX
// workbook, one sheet per collection, in each collection's default order.
type WorkbookService struct {
	staff       staffLister
	camps       campLister
	assignments assignmentLister
	renderer    workbookRenderer
	logger      *zap.Logger
}

// NewWorkbookService constructs a WorkbookService.
func NewWorkbookService(staff staffLister, camps campLister, assignments assignmentLister, renderer workbookRenderer, logger *zap.Logger) *WorkbookService {
	if renderer == nil {
		renderer = export.NewWorkbookExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkbookService{staff: staff, camps: camps, assignments: assignments, renderer: renderer, logger: logger}
}

// Export produces the full workbook bytes.
func (s *WorkbookService) Export(ctx context.Context) ([]byte, error) {
	staff, err := s.staff.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff for export")
	}
	camps, err := s.camps.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load camps for export")
	}
	assignments, err := s.assignments.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments for export")
	}

	sheets := []export.Sheet{
		{Name: SheetStaff, Dataset: staffDataset(staff)},
		{Name: SheetCamps, Dataset: campDataset(camps)},
		{Name: SheetAssignments, Dataset: assignmentDataset(assignments)},
	}

	payload, err := s.renderer.Render(sheets)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render workbook")
	}
	return payload, nil
}

func staffDataset(staff []models.Staff) export.Dataset {
	headers := []string{FieldID, FieldSerialNo, FieldName, FieldCategory, FieldPGYear, FieldJoiningDate, FieldCampsAttended}
	rows := make([]map[string]string, len(staff))
	for i, s := range staff {
		row := map[string]string{
			FieldID:            strconv.FormatInt(s.ID, 10),
			FieldName:          s.Name,
			FieldCategory:      string(s.Category),
			FieldCampsAttended: strconv.Itoa(s.CampsAttended),
		}
		if s.SerialNo != nil {
			row[FieldSerialNo] = strconv.Itoa(*s.SerialNo)
		}
		if s.PGYear != nil {
			row[FieldPGYear] = *s.PGYear
		}
		if s.JoiningDate != nil {
			row[FieldJoiningDate] = s.JoiningDate.Format(models.DateLayout)
		}
		rows[i] = row
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func campDataset(camps []models.Camp) export.Dataset {
	headers := []string{"id", "title", "campDate"}
	rows := make([]map[string]string, len(camps))
	for i, c := range camps {
		rows[i] = map[string]string{
			"id":       strconv.FormatInt(c.ID, 10),
			"title":    c.Title,
			"campDate": c.CampDate.Format(models.DateLayout),
		}
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func assignmentDataset(assignments []models.AssignmentDetail) export.Dataset {
	headers := []string{"id", "campId", "staffId"}
	rows := make([]map[string]string, len(assignments))
	for i, a := range assignments {
		rows[i] = map[string]string{
			"id":      strconv.FormatInt(a.ID, 10),
			"campId":  strconv.FormatInt(a.CampID, 10),
			"staffId": strconv.FormatInt(a.StaffID, 10),
		}
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
