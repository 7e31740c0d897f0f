package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wmhmc/camp-attendance-api/internal/models"
	appErrors "github.com/wmhmc/camp-attendance-api/pkg/errors"
	"github.com/wmhmc/camp-attendance-api/pkg/export"
)

// RosterFormat selects the rendering of a camp roster report.
type RosterFormat string

const (
	RosterFormatCSV RosterFormat = "csv"
	RosterFormatPDF RosterFormat = "pdf"
)

// ParseRosterFormat validates a raw format string, defaulting to CSV.
func ParseRosterFormat(raw string) (RosterFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(RosterFormatCSV):
		return RosterFormatCSV, nil
	case string(RosterFormatPDF):
		return RosterFormatPDF, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown roster format %q", raw))
	}
}

// RosterReport is a rendered camp roster with download metadata.
type RosterReport struct {
	Filename    string
	ContentType string
	Payload     []byte
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type campAssignmentLister interface {
	ListForCamp(ctx context.Context, campID int64) ([]models.AssignmentDetail, error)
}

// RosterService renders the staff roster of a single camp.
type RosterService struct {
	camps       campFinder
	assignments campAssignmentLister
	csv         csvRenderer
	pdf         pdfRenderer
	logger      *zap.Logger
}

// NewRosterService constructs a RosterService.
func NewRosterService(camps campFinder, assignments campAssignmentLister, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *RosterService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{camps: camps, assignments: assignments, csv: csv, pdf: pdf, logger: logger}
}

// Generate renders the roster of the given camp in the requested format.
func (s *RosterService) Generate(ctx context.Context, campID int64, format RosterFormat) (*RosterReport, error) {
	camp, err := s.camps.FindByID(ctx, campID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "camp not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load camp")
	}

	assignments, err := s.assignments.ListForCamp(ctx, campID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load camp roster")
	}

	dataset := export.Dataset{
		Headers: []string{"staffId", "staffName"},
		Rows:    make([]map[string]string, len(assignments)),
	}
	for i, a := range assignments {
		dataset.Rows[i] = map[string]string{
			"staffId":   strconv.FormatInt(a.StaffID, 10),
			"staffName": a.StaffName,
		}
	}

	title := fmt.Sprintf("%s (%s)", camp.Title, camp.CampDate.Format(models.DateLayout))
	base := fmt.Sprintf("camp-%d-roster", camp.ID)

	switch format {
	case RosterFormatPDF:
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster pdf")
		}
		return &RosterReport{Filename: base + ".pdf", ContentType: "application/pdf", Payload: payload}, nil
	default:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster csv")
		}
		return &RosterReport{Filename: base + ".csv", ContentType: "text/csv", Payload: payload}, nil
	}
}
