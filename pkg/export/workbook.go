package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet is a named tabular section of a workbook.
type Sheet struct {
	Name    string
	Dataset Dataset
}

// WorkbookExporter renders multiple datasets into a single XLSX workbook.
type WorkbookExporter struct{}

// NewWorkbookExporter builds a workbook exporter.
func NewWorkbookExporter() *WorkbookExporter {
	return &WorkbookExporter{}
}

// Render produces XLSX bytes with one worksheet per sheet, in order.
func (e *WorkbookExporter) Render(sheets []Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook requires at least one sheet")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, sheet := range sheets {
		if i == 0 {
			// Reuse the default sheet for the first dataset.
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return nil, fmt.Errorf("rename sheet %s: %w", sheet.Name, err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return nil, fmt.Errorf("create sheet %s: %w", sheet.Name, err)
			}
		}
		if err := writeSheet(f, sheet); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet Sheet) error {
	headers := make([]interface{}, len(sheet.Dataset.Headers))
	for i, h := range sheet.Dataset.Headers {
		headers[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &headers); err != nil {
		return fmt.Errorf("write headers for %s: %w", sheet.Name, err)
	}

	for idx, row := range sheet.Dataset.Rows {
		record := make([]interface{}, len(sheet.Dataset.Headers))
		for i, header := range sheet.Dataset.Headers {
			record[i] = row[header]
		}
		cell, err := excelize.CoordinatesToCellName(1, idx+2)
		if err != nil {
			return fmt.Errorf("cell coordinates for %s: %w", sheet.Name, err)
		}
		if err := f.SetSheetRow(sheet.Name, cell, &record); err != nil {
			return fmt.Errorf("write row for %s: %w", sheet.Name, err)
		}
	}
	return nil
}

// ReadFirstSheet extracts all rows of the first worksheet of an XLSX stream.
func ReadFirstSheet(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook stream: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}
