package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rpattn/shadowschema/internal/registry"
)

const mappingSheet = "Mapping"

// WriteReport writes an xlsx workbook describing the derived shadow schema
// to the given path: a summary sheet mapping originals to shadows, plus one
// sheet per derived table listing its columns.
func WriteReport(path string, reg *registry.Registry) error {
	f, err := buildWorkbook(reg)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save schema report: %w", err)
	}
	return nil
}

// StreamReport writes the workbook to an io.Writer, for HTTP downloads.
func StreamReport(w io.Writer, reg *registry.Registry) error {
	f, err := buildWorkbook(reg)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to stream schema report: %w", err)
	}
	return nil
}

func buildWorkbook(reg *registry.Registry) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", mappingSheet)

	headers := []string{"Original", "Shadow", "Shadow Table"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(mappingSheet, cell, header)
	}

	snapshot := BuildSnapshot(reg)
	for row, entity := range snapshot.Entities {
		values := []string{entity.Original, entity.Shadow, entity.Table.Name}
		for i, value := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row+2)
			f.SetCellValue(mappingSheet, cell, value)
		}
	}

	tables := []TableView{}
	if snapshot.Transaction != nil {
		tables = append(tables, *snapshot.Transaction)
	}
	seen := map[string]bool{}
	for _, entity := range snapshot.Entities {
		if !seen[entity.Table.Name] {
			seen[entity.Table.Name] = true
			tables = append(tables, entity.Table)
		}
	}

	for _, table := range tables {
		if err := writeTableSheet(f, table); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func writeTableSheet(f *excelize.File, table TableView) error {
	// Sheet names are capped at 31 characters by the xlsx format.
	name := table.Name
	if len(name) > 31 {
		name = name[:31]
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet for table %s: %w", table.Name, err)
	}

	headers := []string{"Column", "Type", "Nullable", "Primary Key"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(name, cell, header)
	}
	for row, col := range table.Columns {
		values := []any{col.Name, col.Type, col.Nullable, col.PrimaryKey}
		for i, value := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row+2)
			f.SetCellValue(name, cell, value)
		}
	}
	return nil
}
