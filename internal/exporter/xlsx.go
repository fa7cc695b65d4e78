package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"company-rollup-go/internal/types"
)

// SheetName is the worksheet holding the rollup.
const SheetName = "Rollup"

// WriteXLSX writes the rollup as a single-sheet workbook with a bold header.
// Ratios are numeric cells, 0 when undefined.
func WriteXLSX(w io.Writer, rows []types.CompanyRollup) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(types.OutputHeader))
	for i, h := range types.OutputHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, style); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, r := range rows {
		cells := r.Cells()
		for j, c := range cells {
			if ratio, ok := c.(types.Ratio); ok {
				if ratio.Valid {
					cells[j] = ratio.Value
				} else {
					cells[j] = 0
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
