package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"company-rollup-go/internal/types"
)

// WriteCSV writes the header and one CRLF terminated line per rollup row.
func WriteCSV(w io.Writer, rows []types.CompanyRollup) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(types.OutputHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, r := range rows {
		if err := cw.Write(r.Strings()); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
