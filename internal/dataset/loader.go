package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"company-rollup-go/internal/types"
)

var (
	// ErrNoHeader is returned for input without a header row.
	ErrNoHeader = errors.New("no header row")
	// ErrUnsupportedFormat is returned for a workbook without sheets.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads a CSV or XLSX file from disk.
func Load(path string) (types.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Dataset{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return Parse(filepath.Base(path), f)
}

// Parse picks the parser from the file name: ".xlsx" is read as a workbook,
// everything else as CSV.
func Parse(name string, r io.Reader) (types.Dataset, error) {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return ParseXLSX(r)
	}
	return ParseCSV(r)
}

// ParseCSV reads CSV text whose first row names the columns. Rows shorter
// than the header leave the trailing columns absent; extra fields are dropped.
func ParseCSV(r io.Reader) (types.Dataset, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return types.Dataset{}, fmt.Errorf("read csv: %w", err)
	}
	return fromRows(rows)
}

// ParseXLSX reads the first sheet of a workbook.
func ParseXLSX(r io.Reader) (types.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return types.Dataset{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return types.Dataset{}, fmt.Errorf("%w: no sheets", ErrUnsupportedFormat)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return types.Dataset{}, fmt.Errorf("read rows: %w", err)
	}
	return fromRows(rows)
}

func fromRows(rows [][]string) (types.Dataset, error) {
	if len(rows) == 0 || isBlank(rows[0]) {
		return types.Dataset{}, ErrNoHeader
	}
	header := rows[0]
	ds := types.Dataset{
		Header:  header,
		Records: make([]types.Record, 0, len(rows)-1),
	}
	for _, r := range rows[1:] {
		if isBlank(r) {
			continue
		}
		rec := make(types.Record, len(header))
		for i, h := range header {
			if i >= len(r) {
				break
			}
			rec[h] = r[i]
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
