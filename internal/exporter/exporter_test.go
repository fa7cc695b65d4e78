package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"company-rollup-go/internal/types"
)

func sampleRows() []types.CompanyRollup {
	return []types.CompanyRollup{
		{
			CompanyName:        "Acme, Inc.",
			Count:              2,
			AuditScore:         types.Ratio{Value: 0.5, Valid: true},
			Presence:           types.Ratio{Value: 0.25, Valid: true},
			Reputation:         types.Ratio{Value: 1, Valid: true},
			Verified:           1,
			Tracking:           0.5,
			LowReviewCount:     -1,
			ListingsPosting:    1,
			ListingsNotPosting: 1,
		},
		{
			CompanyName:        "Globex",
			Count:              1,
			AuditScore:         types.Ratio{Value: 1, Valid: true},
			LowReviewCount:     1,
			ListingsNotPosting: 1,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRows()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Company Name,Count,Audit Score,Presence,Reputation,Marketing,Messaging,"+
		"Company Name 1,Count 1,Presence 1,Verified,Tracking,Phone Number,Website URL,"+
		"Company Name 2,Count 2,Reputation 2,Low Review Count,High Ratings,"+
		"Company Name 3,Count 3,Marketing 2,Listings Posting,Listings Not Posting,Listings with Multiple Posts\r\n"))
	assert.Equal(t, 3, strings.Count(out, "\r\n"))

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	acme := records[1]
	assert.Equal(t, []string{
		"Acme, Inc.", "2", "0.50", "0.25", "1.00", "0", "0",
		"Acme, Inc.", "2", "0.25", "1", "0.5", "0", "0",
		"Acme, Inc.", "2", "1.00", "-1", "0",
		"Acme, Inc.", "2", "0", "1", "1", "0",
	}, acme)

	globex := records[2]
	assert.Equal(t, "Globex", globex[0])
	assert.Equal(t, "1.00", globex[2])
	assert.Equal(t, "0", globex[3])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, strings.Join(types.OutputHeader, ",")+"\r\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleRows()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, types.OutputHeader, rows[0])
	assert.Equal(t, "Acme, Inc.", rows[1][0])
	assert.Equal(t, "2", rows[1][1])
	assert.Equal(t, "0.5", rows[1][2])
	assert.Equal(t, "0", rows[1][5])
	assert.Equal(t, "Acme, Inc.", rows[1][19])
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("pdf"), nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	path, err := WriteFile(dir, FormatCSV, sampleRows())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "rolled-up-company-scores.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Globex")

	path, err = WriteFile(dir, FormatCSV, nil)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Globex")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatCSV, false},
		{"csv", FormatCSV, false},
		{" XLSX ", FormatXLSX, false},
		{"json", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "rolled-up-company-scores.xlsx", ArtifactName(FormatXLSX))
	assert.Contains(t, ContentType(FormatCSV), "text/csv")
}
