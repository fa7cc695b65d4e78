package exporter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned for an export format other than csv or xlsx.
var ErrUnknownFormat = errors.New("unknown export format")

// Format selects the artifact encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ArtifactBase is the fixed download name without extension.
const ArtifactBase = "rolled-up-company-scores"

// ParseFormat maps a user supplied name to a Format. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ArtifactName is the file name of the export for f.
func ArtifactName(f Format) string {
	return ArtifactBase + "." + string(f)
}

func ContentType(f Format) string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}
