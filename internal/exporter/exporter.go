package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"company-rollup-go/internal/types"
)

// Write encodes rows in format f.
func Write(w io.Writer, f Format, rows []types.CompanyRollup) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatXLSX:
		return WriteXLSX(w, rows)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// WriteFile writes the artifact into dir, creating dir if needed, and
// returns the file path. An existing artifact is replaced.
func WriteFile(dir string, f Format, rows []types.CompanyRollup) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, ArtifactName(f))

	tmp, err := os.CreateTemp(dir, "."+ArtifactBase+"-*")
	if err != nil {
		return "", fmt.Errorf("failed to create artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, f, rows); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to move artifact into place: %w", err)
	}
	return path, nil
}
