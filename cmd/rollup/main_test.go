package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company-rollup-go/internal/logger"
)

const input = "Associated Company Name,Total Passed,Total Results,Has Posts\n" +
	"Acme,8,10,1\n" +
	"Acme,2,10,0\n" +
	"Globex,5,5\n"

func execute(t *testing.T, outDir string, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	log := logger.NewWithOptions(logger.Options{Level: "panic", Output: io.Discard})
	cmd := newRootCmd(&stdout, log, outDir)
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return stdout.String(), err
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scores.csv")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o644))
	return path
}

func TestRollupCmd_WritesArtifact(t *testing.T) {
	in := writeInput(t)
	outDir := filepath.Join(t.TempDir(), "out")

	stdout, err := execute(t, outDir, "--in", in)
	require.NoError(t, err)

	want := filepath.Join(outDir, "rolled-up-company-scores.csv")
	assert.Equal(t, want+"\n", stdout)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\r\n"), "\r\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "Acme,2,0.50,"))
	assert.True(t, strings.HasPrefix(lines[2], "Globex,1,1.00,"))
}

func TestRollupCmd_Stdout(t *testing.T) {
	in := writeInput(t)
	stdout, err := execute(t, t.TempDir(), "--in", in, "--stdout")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "Company Name,Count,Audit Score,"))
	assert.Contains(t, stdout, "Globex,1,1.00,")
}

func TestRollupCmd_XLSX(t *testing.T) {
	in := writeInput(t)
	outDir := t.TempDir()
	stdout, err := execute(t, outDir, "-i", in, "-f", "xlsx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "rolled-up-company-scores.xlsx")+"\n", stdout)
}

func TestRollupCmd_Errors(t *testing.T) {
	_, err := execute(t, t.TempDir())
	assert.Error(t, err, "--in is required")

	_, err = execute(t, t.TempDir(), "--in", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = execute(t, t.TempDir(), "--in", writeInput(t), "--format", "pdf")
	assert.Error(t, err)
}
