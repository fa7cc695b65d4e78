package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company-rollup-go/internal/aggregator"
	"company-rollup-go/internal/logger"
)

func TestSummarize(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader(sampleCSV + ",1,1,1\n"))
	require.NoError(t, err)

	s := Summarize(ds)
	assert.Equal(t, 4, s.TotalRows)
	assert.Equal(t, 3, s.KeyedRows)
	assert.Equal(t, 1, s.SkippedRows)
	assert.Equal(t, 2, s.DistinctGroups)
	assert.Equal(t, 4, s.Columns)

	assert.NotContains(t, s.MissingColumns, aggregator.ColCompanyName)
	assert.NotContains(t, s.MissingColumns, aggregator.ColHasPosts)
	assert.Contains(t, s.MissingColumns, aggregator.ColIsClaimed)
	assert.Len(t, s.MissingColumns, len(aggregator.MetricColumns)-3)
}

func TestLoadAndSummarize(t *testing.T) {
	var logs bytes.Buffer
	l := logger.NewWithOptions(logger.Options{Environment: "test", Output: &logs})
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	ds, s, err := LoadAndSummarize(path, l)
	require.NoError(t, err)
	assert.Len(t, ds.Records, 3)
	assert.Equal(t, 2, s.DistinctGroups)
	assert.Contains(t, logs.String(), `"distinct_groups":2`)
	assert.Contains(t, logs.String(), "missing_columns")

	_, _, err = LoadAndSummarize(filepath.Join(t.TempDir(), "nope.csv"), l)
	assert.Error(t, err)
}
