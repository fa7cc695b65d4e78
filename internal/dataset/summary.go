package dataset

import (
	"company-rollup-go/internal/aggregator"
	"company-rollup-go/internal/logger"
	"company-rollup-go/internal/types"
)

// Summary describes a loaded dataset before it is rolled up.
type Summary struct {
	TotalRows      int      `json:"total_rows"`
	KeyedRows      int      `json:"keyed_rows"`
	SkippedRows    int      `json:"skipped_rows"`
	DistinctGroups int      `json:"distinct_groups"`
	Columns        int      `json:"columns"`
	MissingColumns []string `json:"missing_columns,omitempty"`
}

// Summarize counts rows and groups and lists the rollup columns the header lacks.
func Summarize(ds types.Dataset) Summary {
	s := Summary{
		TotalRows: len(ds.Records),
		Columns:   len(ds.Header),
	}
	seen := map[string]struct{}{}
	for _, r := range ds.Records {
		key := r[aggregator.ColCompanyName]
		if key == "" {
			s.SkippedRows++
			continue
		}
		s.KeyedRows++
		seen[key] = struct{}{}
	}
	s.DistinctGroups = len(seen)

	required := append([]string{aggregator.ColCompanyName}, aggregator.MetricColumns...)
	for _, c := range required {
		if !ds.HasColumn(c) {
			s.MissingColumns = append(s.MissingColumns, c)
		}
	}
	return s
}

// LoadAndSummarize loads path and logs its summary.
func LoadAndSummarize(path string, l *logger.Logger) (types.Dataset, Summary, error) {
	log := l.WithComponent("dataset.summary").WithField("path", path)
	log.Info("opening dataset")
	ds, err := Load(path)
	if err != nil {
		log.WithError(err).Error("load failed")
		return types.Dataset{}, Summary{}, err
	}
	s := Summarize(ds)
	entry := log.WithFields(map[string]interface{}{
		"total_rows":      s.TotalRows,
		"keyed_rows":      s.KeyedRows,
		"skipped_rows":    s.SkippedRows,
		"distinct_groups": s.DistinctGroups,
	})
	if len(s.MissingColumns) > 0 {
		entry.WithField("missing_columns", s.MissingColumns).Warn("dataset lacks rollup columns, they count as zero")
	} else {
		entry.Info("dataset summary ready")
	}
	return ds, s, nil
}
