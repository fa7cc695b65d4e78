package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"company-rollup-go/internal/config"
	"company-rollup-go/internal/dataset"
	"company-rollup-go/internal/exporter"
	"company-rollup-go/internal/logger"
	"company-rollup-go/internal/metrics"
	"company-rollup-go/internal/processor"
)

type options struct {
	input    string
	outDir   string
	format   string
	toStdout bool
}

func newRootCmd(stdout io.Writer, log *logger.Logger, defaultOutDir string) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "rollup --in <file>",
		Short: "Roll up company audit scores from a CSV or XLSX export",
		Long: `rollup groups rows by "Associated Company Name", sums the audit
test and listing flag columns per company, and writes
rolled-up-company-scores.csv (or .xlsx) with one row per company.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o, stdout, log)
		},
	}
	cmd.Flags().StringVarP(&o.input, "in", "i", "", "input file (.csv or .xlsx)")
	cmd.Flags().StringVarP(&o.outDir, "out-dir", "o", defaultOutDir, "directory for the artifact")
	cmd.Flags().StringVarP(&o.format, "format", "f", "csv", "artifact format: csv or xlsx")
	cmd.Flags().BoolVar(&o.toStdout, "stdout", false, "write the artifact to stdout instead of a file")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func run(o options, stdout io.Writer, log *logger.Logger) error {
	format, err := exporter.ParseFormat(o.format)
	if err != nil {
		return err
	}

	ds, _, err := dataset.LoadAndSummarize(o.input, log)
	if err != nil {
		return fmt.Errorf("load %s: %w", o.input, err)
	}

	proc := processor.New(log, metrics.New())
	if o.toStdout {
		_, err = proc.Process(ds, format, stdout)
		return err
	}
	res, err := proc.ProcessToDir(ds, format, o.outDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, res.Path)
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New().WithError(err).Fatal("invalid configuration")
	}
	// logs go to stderr so --stdout output stays clean
	log := logger.NewWithOptions(logger.Options{Environment: cfg.Environment, Level: cfg.LogLevel, Output: os.Stderr})

	if err := newRootCmd(os.Stdout, log, cfg.OutputDir).Execute(); err != nil {
		log.WithError(err).Error("rollup failed")
		os.Exit(1)
	}
}
