package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"ledgerlens/internal/config"
	"ledgerlens/internal/exporter"
	"ledgerlens/internal/ingest"
	"ledgerlens/internal/unify"
	"ledgerlens/internal/verify"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		slog.Error("verifycsv failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("verifycsv", flag.ContinueOnError)
	out := fs.String("out", "", "write the unified dataset CSV to this path")
	issues := fs.String("issues", "", "write the issue report CSV to this path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	paths := fs.Args()
	if len(paths) == 0 {
		return fmt.Errorf("usage: verifycsv [-out dataset.csv] [-issues issues.csv] file...")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", slog.String("error", err.Error()))
		cfg = &config.Config{}
		cfg.Verification = config.VerificationConfig{
			OutlierThresholdAbs: verify.DefaultOutlierThresholdAbs,
			HotColumnRatio:      verify.DefaultHotColumnRatio,
			IQRMultiplier:       verify.DefaultIQRMultiplier,
			ZScoreThreshold:     verify.DefaultZScoreThreshold,
			MinIQRSamples:       verify.DefaultMinIQRSamples,
			MinZScoreSamples:    verify.DefaultMinZScoreSamples,
		}
	}

	batches, err := ingest.LoadBatches(ctx, paths)
	if err != nil {
		return err
	}

	data, mappings := ingest.Split(batches)
	rows := unify.Unify(data, mappings)

	indexMap := make([]int, len(rows))
	for i := range indexMap {
		indexMap[i] = i
	}
	result := verify.Run(rows, indexMap, cfg.Verification.Engine())

	fmt.Fprintf(stdout, "batches: %d (mappings: %d)\n", len(batches), len(mappings))
	fmt.Fprintf(stdout, "rows: %d\n", len(rows))
	fmt.Fprintf(stdout, "rows with issues: %d (errors: %d, warnings: %d)\n",
		result.RowsWithIssues, result.Errors, result.Warnings)
	fmt.Fprintf(stdout, "duplicates: %d, outliers: %d, invalid numbers: %d\n",
		result.Duplicates, result.Outliers, result.InvalidNumbers)
	fmt.Fprintf(stdout, "cross-field: %d, monthly anomalies: %d, IQR anomalies: %d\n",
		result.CrossField, result.MonthlyAnomalies, result.CompanyIQRAnomalies)
	for _, col := range result.HotColumns {
		fmt.Fprintf(stdout, "hot column: %s (%.1f%%)\n", col, result.ColumnStats[col].Ratio*100)
	}

	if *out != "" {
		if err := exporter.WriteDatasetFile(*out, rows); err != nil {
			return fmt.Errorf("write dataset: %w", err)
		}
	}
	if *issues != "" {
		if err := exporter.WriteIssuesFile(*issues, result); err != nil {
			return fmt.Errorf("write issues: %w", err)
		}
	}
	return nil
}
