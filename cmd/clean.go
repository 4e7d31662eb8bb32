package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/medclean-cli/internal/dataset"
	"github.com/sells-group/medclean-cli/internal/processor"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <input-file>",
	Short: "Clean and standardize medical columns in a data file",
	Long:  "Loads an XLSX or CSV patient data file, cleans the requested columns, and writes the result with cleaned_<col> and confidence_<col> columns added.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		input := args[0]

		if err := cfg.Validate("clean"); err != nil {
			return err
		}

		sheet, _ := cmd.Flags().GetString("sheet")
		columnsFlag, _ := cmd.Flags().GetString("columns")
		output, _ := cmd.Flags().GetString("output")
		limit, _ := cmd.Flags().GetInt("limit")
		skipValidation, _ := cmd.Flags().GetBool("skip-validation")

		d, err := loadDataset(input, sheet)
		if err != nil {
			return err
		}
		zap.L().Info("dataset loaded",
			zap.String("file", input),
			zap.Int("rows", d.Rows()),
			zap.Int("columns", len(d.Columns())),
		)

		if !skipValidation {
			res := dataset.Validate(d)
			for _, w := range res.Warnings {
				zap.L().Warn("dataset quality warning", zap.String("warning", w))
			}
			if !res.Valid {
				return eris.Errorf("dataset validation failed: %s", strings.Join(res.Issues, "; "))
			}
		}

		cache, err := initCache(ctx)
		if err != nil {
			return eris.Wrap(err, "clean: open term cache")
		}
		defer cache.Close() //nolint:errcheck
		if err := prepareCache(ctx, cache); err != nil {
			return eris.Wrap(err, "clean")
		}

		mgr := processor.NewManager(cache, initCleaner())
		columns := splitColumns(columnsFlag)

		rowLimit := limit
		if rowLimit <= 0 {
			rowLimit = cfg.Processing.RowLimit
		}
		opts := processor.Options{
			RowLimit:   rowLimit,
			BatchSize:  cfg.Processing.BatchSize,
			BatchDelay: cfg.Processing.BatchDelay(),
		}

		started := time.Now()
		report := mgr.ProcessColumns(ctx, d, columns, opts)
		if len(report) == 0 {
			return eris.New("clean: no processable columns found")
		}
		for name, entry := range report {
			if entry.Error != "" {
				zap.L().Error("column failed",
					zap.String("column", name),
					zap.String("error", entry.Error))
			}
		}

		if output == "" {
			output = derivedOutputPath(input)
		}
		if err := dataset.WriteCSV(d, output); err != nil {
			return eris.Wrap(err, "clean: write output")
		}

		processed := make([]string, 0, len(report))
		for name := range report {
			processed = append(processed, name)
		}
		if err := mgr.RecordRun(ctx, input, processed, d.Rows(), started, time.Now()); err != nil {
			zap.L().Warn("failed to record run", zap.Error(err))
		}

		agg := mgr.Stats()
		fmt.Fprintf(os.Stdout, "Processed %d values across %d columns (%.0f%% successful)\n",
			agg.TotalProcessed, agg.ColumnsProcessed, agg.SuccessRate*100)
		fmt.Fprintf(os.Stdout, "Output written to %s\n", output)
		return nil
	},
}

// derivedOutputPath names the output file next to the input.
func derivedOutputPath(input string) string {
	base := input
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base + "_cleaned.csv"
}

func init() {
	cleanCmd.Flags().String("sheet", "", "XLSX sheet name (default: first sheet)")
	cleanCmd.Flags().String("columns", "", "comma separated columns to clean (default: all processable)")
	cleanCmd.Flags().StringP("output", "o", "", "output CSV path (default: <input>_cleaned.csv)")
	cleanCmd.Flags().Int("limit", 0, "max rows to process; remaining rows are marked not processed")
	cleanCmd.Flags().Bool("skip-validation", false, "skip dataset structure validation")

	rootCmd.AddCommand(cleanCmd)
}
