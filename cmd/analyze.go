package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/medclean-cli/internal/dataset"
	"github.com/sells-group/medclean-cli/internal/processor"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <input-file>",
	Short: "Analyze data quality of medical columns",
	Long:  "Samples the requested columns and reports quality issues, per-issue counts, and cleaning recommendations without modifying anything.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, _ := cmd.Flags().GetString("sheet")
		columnsFlag, _ := cmd.Flags().GetString("columns")
		sample, _ := cmd.Flags().GetInt("sample")

		d, err := loadDataset(args[0], sheet)
		if err != nil {
			return err
		}

		if sample <= 0 {
			sample = cfg.Processing.SampleSize
		}

		mgr := processor.NewManager(nil, nil)
		results := mgr.AnalyzeDataset(d, splitColumns(columnsFlag), sample)
		if len(results) == 0 {
			return eris.New("analyze: no processable columns found")
		}

		coverage := mgr.Summarize(d)
		out := struct {
			Summary  string                              `yaml:"summary"`
			Coverage processor.Summary                   `yaml:"coverage"`
			Columns  map[string]processor.ColumnAnalysis `yaml:"columns"`
		}{
			Summary:  coverage.String(),
			Coverage: coverage,
			Columns:  results,
		}

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close() //nolint:errcheck
		return enc.Encode(out)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <input-file>",
	Short: "Validate the structure of a patient data file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, _ := cmd.Flags().GetString("sheet")

		d, err := loadDataset(args[0], sheet)
		if err != nil {
			return err
		}

		res := dataset.Validate(d)
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close() //nolint:errcheck
		if err := enc.Encode(res); err != nil {
			return err
		}
		if !res.Valid {
			return eris.New("validate: dataset is not valid")
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("sheet", "", "XLSX sheet name (default: first sheet)")
	analyzeCmd.Flags().String("columns", "", "comma separated columns to analyze (default: all processable)")
	analyzeCmd.Flags().Int("sample", 0, "number of values to sample per column")

	validateCmd.Flags().String("sheet", "", "XLSX sheet name (default: first sheet)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(validateCmd)
}
