package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/medclean-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "medclean",
	Short: "Medical free-text standardization pipeline",
	Long:  "Cleans and standardizes free-text medical columns (test names, biomarkers, diagnoses) in patient data files using rule tables, fuzzy vocabulary matching, a persistent term cache, and optional Claude enrichment.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
