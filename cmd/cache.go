package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/medclean-cli/internal/termcache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the term cache",
	Long:  "Commands for viewing cache statistics, seeding well-known terms, and looking up cached standardizations.",
}

// -- cache stats --

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show term cache statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initCache(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		stats, err := st.Stats(ctx)
		if err != nil {
			return eris.Wrap(err, "cache stats")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintf(w, "Total terms:\t%d\n", stats.TotalTerms)
		_, _ = fmt.Fprintf(w, "High confidence (>0.8):\t%d\n", stats.HighConfidence)
		_ = w.Flush()
		return nil
	},
}

// -- cache seed --

var cacheSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the cache with well-known terms",
	Long:  "Loads common abbreviations, misspellings, and colloquial variants into the cache at high confidence. Existing entries for the same terms are overwritten.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initCache(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := prepareCache(ctx, st); err != nil {
			return eris.Wrap(err, "cache seed")
		}

		stats, err := st.Stats(ctx)
		if err != nil {
			return eris.Wrap(err, "cache seed")
		}
		fmt.Fprintf(os.Stdout, "Cache seeded; %d terms total\n", stats.TotalTerms)
		return nil
	},
}

// -- cache get --

var cacheGetCmd = &cobra.Command{
	Use:   "get <term>",
	Short: "Look up a cached standardization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initCache(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		entry, err := st.Get(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "cache get")
		}
		if entry == nil {
			fmt.Fprintln(os.Stderr, "Not cached.")
			return nil
		}

		fmt.Fprintf(os.Stdout, "%s -> %s (confidence %.2f, cached %s)\n",
			entry.Original, entry.Cleaned, entry.Confidence,
			entry.CreatedAt.Format("2006-01-02 15:04"))
		return nil
	},
}

// -- runs --

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded processing runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initCache(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := st.ListRuns(ctx, limit)
		if err != nil {
			return eris.Wrap(err, "runs list")
		}
		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs recorded.")
			return nil
		}

		formatRunsList(os.Stdout, runs)
		return nil
	},
}

// formatRunsList writes a tabular list of runs to w.
func formatRunsList(out io.Writer, runs []termcache.RunRecord) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tFILE\tCOLUMNS\tROWS\tCLEANED\tSTARTED\tDURATION")
	_, _ = fmt.Fprintln(w, "--\t----\t-------\t----\t-------\t-------\t--------")

	for _, r := range runs {
		file := r.InputFile
		if len(file) > 30 {
			file = "..." + file[len(file)-27:]
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			truncateID(r.ID),
			file,
			r.Columns,
			r.RowsTotal,
			r.RowsCleaned,
			r.StartedAt.Format("2006-01-02 15:04"),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String(),
		)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	runsCmd.Flags().Int("limit", 50, "max number of runs to display")

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheSeedCmd)
	cacheCmd.AddCommand(cacheGetCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(runsCmd)
}
