package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/medclean-cli/internal/processor"
)

var processorsCmd = &cobra.Command{
	Use:   "processors",
	Short: "List available column processors",
	RunE: func(cmd *cobra.Command, _ []string) error {
		mgr := processor.NewManager(nil, nil)
		procs := mgr.AvailableProcessors()

		names := make([]string, 0, len(procs))
		for name := range procs {
			names = append(names, name)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "COLUMN\tDESCRIPTION")
		_, _ = fmt.Fprintln(w, "------\t-----------")
		for _, name := range names {
			_, _ = fmt.Fprintf(w, "%s\t%s\n", name, procs[name])
		}
		_ = w.Flush()
		return nil
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules <column>",
	Short: "Show the validation rules for a column processor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := processor.NewManager(nil, nil)
		p, ok := mgr.Processor(args[0])
		if !ok {
			return eris.Errorf("no processor registered for column %q", args[0])
		}

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close() //nolint:errcheck
		return enc.Encode(p.ValidationRules())
	},
}

func init() {
	rootCmd.AddCommand(processorsCmd)
	rootCmd.AddCommand(rulesCmd)
}
