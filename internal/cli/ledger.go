package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hamcount/pkg/results"
)

// resultsCommand creates the results command, which reads the ledger.
func (c *CLI) resultsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Inspect recorded counts",
	}
	cmd.AddCommand(c.resultsListCommand())
	cmd.AddCommand(c.resultsBrowseCommand())
	return cmd
}

func (c *CLI) resultsListCommand() *cobra.Command {
	var (
		f       results.Filter
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded counts, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ledger, err := results.Open(cmd.Context(), cfg.Results.Ledger())
			if err != nil {
				return err
			}
			defer ledger.Close()

			records, err := ledger.List(cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("list results: %w", err)
			}
			if jsonOut {
				return writeJSON(records)
			}
			if len(records) == 0 {
				printInfo("No recorded counts (results backend: %s)", cfg.Results.Backend)
				return nil
			}
			for _, r := range records {
				printKeyValue(r.Graph, fmt.Sprintf("%s %s", r.Count, r.Mode))
				printDetail("%s · %s · width %d · %s · run %s",
					r.Strategy, r.Timestamp.Format("2006-01-02 15:04:05"), r.Width, r.Version, r.RunID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&f.RunID, "run", "", "only records of this run")
	cmd.Flags().StringVar(&f.Graph, "graph", "", "only records of this graph")
	cmd.Flags().StringVar(&f.Mode, "mode", "", "only paths or cycles")
	cmd.Flags().IntVarP(&f.Limit, "limit", "n", 0, "at most this many records (0: all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print records as JSON")
	return cmd
}

func (c *CLI) resultsBrowseCommand() *cobra.Command {
	var f results.Filter

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse recorded counts interactively",
		Long: `Browse recorded counts in an interactive table.

Select a record with enter to print all of its fields.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ledger, err := results.Open(cmd.Context(), cfg.Results.Ledger())
			if err != nil {
				return err
			}
			defer ledger.Close()

			records, err := ledger.List(cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("list results: %w", err)
			}
			if len(records) == 0 {
				printInfo("No recorded counts (results backend: %s)", cfg.Results.Backend)
				return nil
			}

			p := tea.NewProgram(NewRecordListModel(records), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("browse results: %w", err)
			}
			m, ok := final.(RecordListModel)
			if !ok || m.Selected == nil {
				return nil
			}
			printRecord(*m.Selected)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.RunID, "run", "", "only records of this run")
	cmd.Flags().StringVar(&f.Graph, "graph", "", "only records of this graph")
	cmd.Flags().StringVar(&f.Mode, "mode", "", "only paths or cycles")
	return cmd
}
