package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hamcount/pkg/graph/families"
)

// familiesCommand creates the families command.
func (c *CLI) familiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "List the built-in graph families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range families.Names() {
				f, err := families.Lookup(name)
				if err != nil {
					return err
				}
				usage := name + " <n>"
				if f.Rectangular {
					usage += " [m]"
				}
				printKeyValue(usage, fmt.Sprintf("%s (n ≤ %d)", f.Description, f.Limit))
			}
			return nil
		},
	}
}
