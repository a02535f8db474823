package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hamcount/pkg/counting"
	"github.com/matzehuels/hamcount/pkg/graph"
	"github.com/matzehuels/hamcount/pkg/separation"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

// orderCommand creates the order command.
func (c *CLI) orderCommand() *cobra.Command {
	var (
		flags  orderFlags
		input  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "order <family> <n> [m]",
		Short: "Compute a vertex order and its separation width",
		Long: `Compute the vertex order a strategy produces and report its separation width.

The width is recomputed from the order under both boundary conventions: the
placed vertices with an unplaced neighbour (the width the counter pays for)
and the unplaced vertices with a placed neighbour.`,
		Example: `  hamcount order grid 5 --order pathwidth
  hamcount order knight 6 --order pathwidth --stratified -O knight6.json`,
		ValidArgsFunction: completeFamily,
		Args:              graphArgs(&input),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(input, args)
			if err != nil {
				return err
			}
			return c.runOrder(cmd, g, flags, output)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", "", "read the graph from a JSON file instead of a family")
	cmd.Flags().StringVarP(&output, "output", "O", "", "write the ranked graph as JSON")
	return cmd
}

// runOrder orders g and prints the arrangement.
func (c *CLI) runOrder(cmd *cobra.Command, g *graph.Graph, flags orderFlags, output string) (err error) {
	ctx := cmd.Context()
	rt, err := c.newEnv(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	flags.applySolver(cmd, rt)

	p := counting.Params{
		Strategy: c.strategy(rt.cfg.Count.Strategy, flags.order),
		Refresh:  flags.refresh,
	}
	prog := newProgress(c.Logger)
	order, hit, err := rt.counter.OrderWithCacheInfo(ctx, g, "", p)
	if err != nil {
		return fmt.Errorf("order: %w", err)
	}
	prog.done("ordered "+g.Name(), "strategy", p.Strategy, "cached", hit)

	width, err := separation.Width(g, order)
	if err != nil {
		return err
	}
	outer, err := separation.OuterWidth(g, order)
	if err != nil {
		return err
	}
	if output != "" {
		if err := hcerrors.ValidatePath(output); err != nil {
			return err
		}
		if err := writeArrangementFile(g, order, output); err != nil {
			return err
		}
	}

	printSuccess("%s ordered by %s", g.Name(), p.Strategy)
	printCount("width", strconv.Itoa(width))
	printKeyValue("outer", strconv.Itoa(outer))
	printKeyValue("order", strings.Join(order, " "))
	printStats(g.VertexCount(), g.EdgeCount(), width, hit)
	if output != "" {
		printFile(output)
		printNewline()
		printNextStep("Count", "hamcount count --input "+output+" --order default")
	}
	return nil
}

func writeArrangementFile(g *graph.Graph, order []string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := graph.WriteArrangement(g, order, f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
