package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hamcount/pkg/counting"
	"github.com/matzehuels/hamcount/pkg/graph"
)

// countCommand creates the count command.
func (c *CLI) countCommand() *cobra.Command {
	var flags countFlags

	cmd := &cobra.Command{
		Use:   "count <family> <n> [m]",
		Short: "Count Hamiltonian paths or cycles of a graph",
		Long: `Count Hamiltonian paths or cycles of a graph family member or a JSON graph.

Vertices are ordered with the selected strategy before counting; the exact
pathwidth strategy solves a MaxSAT model and is worth caching. Orders and
counts are cached locally unless --no-cache is given.`,
		Example: `  hamcount count grid 4
  hamcount count grid 3 5 --cycle
  hamcount count knight 5 --order pathwidth
  hamcount count squares 25 --order decreasing --traversal dfs
  hamcount count --input graph.json --source a --sink z`,
		ValidArgsFunction: completeFamily,
		Args:              graphArgs(&flags.input),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(flags.input, args)
			if err != nil {
				return err
			}
			return c.runCount(cmd, g, flags)
		},
	}
	flags.register(cmd)
	return cmd
}

// runCount counts g, records the result and prints it.
func (c *CLI) runCount(cmd *cobra.Command, g *graph.Graph, flags countFlags) (err error) {
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

	p, err := c.params(rt, flags)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Counting %s of %s...", p.Mode(), g.Name()))
	spinner.Start()
	res, err := rt.counter.Count(ctx, g, p)
	if err != nil {
		spinner.StopWithError("Count failed")
		return err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := rt.record(ctx, res); err != nil {
		c.Logger.Warn("results not recorded", "error", err)
	}

	if flags.jsonOut {
		return writeJSON(res)
	}
	printResult(res)
	return nil
}

// printResult prints a count result.
func printResult(res *counting.Result) {
	printSuccess("%s %s", res.Graph, res.Params.Mode())
	printCount(res.Params.Mode(), counting.FormatCount(res.Count))
	printKeyValue("strategy", describeStrategy(res))
	if res.Params.Source != "" {
		printKeyValue("source", res.Params.Source)
	}
	if res.Params.Sink != "" {
		printKeyValue("sink", res.Params.Sink)
	}
	printStats(res.Stats.Vertices, res.Stats.Edges, res.Width, res.CacheInfo.CountHit)
	if !res.CacheInfo.CountHit && res.Stats.PeakStates > 0 {
		printDetail("peak frontier %d · peak states %d · order %s · count %s",
			res.Stats.PeakFrontier, res.Stats.PeakStates,
			res.Stats.OrderTime.Round(time.Millisecond), res.Stats.CountTime.Round(time.Millisecond))
	}
}

func describeStrategy(res *counting.Result) string {
	parts := []string{string(res.Params.Strategy)}
	if res.Params.Traversal != "" {
		parts = append(parts, string(res.Params.Traversal))
	}
	if res.Exact {
		parts = append(parts, "exact")
	}
	return strings.Join(parts, " · ")
}

func writeJSON(v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
