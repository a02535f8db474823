package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hamcount/pkg/counting"
	"github.com/matzehuels/hamcount/pkg/enumerate"
	"github.com/matzehuels/hamcount/pkg/graph"
	"github.com/matzehuels/hamcount/pkg/graph/families"
	"github.com/matzehuels/hamcount/pkg/ordering"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

// graphArgs validates "<family> <n> [m]" unless --input is set, in which
// case no positional arguments are allowed.
func graphArgs(input *string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if *input != "" {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.RangeArgs(2, 3)(cmd, args)
	}
}

// loadGraph reads the --input file or builds the named family member.
func loadGraph(input string, args []string) (*graph.Graph, error) {
	if input != "" {
		g, err := graph.ReadGraphFile(input)
		if err != nil {
			return nil, fmt.Errorf("load graph %s: %w", input, err)
		}
		return g, nil
	}

	f, err := families.Lookup(args[0])
	if err != nil {
		return nil, err
	}
	n, err := parseSize(args[1])
	if err != nil {
		return nil, err
	}
	m := 0
	if len(args) == 3 {
		if !f.Rectangular {
			return nil, hcerrors.New(hcerrors.ErrCodeInvalidFamily, "%s takes a single size", f.Name)
		}
		if m, err = parseSize(args[2]); err != nil {
			return nil, err
		}
	}
	return f.Build(n, m)
}

func parseSize(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, hcerrors.New(hcerrors.ErrCodeInvalidInput, "size %q is not an integer", s)
	}
	return n, nil
}

// =============================================================================
// Counting Flags
// =============================================================================

// orderFlags select the ordering strategy and the exact solver.
type orderFlags struct {
	order      string
	stratified bool
	encoding   string
	noCache    bool
	refresh    bool
}

func (f *orderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.order, "order", "o", "", "ordering strategy: "+strategyNames())
	_ = cmd.RegisterFlagCompletionFunc("order", completeStrategy)
	cmd.Flags().BoolVar(&f.stratified, "stratified", false, "use the stratified MaxSAT oracle for pathwidth")
	cmd.Flags().StringVar(&f.encoding, "encoding", "", "cardinality encoding for pathwidth: totalizer, seqcounter")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute and overwrite cached results")
}

// countFlags add the path/cycle query on top of orderFlags.
type countFlags struct {
	orderFlags
	input     string
	traversal string
	cycle     bool
	source    string
	sink      string
	jsonOut   bool
}

func (f *countFlags) register(cmd *cobra.Command) {
	f.orderFlags.register(cmd)
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "read the graph from a JSON file instead of a family")
	cmd.Flags().StringVarP(&f.traversal, "traversal", "t", "", "edge traversal: as-is, dfs, bfs (default: from strategy)")
	cmd.Flags().BoolVarP(&f.cycle, "cycle", "c", false, "count Hamiltonian cycles instead of paths")
	cmd.Flags().StringVar(&f.source, "source", "", "fix the first vertex of every path")
	cmd.Flags().StringVar(&f.sink, "sink", "", "fix the last vertex of every path")
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "print the result as JSON")
}

// strategy resolves the --order flag over the configured default. Unknown
// names fall back to sorted order with a warning.
func (c *CLI) strategy(configured, flag string) ordering.Strategy {
	name := configured
	if flag != "" {
		name = flag
	}
	s, ok := ordering.ParseStrategy(name)
	if !ok {
		c.Logger.Warn("unknown ordering strategy, using sorted", "strategy", name)
	}
	return s
}

// applySolver overrides the env's solver options with explicit flags.
func (f orderFlags) applySolver(cmd *cobra.Command, rt *env) {
	if cmd.Flags().Changed("stratified") {
		rt.counter.SolverOptions.Stratified = f.stratified
	}
	if f.encoding != "" {
		rt.counter.SolverOptions.Encoding = f.encoding
	}
}

// params builds counting parameters from flags and configuration. An
// explicit traversal, from the flag or the config file, overrides the
// strategy's own traversal.
func (c *CLI) params(rt *env, f countFlags) (counting.Params, error) {
	p := counting.Params{
		Strategy: c.strategy(rt.cfg.Count.Strategy, f.order),
		Cycle:    f.cycle,
		Source:   f.source,
		Sink:     f.sink,
		Refresh:  f.refresh,
	}
	name := rt.cfg.Count.Traversal
	if f.traversal != "" {
		name = f.traversal
	}
	if strings.TrimSpace(name) == "" {
		return p, nil
	}
	t, err := enumerate.ParseTraversal(name)
	if err != nil {
		return p, err
	}
	p.Traversal = t
	return p, nil
}
