package cli

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hamcount/pkg/counting"
	"github.com/matzehuels/hamcount/pkg/graph/families"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

// sequenceCommand creates the sequence command.
func (c *CLI) sequenceCommand() *cobra.Command {
	var (
		flags countFlags
		jobs  int
	)

	cmd := &cobra.Command{
		Use:   "sequence <family> <from> <to>",
		Short: "Count a family over a range of sizes",
		Long: `Count Hamiltonian paths or cycles for every family member from <from> to <to>.

Sizes are counted concurrently, at most --jobs at a time. Rectangular
families are built square.`,
		Example: `  hamcount sequence squares 15 30
  hamcount sequence hamming 1 5 --cycle --jobs 2`,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: completeFamily,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSequence(cmd, args, flags, jobs)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "sizes counted concurrently")
	_ = cmd.Flags().MarkHidden("input")
	return cmd
}

// runSequence counts the range and prints one line per size.
func (c *CLI) runSequence(cmd *cobra.Command, args []string, flags countFlags, jobs int) (err error) {
	if flags.input != "" {
		return hcerrors.New(hcerrors.ErrCodeInvalidInput, "sequence counts a family; --input is not supported")
	}
	f, err := families.Lookup(args[0])
	if err != nil {
		return err
	}
	from, err := parseSize(args[1])
	if err != nil {
		return err
	}
	to, err := parseSize(args[2])
	if err != nil {
		return err
	}

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

	prog := newProgress(c.Logger)
	rs, err := rt.counter.Sequence(ctx, f, from, to, p, jobs)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("counted %s %d..%d", f.Name, from, to), "jobs", jobs)

	if err := rt.record(ctx, rs...); err != nil {
		c.Logger.Warn("results not recorded", "error", err)
	}

	if flags.jsonOut {
		return writeJSON(rs)
	}
	printSuccess("%s %s, sizes %d..%d", f.Name, p.Mode(), from, to)
	for i, res := range rs {
		printCount(strconv.Itoa(from+i), counting.FormatCount(res.Count))
	}
	return nil
}
