package unique

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/operator-framework/rikudo/cmd/settings"
	"github.com/operator-framework/rikudo/internal/solver"
	"github.com/operator-framework/rikudo/pkg/graph"
	"github.com/operator-framework/rikudo/pkg/rikudo"
)

type options struct {
	strategy      string
	maxIterations int
	seed          int64
	output        string
	verify        bool
	trace         bool
}

func NewUniqueCommand(s *settings.Settings) *cobra.Command {
	var (
		o         options
		endpoints settings.Endpoints
	)
	cmd := &cobra.Command{
		Use:   "unique <graph>",
		Short: "Finds a path and the constraints that make it the only one",
		Long: `Finds a Hamiltonian path between two vertices of a graph together with a
set of map constraints (vertex at a given step) and diamond constraints
(two vertices next to each other) under which it is the only such path.
The output lists the path, the maps as "vertex step" with steps counted
from 1 and the diamonds as "u v", each section terminated by -1:
0
2
1
3
-1
-1
-1
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := settings.LoadGraph(args[0])
			if err != nil {
				return err
			}
			source, dest, err := endpoints.Resolve(d)
			if err != nil {
				return err
			}
			return run(cmd, s, o, d.Graph, source, dest)
		},
	}
	cmd.Flags().StringVar(&o.strategy, "strategy", string(solver.Bisect), fmt.Sprintf("refinement strategy, one of %v", solver.Strategies))
	cmd.Flags().IntVar(&o.maxIterations, "max-iterations", solver.DefaultMaxIterations, "uniqueness checks before the grow strategy gives up")
	cmd.Flags().Int64Var(&o.seed, "seed", 0, "seed for the candidate order, 0 picks one from the clock")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write the solution to this file instead of standard output")
	cmd.Flags().BoolVar(&o.verify, "verify", false, "check the written solution by solving under its constraints again")
	cmd.Flags().BoolVar(&o.trace, "trace", false, "print every uniqueness check to standard error")
	endpoints.AddFlags(cmd.Flags())
	return cmd
}

func run(cmd *cobra.Command, s *settings.Settings, o options, g *graph.Graph, source, dest int) error {
	ctx := cmd.Context()
	seed := o.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := s.Entry("unique").WithField("seed", seed)

	opts, err := s.SolverOptions(logger)
	if err != nil {
		return err
	}
	opts = append(opts,
		solver.WithRand(rand.New(rand.NewSource(seed))),
		solver.WithMaxIterations(o.maxIterations),
	)
	if o.trace {
		opts = append(opts, solver.WithTracer(solver.LoggingTracer{Writer: cmd.ErrOrStderr()}))
	}
	r, err := solver.NewRefiner(g, opts...)
	if err != nil {
		return err
	}

	solution, err := r.Refine(ctx, source, dest, solver.Strategy(o.strategy))
	if err != nil && !errors.Is(err, solver.ErrNoPath) {
		return err
	}
	// without a path the three sections are still written, empty
	var buf bytes.Buffer
	if werr := rikudo.WriteSolution(&buf, solution); werr != nil {
		return werr
	}
	if werr := write(cmd.OutOrStdout(), o.output, buf.Bytes()); werr != nil {
		return werr
	}
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"maps":     len(solution.Constraints.Maps),
		"diamonds": len(solution.Constraints.Diamonds),
	}).Debug("wrote solution")

	if !o.verify {
		return nil
	}
	return verify(cmd, s, g, source, dest, bytes.NewReader(buf.Bytes()))
}

func write(stdout io.Writer, output string, data []byte) error {
	if output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("error writing solution (%s): %w", output, err)
	}
	return nil
}

// verify reads a written solution back and checks that its path is the
// only one under its constraints.
func verify(cmd *cobra.Command, s *settings.Settings, g *graph.Graph, source, dest int, written io.Reader) error {
	solution, err := rikudo.ReadSolution(written)
	if err != nil {
		return fmt.Errorf("error reading solution back: %w", err)
	}

	opts, err := s.SolverOptions(s.Entry("verify"))
	if err != nil {
		return err
	}
	finder, err := solver.NewFinder(g, opts...)
	if err != nil {
		return err
	}
	paths, err := finder.Paths(cmd.Context(), source, dest, solution.Constraints, 2)
	if err != nil {
		return err
	}
	if len(paths) != 1 || !paths[0].Equal(solution.Path) {
		return fmt.Errorf("solution is not unique: found %d paths under its constraints", len(paths))
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "verified: %s is the only path under %d constraints\n", solution.Path, solution.Constraints.Len())
	return nil
}
