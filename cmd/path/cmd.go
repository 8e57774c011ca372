package path

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/operator-framework/rikudo/cmd/settings"
	"github.com/operator-framework/rikudo/internal/backtrack"
	"github.com/operator-framework/rikudo/internal/solver"
	"github.com/operator-framework/rikudo/pkg/graph"
	"github.com/operator-framework/rikudo/pkg/rikudo"
)

type options struct {
	backtrack bool
	count     bool
	limit     int
}

func (o *options) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.backtrack, "backtrack", false, "search exhaustively instead of through the SAT encoding")
	cmd.Flags().BoolVar(&o.count, "count", false, "print the number of solutions instead of the first one")
	cmd.Flags().IntVar(&o.limit, "limit", 0, "stop counting after this many solutions, 0 for no limit")
}

func NewPathCommand(s *settings.Settings) *cobra.Command {
	var (
		o         options
		endpoints settings.Endpoints
	)
	cmd := &cobra.Command{
		Use:   "path <graph>",
		Short: "Finds a Hamiltonian path between two vertices of a graph",
		Long: `Finds a Hamiltonian path between two vertices of a graph. The graph is
read from a description file ("-" for standard input):
4       <- number of vertices
0 1     <- directed edge 0 -> 1
0 2
1 2
2 1
1 3
3 1
-1      <- end of the edge list
0 3     <- source and destination
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
			return findPath(cmd, s, o, d.Graph, source, dest)
		},
	}
	o.addFlags(cmd)
	endpoints.AddFlags(cmd.Flags())
	return cmd
}

func NewCycleCommand(s *settings.Settings) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "cycle <graph>",
		Short: "Finds a Hamiltonian cycle of a graph",
		Long: `Finds a Hamiltonian cycle of a graph. The search starts from the vertex of
minimum out-degree; the first vertex of the cycle is repeated at its end.
Endpoints in the graph description are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := settings.LoadGraph(args[0])
			if err != nil {
				return err
			}
			return findCycle(cmd, s, o, d.Graph)
		},
	}
	o.addFlags(cmd)
	return cmd
}

func findPath(cmd *cobra.Command, s *settings.Settings, o options, g *graph.Graph, source, dest int) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	logger := s.Entry("path").WithField("backtrack", o.backtrack)

	if o.backtrack {
		limit := backtrack.WithLimit(o.limit)
		if o.count {
			count, err := backtrack.Count(g, source, dest, limit)
			if err != nil {
				return err
			}
			return printCount(out, count)
		}
		p, ok, err := backtrack.Path(g, source, dest)
		if err != nil {
			return err
		}
		if !ok {
			return solver.ErrNoPath
		}
		return printPath(out, p)
	}

	opts, err := s.SolverOptions(logger)
	if err != nil {
		return err
	}
	f, err := solver.NewFinder(g, opts...)
	if err != nil {
		return err
	}
	if o.count {
		count, err := f.Count(ctx, source, dest, rikudo.ConstraintSet{}, o.limit)
		if err != nil {
			return err
		}
		return printCount(out, count)
	}
	p, err := f.Path(ctx, source, dest, rikudo.ConstraintSet{})
	if err != nil {
		return err
	}
	return printPath(out, p)
}

func findCycle(cmd *cobra.Command, s *settings.Settings, o options, g *graph.Graph) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	logger := s.Entry("cycle").WithField("backtrack", o.backtrack)

	if o.backtrack {
		if o.count {
			count, err := backtrack.CountCycles(g, backtrack.WithLimit(o.limit))
			if err != nil {
				return err
			}
			return printCount(out, count)
		}
		p, ok, err := backtrack.Cycle(g)
		if err != nil {
			return err
		}
		if !ok {
			return solver.ErrNoCycle
		}
		return printPath(out, p)
	}

	opts, err := s.SolverOptions(logger)
	if err != nil {
		return err
	}
	f, err := solver.NewFinder(g, opts...)
	if err != nil {
		return err
	}
	if o.count {
		cycles, err := f.Cycles(ctx, rikudo.ConstraintSet{}, o.limit)
		if err != nil {
			return err
		}
		return printCount(out, len(cycles))
	}
	p, err := f.Cycle(ctx, rikudo.ConstraintSet{})
	if errors.Is(err, solver.ErrNoCycle) {
		logger.WithField("anchor", g.MinOutDegreeVertex()).Debug("no cycle through the anchor")
	}
	if err != nil {
		return err
	}
	return printPath(out, p)
}

func printPath(w io.Writer, p rikudo.Path) error {
	_, err := fmt.Fprintln(w, p)
	return err
}

func printCount(w io.Writer, count int) error {
	_, err := fmt.Fprintf(w, "%d\n", count)
	return err
}
