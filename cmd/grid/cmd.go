package grid

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/operator-framework/rikudo/cmd/settings"
	"github.com/operator-framework/rikudo/internal/backtrack"
	"github.com/operator-framework/rikudo/internal/solver"
	"github.com/operator-framework/rikudo/pkg/graph"
	"github.com/operator-framework/rikudo/pkg/rikudo"
)

func NewGridCommand(s *settings.Settings) *cobra.Command {
	var sat bool
	cmd := &cobra.Command{
		Use:   "grid <size>",
		Short: "Counts the Hamiltonian paths between opposite corners of a square grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.Atoi(args[0])
			if err != nil || size <= 0 {
				return fmt.Errorf("invalid grid size (%s): expected a positive integer", args[0])
			}
			count, err := countCorners(cmd, s, size, sat)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", count)
			return nil
		},
	}
	cmd.Flags().BoolVar(&sat, "sat", false, "count through the SAT encoding instead of exhaustive search")
	return cmd
}

// countCorners counts the paths from the top left to the bottom right cell
// of a size x size grid. Sizes one and two are reported as the size itself
// without searching.
func countCorners(cmd *cobra.Command, s *settings.Settings, size int, sat bool) (int, error) {
	if size <= 2 {
		return size, nil
	}
	g, err := graph.Grid(size, size)
	if err != nil {
		return 0, err
	}
	source, dest := graph.GridVertex(0, 0, size), graph.GridVertex(size-1, size-1, size)
	logger := s.Entry("grid").WithField("size", size)
	logger.Debug("counting corner to corner paths")

	if !sat {
		return backtrack.Count(g, source, dest)
	}
	opts, err := s.SolverOptions(logger)
	if err != nil {
		return 0, err
	}
	f, err := solver.NewFinder(g, opts...)
	if err != nil {
		return 0, err
	}
	return f.Count(cmd.Context(), source, dest, rikudo.ConstraintSet{}, 0)
}
