package dimacs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-air/gini"
	"github.com/spf13/cobra"

	"github.com/operator-framework/rikudo/cmd/settings"
	"github.com/operator-framework/rikudo/internal/cnf"
	"github.com/operator-framework/rikudo/pkg/rikudo"
)

func NewDimacsCommand(s *settings.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dimacs",
		Short: "Writes and solves problems in dimacs format",
	}
	cmd.AddCommand(newEncodeCommand(s))
	cmd.AddCommand(newSolveCommand(s))
	return cmd
}

func newEncodeCommand(s *settings.Settings) *cobra.Command {
	var endpoints settings.Endpoints
	cmd := &cobra.Command{
		Use:   "encode <graph>",
		Short: "Writes the Hamiltonian path problem of a graph in dimacs format",
		Long: `Writes the Hamiltonian path problem of a graph in dimacs format. Variable
step*n+v+1 is true when vertex v is at the given step of the path; the
second block of n*n variables orders the vertices.`,
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
			inst, err := cnf.NewEncoder(d.Graph, s.EncoderOptions()...).Encode(source, dest, rikudo.ConstraintSet{})
			if err != nil {
				return err
			}
			s.Entry("dimacs").WithField("clauses", inst.Len()).Debug("encoded graph")
			return inst.WriteDIMACS(cmd.OutOrStdout())
		},
	}
	endpoints.AddFlags(cmd.Flags())
	return cmd
}

func newSolveCommand(s *settings.Settings) *cobra.Command {
	var crossCheck bool
	cmd := &cobra.Command{
		Use:   "solve <path>",
		Short: "Solves a sat problem given in dimacs format",
		Long: `Solves a sat problem given in dimacs format. For instance:
c
c this is a comment
c header: p cnf <number of variable> <number of clauses>
p cnf 2 2
c clauses end in zero, negative means 'not'
c 0 (zero) is not a valid literal
1 2 0
1 -2 0
c cnf: (1 or 2) and (1 and not 2)

The answer is printed as a status line and a model line:
s SATISFIABLE
v 1 -2 0
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return solve(cmd, s, args[0], crossCheck)
		},
	}
	cmd.Flags().BoolVar(&crossCheck, "cross-check", false, "also decide the problem with gini's own dimacs reader and compare")
	return cmd
}

func solve(cmd *cobra.Command, s *settings.Settings, path string, crossCheck bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error opening dimacs file (%s): %w", path, err)
	}
	inst, err := Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("error parsing dimacs file (%s): %w", path, err)
	}

	logger := s.Entry("dimacs").WithField("file", path)
	engine, err := s.NewEngine(logger)
	if err != nil {
		return err
	}
	result, err := engine.Submit(cmd.Context(), inst)
	if err != nil {
		return err
	}
	if result.Satisfiable {
		if err := inst.Verify(result.Assignment); err != nil {
			return fmt.Errorf("engine returned an invalid model: %w", err)
		}
	}
	if crossCheck {
		if err := compare(data, result.Satisfiable); err != nil {
			return err
		}
	}
	return writeResult(cmd.OutOrStdout(), inst, result.Satisfiable, result.Assignment)
}

// compare decides data again with a fresh gini solver.
func compare(data []byte, satisfiable bool) error {
	g, err := gini.NewDimacs(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("error reading dimacs data with gini: %w", err)
	}
	if other := g.Solve() == 1; other != satisfiable {
		return fmt.Errorf("engines disagree: satisfiable %t, gini says %t", satisfiable, other)
	}
	return nil
}

func writeResult(w io.Writer, inst *cnf.Instance, satisfiable bool, a cnf.Assignment) error {
	if !satisfiable {
		_, err := fmt.Fprintln(w, "s UNSATISFIABLE")
		return err
	}
	lits := make([]string, 0, inst.Vars()+1)
	for id := 1; id <= inst.Vars(); id++ {
		lit := id
		if !a.Value(id) {
			lit = -id
		}
		lits = append(lits, fmt.Sprint(lit))
	}
	lits = append(lits, "0")
	_, err := fmt.Fprintf(w, "s SATISFIABLE\nv %s\n", strings.Join(lits, " "))
	return err
}
