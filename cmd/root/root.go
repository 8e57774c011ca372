package root

import (
	"github.com/spf13/cobra"

	"github.com/operator-framework/rikudo/cmd/dimacs"
	"github.com/operator-framework/rikudo/cmd/grid"
	"github.com/operator-framework/rikudo/cmd/path"
	"github.com/operator-framework/rikudo/cmd/settings"
	"github.com/operator-framework/rikudo/cmd/unique"
)

func NewRootCmd() *cobra.Command {
	s := settings.New()
	rootCmd := &cobra.Command{
		Use:   "rikudo",
		Short: "Rikudo finds Hamiltonian paths and the hints that make them unique",
		Long: `Rikudo finds Hamiltonian paths and cycles in directed graphs, through a SAT
encoding or exhaustive search, and derives small sets of map and diamond
constraints under which a path is the only one between its endpoints.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s.Logger.SetOutput(cmd.ErrOrStderr())
			s.Configure()
			return nil
		},
	}
	s.AddFlags(rootCmd.PersistentFlags())

	// add sub-commands
	rootCmd.AddCommand(path.NewPathCommand(s))
	rootCmd.AddCommand(path.NewCycleCommand(s))
	rootCmd.AddCommand(unique.NewUniqueCommand(s))
	rootCmd.AddCommand(dimacs.NewDimacsCommand(s))
	rootCmd.AddCommand(grid.NewGridCommand(s))

	return rootCmd
}
