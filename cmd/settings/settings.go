// Package settings holds the configuration shared by every rikudo command:
// logging, the satisfiability engine and the encoding options.
package settings

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/operator-framework/rikudo/internal/cnf"
	"github.com/operator-framework/rikudo/internal/gateway"
	"github.com/operator-framework/rikudo/internal/solver"
	"github.com/operator-framework/rikudo/pkg/graph"
)

type Settings struct {
	Debug           bool
	Engine          string
	EnginePath      string
	EngineArgs      []string
	NoOrderScaffold bool

	Logger *logrus.Logger
}

func New() *Settings {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	return &Settings{Logger: logger}
}

// AddFlags registers the shared flags, usually as persistent flags of the
// root command.
func (s *Settings) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&s.Debug, "debug", false, "enable debug logging")
	fs.StringVar(&s.Engine, "engine", string(gateway.Gini), fmt.Sprintf("satisfiability engine, one of %v", gateway.Names))
	fs.StringVar(&s.EnginePath, "engine-path", "", "solver binary used by the exec engine")
	fs.StringArrayVar(&s.EngineArgs, "engine-arg", nil, "argument passed to the exec engine binary, may be repeated")
	fs.BoolVar(&s.NoOrderScaffold, "no-order-scaffold", false, "leave the precedence variable clauses out of the encoding")
}

// Configure applies the parsed flags to the logger.
func (s *Settings) Configure() {
	if s.Debug {
		s.Logger.SetLevel(logrus.DebugLevel)
	}
}

// Entry returns the logger of a command.
func (s *Settings) Entry(command string) *logrus.Entry {
	return s.Logger.WithField("command", command)
}

func (s *Settings) NewEngine(logger *logrus.Entry) (gateway.Engine, error) {
	return gateway.New(gateway.Name(s.Engine), gateway.WithBinary(s.EnginePath, s.EngineArgs...), gateway.WithLogger(logger))
}

func (s *Settings) EncoderOptions() []cnf.EncoderOption {
	if s.NoOrderScaffold {
		return []cnf.EncoderOption{cnf.WithoutOrderScaffold()}
	}
	return nil
}

// SolverOptions returns the options for finders and refiners built by a
// command.
func (s *Settings) SolverOptions(logger *logrus.Entry) ([]solver.Option, error) {
	engine, err := s.NewEngine(logger)
	if err != nil {
		return nil, err
	}
	return []solver.Option{
		solver.WithEngine(engine),
		solver.WithLogger(logger),
		solver.WithEncoderOptions(s.EncoderOptions()...),
	}, nil
}

// LoadGraph reads a graph description from path; "-" reads standard input.
func LoadGraph(path string) (*graph.Description, error) {
	if path == "-" {
		return graph.ReadDescription(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening graph description (%s): %w", path, err)
	}
	defer f.Close()
	d, err := graph.ReadDescription(f)
	if err != nil {
		return nil, fmt.Errorf("error parsing graph description (%s): %w", path, err)
	}
	return d, nil
}

// Endpoints lets the --source and --destination flags override the
// endpoints of a graph description.
type Endpoints struct {
	source      int
	destination int
	fs          *pflag.FlagSet
}

func (e *Endpoints) AddFlags(fs *pflag.FlagSet) {
	e.fs = fs
	fs.IntVar(&e.source, "source", 0, "first vertex of the path, overrides the graph description")
	fs.IntVar(&e.destination, "destination", 0, "last vertex of the path, overrides the graph description")
}

// Resolve returns the endpoints to use for d.
func (e *Endpoints) Resolve(d *graph.Description) (source, dest int, err error) {
	source, dest = d.Source, d.Destination
	sourceSet := e.fs != nil && e.fs.Changed("source")
	destSet := e.fs != nil && e.fs.Changed("destination")
	if sourceSet {
		source = e.source
	}
	if destSet {
		dest = e.destination
	}
	if !d.HasEndpoints && !(sourceSet && destSet) {
		return 0, 0, fmt.Errorf("the graph description has no endpoints: set --source and --destination")
	}
	if !d.Graph.Contains(source) || !d.Graph.Contains(dest) {
		return 0, 0, fmt.Errorf("%w: endpoints (%d, %d) with %d vertices", graph.ErrVertexOutOfRange, source, dest, d.Graph.N())
	}
	return source, dest, nil
}
