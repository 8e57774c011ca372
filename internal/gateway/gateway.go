package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/operator-framework/rikudo/internal/cnf"
)

// ErrUnknown is returned when an engine stops without deciding an instance.
var ErrUnknown = errors.New("solver returned without deciding the instance")

const (
	satisfiable   = 1
	unsatisfiable = -1
	unknown       = 0
)

// Result is the answer to one solve. Assignment is only meaningful when
// Satisfiable is true.
type Result struct {
	Satisfiable bool
	Assignment  cnf.Assignment
}

// Unsatisfiable is the result of an instance without a model.
var Unsatisfiable = Result{}

// Solver decides whole instances.
type Solver interface {
	Submit(ctx context.Context, inst *cnf.Instance) (Result, error)
}

// Guard identifies a group of clauses added to a Session that only hold
// while the guard is passed to Solve.
type Guard int

// noGuard is handed out for empty clause groups; activating it is a no-op.
const noGuard Guard = 0

// Session keeps an instance live across solves so that it can be grown
// without re-deriving it.
type Session interface {
	// Extend asserts clauses for every later solve.
	Extend(clauses ...cnf.Clause) error
	// Guard adds clauses that hold only in solves activating the guard.
	Guard(clauses ...cnf.Clause) (Guard, error)
	// Solve decides the session's clauses plus those of the active guards.
	Solve(ctx context.Context, active ...Guard) (Result, error)
}

// Engine is a Solver that can also open incremental sessions.
type Engine interface {
	Solver
	Open(inst *cnf.Instance) (Session, error)
}

// Name selects an engine implementation.
type Name string

const (
	Gini      Name = "gini"
	Gophersat Name = "gophersat"
	Exec      Name = "exec"
)

// Names lists the supported engines.
var Names = []Name{Gini, Gophersat, Exec}

// New returns the engine called name.
func New(name Name, options ...Option) (Engine, error) {
	cfg := config{}
	for _, option := range append(options, defaults...) {
		if err := option(&cfg); err != nil {
			return nil, err
		}
	}
	switch name {
	case Gini, "":
		return NewGiniEngine(), nil
	case Gophersat:
		return NewGophersatEngine(), nil
	case Exec:
		if cfg.path == "" {
			return nil, fmt.Errorf("engine %q requires the path of a solver binary", name)
		}
		return NewExecEngine(cfg.path, cfg.args, cfg.logger), nil
	}
	return nil, fmt.Errorf("unknown engine %q, expected one of %v", name, Names)
}
