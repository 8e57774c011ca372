package gateway

import (
	"context"

	"github.com/crillab/gophersat/solver"

	"github.com/operator-framework/rikudo/internal/cnf"
)

var _ Engine = &GophersatEngine{}

// GophersatEngine runs instances on an in-process gophersat solver. The
// problem is rebuilt for every solve.
type GophersatEngine struct{}

func NewGophersatEngine() *GophersatEngine {
	return &GophersatEngine{}
}

func (e *GophersatEngine) Submit(ctx context.Context, inst *cnf.Instance) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if inst.HasEmptyClause() {
		return Unsatisfiable, nil
	}

	clauses := make([][]int, inst.Len())
	for i, c := range inst.Clauses() {
		clauses[i] = c
	}
	s := solver.New(solver.ParseSlice(clauses))

	switch s.Solve() {
	case solver.Sat:
		// the model only covers variables up to the largest one mentioned
		model := s.Model()
		a := cnf.NewAssignment(inst.Vars())
		for i, value := range model {
			if i < inst.Vars() {
				a.Set(i+1, value)
			}
		}
		return Result{Satisfiable: true, Assignment: a}, nil
	case solver.Unsat:
		return Unsatisfiable, nil
	}
	return Result{}, ErrUnknown
}

func (e *GophersatEngine) Open(inst *cnf.Instance) (Session, error) {
	return NewRebuildSession(e, inst), nil
}
