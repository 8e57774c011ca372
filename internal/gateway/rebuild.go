package gateway

import (
	"context"

	"github.com/operator-framework/rikudo/internal/cnf"
)

// rebuildSession implements Session on top of a Solver without native
// incremental support: every solve submits the base instance extended with
// the clauses of the active guards.
type rebuildSession struct {
	solver Solver
	base   *cnf.Instance
	groups map[Guard][]cnf.Clause
	next   Guard
}

// NewRebuildSession opens a Session that resubmits inst, grown by Extend
// and the active guards, to solver on each Solve.
func NewRebuildSession(solver Solver, inst *cnf.Instance) Session {
	return &rebuildSession{
		solver: solver,
		base:   inst,
		groups: map[Guard][]cnf.Clause{},
	}
}

func (s *rebuildSession) Extend(clauses ...cnf.Clause) error {
	s.base = s.base.Extend(clauses...)
	return nil
}

func (s *rebuildSession) Guard(clauses ...cnf.Clause) (Guard, error) {
	if len(clauses) == 0 {
		return noGuard, nil
	}
	s.next++
	s.groups[s.next] = clauses
	return s.next, nil
}

func (s *rebuildSession) Solve(ctx context.Context, active ...Guard) (Result, error) {
	var extra []cnf.Clause
	for _, guard := range active {
		extra = append(extra, s.groups[guard]...)
	}
	return s.solver.Submit(ctx, s.base.Extend(extra...))
}
