package gateway

import (
	"context"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"

	"github.com/operator-framework/rikudo/internal/cnf"
)

var _ Engine = &GiniEngine{}

// GiniEngine runs instances on an in-process gini solver. Sessions keep
// one solver alive and implement guards with selector literals and
// assumptions, so nothing is re-taught between solves.
type GiniEngine struct{}

func NewGiniEngine() *GiniEngine {
	return &GiniEngine{}
}

func (e *GiniEngine) Submit(ctx context.Context, inst *cnf.Instance) (Result, error) {
	s, err := e.Open(inst)
	if err != nil {
		return Result{}, err
	}
	return s.Solve(ctx)
}

func (e *GiniEngine) Open(inst *cnf.Instance) (Session, error) {
	s := &giniSession{
		g:       gini.NewVc(inst.Vars(), inst.Len()),
		vars:    inst.Vars(),
		decoded: inst.Vars(),
	}
	if err := s.Extend(inst.Clauses()...); err != nil {
		return nil, err
	}
	return s, nil
}

type giniSession struct {
	g inter.S
	// vars is the largest variable id taught so far, selectors included.
	vars int
	// decoded is the number of variables reported in assignments; guard
	// selectors are not part of it.
	decoded int
	// unsat is set once the empty clause has been asserted.
	unsat  bool
	buffer []z.Lit
}

func (s *giniSession) Extend(clauses ...cnf.Clause) error {
	for _, c := range clauses {
		if len(c) == 0 {
			s.unsat = true
			continue
		}
		for _, lit := range c {
			if v := abs(lit); v > s.decoded {
				s.decoded = v
			}
		}
		s.add(c, z.LitNull)
	}
	return nil
}

func (s *giniSession) Guard(clauses ...cnf.Clause) (Guard, error) {
	if len(clauses) == 0 {
		return noGuard, nil
	}
	s.vars++
	selector := s.vars
	for _, c := range clauses {
		s.add(c, z.Dimacs2Lit(-selector))
	}
	return Guard(selector), nil
}

func (s *giniSession) add(c cnf.Clause, extra z.Lit) {
	for _, lit := range c {
		if v := abs(lit); v > s.vars {
			s.vars = v
		}
		s.g.Add(z.Dimacs2Lit(lit))
	}
	if extra != z.LitNull {
		s.g.Add(extra)
	}
	s.g.Add(z.LitNull)
}

func (s *giniSession) Solve(ctx context.Context, active ...Guard) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if s.unsat {
		return Unsatisfiable, nil
	}

	s.buffer = s.buffer[:0]
	for _, guard := range active {
		if guard != noGuard {
			s.buffer = append(s.buffer, z.Dimacs2Lit(int(guard)))
		}
	}
	s.g.Assume(s.buffer...)

	switch s.g.Solve() {
	case satisfiable:
		return Result{Satisfiable: true, Assignment: s.assignment()}, nil
	case unsatisfiable:
		return Unsatisfiable, nil
	}
	return Result{}, ErrUnknown
}

// assignment reads the model of the last satisfiable solve. Variables the
// solver never saw read as false.
func (s *giniSession) assignment() cnf.Assignment {
	a := cnf.NewAssignment(s.decoded)
	max := int(s.g.MaxVar())
	for id := 1; id <= s.decoded && id <= max; id++ {
		a.Set(id, s.g.Value(z.Dimacs2Lit(id)))
	}
	return a
}

func abs(lit int) int {
	if lit < 0 {
		return -lit
	}
	return lit
}
