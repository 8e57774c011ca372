package cnf

import (
	"fmt"

	"github.com/operator-framework/rikudo/pkg/graph"
	"github.com/operator-framework/rikudo/pkg/rikudo"
)

// Encoder translates "a Hamiltonian path from source to destination that
// honours a constraint set" into CNF over the variables of a Scheme.
type Encoder struct {
	g        *graph.Graph
	scheme   Scheme
	scaffold bool
}

type EncoderOption func(e *Encoder)

// WithoutOrderScaffold drops the precedence variable clauses (transitivity,
// totality, correlation and the order based endpoint anchoring). The
// direct endpoint pins already fix the endpoints, so the set of decoded
// paths is unchanged.
func WithoutOrderScaffold() EncoderOption {
	return func(e *Encoder) {
		e.scaffold = false
	}
}

func NewEncoder(g *graph.Graph, options ...EncoderOption) *Encoder {
	e := &Encoder{
		g:        g,
		scheme:   NewScheme(g.N()),
		scaffold: true,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Scheme returns the variable scheme used by the encoder.
func (e *Encoder) Scheme() Scheme {
	return e.scheme
}

// Encode builds the instance for a path from source to dest honouring c.
func (e *Encoder) Encode(source, dest int, c rikudo.ConstraintSet) (*Instance, error) {
	if !e.g.Contains(source) || !e.g.Contains(dest) {
		return nil, fmt.Errorf("%w: endpoints (%d, %d) with %d vertices", graph.ErrVertexOutOfRange, source, dest, e.g.N())
	}
	if err := c.Validate(e.g.N()); err != nil {
		return nil, err
	}

	inst := NewInstance(e.scheme.Vars())
	e.coverage(inst)
	e.vertexUniqueness(inst)
	e.stepCoverage(inst)
	e.stepUniqueness(inst)
	e.transitions(inst)
	for _, m := range c.Maps {
		inst.Add(e.MapClause(m))
	}
	for _, d := range c.Diamonds {
		inst.Add(e.DiamondClauses(d)...)
	}
	if e.scaffold {
		e.transitivity(inst)
		e.totality(inst)
		e.correlation(inst)
		e.first(inst, source)
		e.last(inst, dest)
	}
	inst.Add(Clause{e.scheme.Position(0, source)})
	inst.Add(Clause{e.scheme.Position(e.g.N()-1, dest)})
	return inst, nil
}

// MapClause returns the unit clause pinning m.Vertex to m.Step.
func (e *Encoder) MapClause(m rikudo.MapConstraint) Clause {
	return Clause{e.scheme.Position(m.Step, m.Vertex)}
}

// DiamondClauses returns, for every step i, the clause "U is not at i, or
// V is at i-1, or V is at i+1". Boundary steps omit the missing neighbour.
func (e *Encoder) DiamondClauses(d rikudo.DiamondConstraint) []Clause {
	n := e.g.N()
	clauses := make([]Clause, 0, n)
	for i := 0; i < n; i++ {
		clause := Clause{-e.scheme.Position(i, d.U)}
		if i > 0 {
			clause = append(clause, e.scheme.Position(i-1, d.V))
		}
		if i < n-1 {
			clause = append(clause, e.scheme.Position(i+1, d.V))
		}
		clauses = append(clauses, clause)
	}
	return clauses
}

// Ban returns the clause excluding every path that places the interior
// vertices of p at the same steps. With fixed endpoints this excludes p
// alone. Paths of two vertices or fewer have no interior and yield the
// empty clause.
func (e *Encoder) Ban(p rikudo.Path) Clause {
	n := e.g.N()
	ban := make(Clause, 0, n)
	for i := 1; i < n-1 && i < len(p); i++ {
		ban = append(ban, -e.scheme.Position(i, p[i]))
	}
	return ban
}

// every vertex visited
func (e *Encoder) coverage(inst *Instance) {
	n := e.g.N()
	for v := 0; v < n; v++ {
		clause := make(Clause, 0, n)
		for i := 0; i < n; i++ {
			clause = append(clause, e.scheme.Position(i, v))
		}
		inst.Add(clause)
	}
}

// every vertex visited at most once
func (e *Encoder) vertexUniqueness(inst *Instance) {
	n := e.g.N()
	for v := 0; v < n; v++ {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				inst.Add(Clause{-e.scheme.Position(i, v), -e.scheme.Position(j, v)})
			}
		}
	}
}

// every step holds a vertex
func (e *Encoder) stepCoverage(inst *Instance) {
	n := e.g.N()
	for i := 0; i < n; i++ {
		clause := make(Clause, 0, n)
		for v := 0; v < n; v++ {
			clause = append(clause, e.scheme.Position(i, v))
		}
		inst.Add(clause)
	}
}

// every step holds at most one vertex
func (e *Encoder) stepUniqueness(inst *Instance) {
	n := e.g.N()
	for i := 0; i < n; i++ {
		for u := 0; u < n; u++ {
			for v := u + 1; v < n; v++ {
				inst.Add(Clause{-e.scheme.Position(i, u), -e.scheme.Position(i, v)})
			}
		}
	}
}

// v at step i implies an out-neighbor of v at step i+1
func (e *Encoder) transitions(inst *Instance) {
	n := e.g.N()
	for i := 0; i < n-1; i++ {
		for v := 0; v < n; v++ {
			neighbors := e.g.Neighbors(v)
			clause := make(Clause, 0, len(neighbors)+1)
			clause = append(clause, -e.scheme.Position(i, v))
			for _, w := range neighbors {
				clause = append(clause, e.scheme.Position(i+1, w))
			}
			inst.Add(clause)
		}
	}
}

// u<v and v<w imply u<w
func (e *Encoder) transitivity(inst *Instance) {
	n := e.g.N()
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			for w := 0; w < n; w++ {
				if u == v || u == w || v == w {
					continue
				}
				inst.Add(Clause{-e.scheme.Precedence(u, v), -e.scheme.Precedence(v, w), e.scheme.Precedence(u, w)})
			}
		}
	}
}

// exactly one of u<v and v<u
func (e *Encoder) totality(inst *Instance) {
	n := e.g.N()
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			if u == v {
				continue
			}
			inst.Add(Clause{e.scheme.Precedence(u, v), e.scheme.Precedence(v, u)})
			inst.Add(Clause{-e.scheme.Precedence(u, v), -e.scheme.Precedence(v, u)})
		}
	}
}

// u at step t and v at step t+1 imply u<v
func (e *Encoder) correlation(inst *Instance) {
	n := e.g.N()
	for t := 0; t < n-1; t++ {
		for u := 0; u < n; u++ {
			for v := 0; v < n; v++ {
				inst.Add(Clause{-e.scheme.Position(t, u), -e.scheme.Position(t+1, v), e.scheme.Precedence(u, v)})
			}
		}
	}
}

// source precedes every other vertex
func (e *Encoder) first(inst *Instance, source int) {
	for v := 0; v < e.g.N(); v++ {
		if v != source {
			inst.Add(Clause{e.scheme.Precedence(source, v)})
		}
	}
}

// dest follows every other vertex
func (e *Encoder) last(inst *Instance, dest int) {
	for v := 0; v < e.g.N(); v++ {
		if v != dest {
			inst.Add(Clause{e.scheme.Precedence(v, dest)})
		}
	}
}
