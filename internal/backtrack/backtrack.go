// Package backtrack enumerates Hamiltonian paths and cycles by depth-first
// search. It does not depend on the satisfiability stack, so it serves as
// an independent solver and as ground truth for the SAT encoding.
package backtrack

import (
	"fmt"

	"github.com/operator-framework/rikudo/pkg/graph"
	"github.com/operator-framework/rikudo/pkg/rikudo"
)

// Visitor is called with every valid path found. The path is only valid
// during the call and must be copied to be retained. Returning false stops
// the search.
type Visitor func(p rikudo.Path) bool

type config struct {
	constraints rikudo.ConstraintSet
	limit       int
}

type Option func(c *config)

// WithConstraints only reports paths that honour c.
func WithConstraints(c rikudo.ConstraintSet) Option {
	return func(cfg *config) {
		cfg.constraints = c
	}
}

// WithLimit stops the search once limit valid paths have been found. A
// limit of zero or less means no limit.
func WithLimit(limit int) Option {
	return func(cfg *config) {
		cfg.limit = limit
	}
}

// search holds the state of a single invocation.
type search struct {
	g           *graph.Graph
	dest        int
	constraints rikudo.ConstraintSet
	// pinned[i] is the vertex a map constraint places at step i, or -1.
	pinned  []int
	visited []bool
	path    rikudo.Path
	visit   Visitor
}

func newSearch(g *graph.Graph, cfg config, visit Visitor) *search {
	n := g.N()
	s := &search{
		g:           g,
		constraints: cfg.constraints,
		pinned:      make([]int, n),
		visited:     make([]bool, n),
		path:        make(rikudo.Path, 0, n+1),
	}
	for i := range s.pinned {
		s.pinned[i] = -1
	}
	for _, m := range cfg.constraints.Maps {
		if s.pinned[m.Step] >= 0 && s.pinned[m.Step] != m.Vertex {
			// two pins on one step can never hold
			s.pinned = nil
			break
		}
		s.pinned[m.Step] = m.Vertex
	}

	found := 0
	s.visit = func(p rikudo.Path) bool {
		found++
		if !visit(p) {
			return false
		}
		return cfg.limit <= 0 || found < cfg.limit
	}
	return s
}

// walk extends the current prefix with v. It returns false once the
// search has been stopped.
func (s *search) walk(v int) bool {
	step := len(s.path)
	if s.pinned[step] >= 0 && s.pinned[step] != v {
		return true
	}
	s.visited[v] = true
	s.path = append(s.path, v)
	defer func() {
		s.path = s.path[:step]
		s.visited[v] = false
	}()

	if len(s.path) == s.g.N() {
		if v != s.dest || !s.constraints.Satisfies(s.path, s.g.N()) {
			return true
		}
		return s.visit(s.path)
	}
	if v == s.dest {
		return true
	}
	for _, w := range s.g.Neighbors(v) {
		if s.visited[w] {
			continue
		}
		if !s.walk(w) {
			return false
		}
	}
	return true
}

func configure(g *graph.Graph, options []Option) (config, error) {
	var cfg config
	for _, option := range options {
		option(&cfg)
	}
	if err := cfg.constraints.Validate(g.N()); err != nil {
		return config{}, err
	}
	return cfg, nil
}

// WalkPaths calls visit for every valid Hamiltonian path from source to
// dest, in depth-first order of the adjacency lists.
func WalkPaths(g *graph.Graph, source, dest int, visit Visitor, options ...Option) error {
	if !g.Contains(source) || !g.Contains(dest) {
		return fmt.Errorf("%w: endpoints (%d, %d) with %d vertices", graph.ErrVertexOutOfRange, source, dest, g.N())
	}
	cfg, err := configure(g, options)
	if err != nil {
		return err
	}
	s := newSearch(g, cfg, visit)
	if s.pinned == nil {
		return nil
	}
	s.dest = dest
	s.walk(source)
	return nil
}

// WalkCycles calls visit for every valid Hamiltonian cycle. The search is
// anchored at the vertex a of minimum out-degree: for each out-neighbor s
// of a it looks for a path from s that ends at a, and reports it closed
// with s again. Every cycle is therefore reported once, starting at the
// successor of the anchor.
func WalkCycles(g *graph.Graph, visit Visitor, options ...Option) error {
	cfg, err := configure(g, options)
	if err != nil {
		return err
	}
	var cycle rikudo.Path
	s := newSearch(g, cfg, func(p rikudo.Path) bool {
		cycle = append(append(cycle[:0], p...), p[0])
		return visit(cycle)
	})
	if s.pinned == nil {
		return nil
	}
	anchor := g.MinOutDegreeVertex()
	s.dest = anchor
	for _, start := range g.Neighbors(anchor) {
		if !s.walk(start) {
			break
		}
	}
	return nil
}

// Path returns the first valid Hamiltonian path from source to dest. ok is
// false if there is none.
func Path(g *graph.Graph, source, dest int, options ...Option) (p rikudo.Path, ok bool, err error) {
	err = WalkPaths(g, source, dest, func(found rikudo.Path) bool {
		p, ok = clone(found), true
		return false
	}, options...)
	return p, ok, err
}

// Paths returns every valid Hamiltonian path from source to dest.
func Paths(g *graph.Graph, source, dest int, options ...Option) ([]rikudo.Path, error) {
	var paths []rikudo.Path
	err := WalkPaths(g, source, dest, func(found rikudo.Path) bool {
		paths = append(paths, clone(found))
		return true
	}, options...)
	return paths, err
}

// Count returns the number of valid Hamiltonian paths from source to dest
// without retaining them.
func Count(g *graph.Graph, source, dest int, options ...Option) (int, error) {
	count := 0
	err := WalkPaths(g, source, dest, func(rikudo.Path) bool {
		count++
		return true
	}, options...)
	return count, err
}

// Cycle returns the first valid Hamiltonian cycle. The returned path has
// N()+1 entries and ends with its first vertex.
func Cycle(g *graph.Graph, options ...Option) (p rikudo.Path, ok bool, err error) {
	err = WalkCycles(g, func(found rikudo.Path) bool {
		p, ok = clone(found), true
		return false
	}, options...)
	return p, ok, err
}

func Cycles(g *graph.Graph, options ...Option) ([]rikudo.Path, error) {
	var cycles []rikudo.Path
	err := WalkCycles(g, func(found rikudo.Path) bool {
		cycles = append(cycles, clone(found))
		return true
	}, options...)
	return cycles, err
}

func CountCycles(g *graph.Graph, options ...Option) (int, error) {
	count := 0
	err := WalkCycles(g, func(rikudo.Path) bool {
		count++
		return true
	}, options...)
	return count, err
}

func clone(p rikudo.Path) rikudo.Path {
	return append(rikudo.Path(nil), p...)
}
