package rikudo

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is an ordered sequence of vertices. A Hamiltonian path over n
// vertices has length n; a cycle has length n+1 and repeats its first
// vertex at the end.
type Path []int

func (p Path) String() string {
	s := make([]string, len(p))
	for i, v := range p {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, " -> ")
}

// Equal reports whether p and o visit the same vertices in the same order.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// MapConstraint pins Vertex to position Step of the path.
type MapConstraint struct {
	Step   int
	Vertex int
}

func (m MapConstraint) String() string {
	return fmt.Sprintf("vertex %d at step %d", m.Vertex, m.Step)
}

// DiamondConstraint requires U and V to be consecutive in the path, in
// either order.
type DiamondConstraint struct {
	U int
	V int
}

func (d DiamondConstraint) String() string {
	return fmt.Sprintf("%d next to %d", d.U, d.V)
}

// Same reports whether d and o name the same unordered pair.
func (d DiamondConstraint) Same(o DiamondConstraint) bool {
	return d == o || (d.U == o.V && d.V == o.U)
}

// ConstraintSet is the collection of hints imposed on a path.
type ConstraintSet struct {
	Maps     []MapConstraint
	Diamonds []DiamondConstraint
}

// Len returns the total number of constraints.
func (c ConstraintSet) Len() int {
	return len(c.Maps) + len(c.Diamonds)
}

// Clone returns a copy of c that does not share storage with it.
func (c ConstraintSet) Clone() ConstraintSet {
	return ConstraintSet{
		Maps:     append([]MapConstraint(nil), c.Maps...),
		Diamonds: append([]DiamondConstraint(nil), c.Diamonds...),
	}
}

// PinsStep reports whether some map constraint already pins step.
func (c ConstraintSet) PinsStep(step int) bool {
	for _, m := range c.Maps {
		if m.Step == step {
			return true
		}
	}
	return false
}

// PinsVertex reports whether some map constraint already pins vertex.
func (c ConstraintSet) PinsVertex(vertex int) bool {
	for _, m := range c.Maps {
		if m.Vertex == vertex {
			return true
		}
	}
	return false
}

// HasDiamond reports whether d is present in either orientation.
func (c ConstraintSet) HasDiamond(d DiamondConstraint) bool {
	for _, o := range c.Diamonds {
		if o.Same(d) {
			return true
		}
	}
	return false
}

// Validate checks that every constraint refers to steps and vertices of an
// n-vertex graph.
func (c ConstraintSet) Validate(n int) error {
	for _, m := range c.Maps {
		if m.Step < 0 || m.Step >= n || m.Vertex < 0 || m.Vertex >= n {
			return fmt.Errorf("invalid map constraint (%s) for %d vertices", m, n)
		}
	}
	for _, d := range c.Diamonds {
		if d.U < 0 || d.U >= n || d.V < 0 || d.V >= n || d.U == d.V {
			return fmt.Errorf("invalid diamond constraint (%s) for %d vertices", d, n)
		}
	}
	return nil
}

// Satisfies reports whether the first n entries of p (the whole path for
// a path, everything but the repeated vertex for a cycle) honour every
// constraint in c.
func (c ConstraintSet) Satisfies(p Path, n int) bool {
	if len(p) < n {
		return false
	}
	steps := p[:n]
	for _, m := range c.Maps {
		if m.Step >= len(steps) || steps[m.Step] != m.Vertex {
			return false
		}
	}
	for _, d := range c.Diamonds {
		if !adjacent(steps, d.U, d.V) {
			return false
		}
	}
	return true
}

func adjacent(steps []int, u, v int) bool {
	for i := 0; i+1 < len(steps); i++ {
		if (steps[i] == u && steps[i+1] == v) || (steps[i] == v && steps[i+1] == u) {
			return true
		}
	}
	return false
}
