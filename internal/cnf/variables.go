package cnf

import "github.com/operator-framework/rikudo/pkg/rikudo"

// Scheme maps the propositional variables of an n-vertex encoding to
// DIMACS variable ids. Position variables "vertex v occupies step i" live
// in [1, n²]; precedence variables "u comes before v" live in
// [n²+1, 2n²].
type Scheme struct {
	n int
}

func NewScheme(n int) Scheme {
	return Scheme{n: n}
}

// N returns the number of vertices (and steps) of the encoding.
func (s Scheme) N() int {
	return s.n
}

// Vars returns the number of variables the encoding declares.
func (s Scheme) Vars() int {
	return 2 * s.n * s.n
}

// Position returns the id of the variable true iff vertex occupies step.
func (s Scheme) Position(step, vertex int) int {
	return step*s.n + vertex + 1
}

// Precedence returns the id of the variable true iff u precedes v.
func (s Scheme) Precedence(u, v int) int {
	return s.n*s.n + u*s.n + v + 1
}

// StepOf is the inverse of Position. ok is false for ids outside the
// position block.
func (s Scheme) StepOf(id int) (step, vertex int, ok bool) {
	if id < 1 || id > s.n*s.n {
		return 0, 0, false
	}
	id--
	return id / s.n, id % s.n, true
}

// Decode reads the path out of the position block of a. Every step must
// hold exactly one true position variable, otherwise ok is false and the
// assignment must be treated as if no path existed. In cycle mode the
// first vertex is appended again.
func (s Scheme) Decode(a Assignment, cycle bool) (path rikudo.Path, ok bool) {
	path = make(rikudo.Path, 0, s.n+1)
	for step := 0; step < s.n; step++ {
		found := -1
		for vertex := 0; vertex < s.n; vertex++ {
			if !a.Value(s.Position(step, vertex)) {
				continue
			}
			if found >= 0 {
				return nil, false
			}
			found = vertex
		}
		if found < 0 {
			return nil, false
		}
		path = append(path, found)
	}
	if cycle && len(path) > 0 {
		path = append(path, path[0])
	}
	return path, true
}
