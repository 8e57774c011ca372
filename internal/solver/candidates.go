package solver

import (
	"github.com/samber/lo"

	"github.com/operator-framework/rikudo/internal/cnf"
	"github.com/operator-framework/rikudo/pkg/rikudo"
)

// candidate is a constraint derived from a path. Every candidate of a path
// is satisfied by that path.
type candidate struct {
	diamond bool
	m       rikudo.MapConstraint
	d       rikudo.DiamondConstraint
}

func (c candidate) String() string {
	if c.diamond {
		return c.d.String()
	}
	return c.m.String()
}

func (c candidate) clauses(e *cnf.Encoder) []cnf.Clause {
	if c.diamond {
		return e.DiamondClauses(c.d)
	}
	return []cnf.Clause{e.MapClause(c.m)}
}

func (c candidate) addTo(set *rikudo.ConstraintSet) {
	if c.diamond {
		set.Diamonds = append(set.Diamonds, c.d)
	} else {
		set.Maps = append(set.Maps, c.m)
	}
}

// diamondCandidates returns one diamond per consecutive pair of p.
func diamondCandidates(p rikudo.Path) []candidate {
	out := make([]candidate, 0, len(p))
	for i := 0; i+1 < len(p); i++ {
		out = append(out, candidate{diamond: true, d: rikudo.DiamondConstraint{U: p[i], V: p[i+1]}})
	}
	return out
}

// mapCandidates returns one map per interior step of p. The endpoints are
// pinned by the encoding already.
func mapCandidates(p rikudo.Path) []candidate {
	out := make([]candidate, 0, len(p))
	for i := 1; i+1 < len(p); i++ {
		out = append(out, candidate{m: rikudo.MapConstraint{Step: i, Vertex: p[i]}})
	}
	return out
}

// pool returns every candidate of p, diamonds first.
func pool(p rikudo.Path) []candidate {
	return append(diamondCandidates(p), mapCandidates(p)...)
}

// remaining drops the candidates that set already holds, or that would
// pin a step or vertex that set already pins.
func remaining(candidates []candidate, set rikudo.ConstraintSet) []candidate {
	return lo.Filter(candidates, func(c candidate, _ int) bool {
		if c.diamond {
			return !set.HasDiamond(c.d)
		}
		return !set.PinsStep(c.m.Step) && !set.PinsVertex(c.m.Vertex)
	})
}

// constraintSet collects candidates into a set.
func constraintSet(candidates []candidate) rikudo.ConstraintSet {
	var set rikudo.ConstraintSet
	for _, c := range candidates {
		c.addTo(&set)
	}
	return set
}
