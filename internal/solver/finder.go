package solver

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/operator-framework/rikudo/internal/cnf"
	"github.com/operator-framework/rikudo/internal/gateway"
	"github.com/operator-framework/rikudo/pkg/graph"
	"github.com/operator-framework/rikudo/pkg/rikudo"
)

// Finder answers path and cycle queries on a graph through the SAT
// encoding.
type Finder struct {
	g       *graph.Graph
	encoder *cnf.Encoder
	engine  gateway.Engine
	logger  *logrus.Entry
}

func NewFinder(g *graph.Graph, options ...Option) (*Finder, error) {
	c, err := configure(options)
	if err != nil {
		return nil, err
	}
	return &Finder{
		g:       g,
		encoder: cnf.NewEncoder(g, c.encoder...),
		engine:  c.engine,
		logger:  c.logger,
	}, nil
}

// Path returns a Hamiltonian path from source to dest honouring c, or
// ErrNoPath.
func (f *Finder) Path(ctx context.Context, source, dest int, c rikudo.ConstraintSet) (rikudo.Path, error) {
	var found rikudo.Path
	if err := f.walk(ctx, source, dest, c, func(p rikudo.Path) bool {
		found = p
		return false
	}); err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNoPath
	}
	return found, nil
}

// Paths enumerates the Hamiltonian paths from source to dest honouring c
// by banning every path found and solving again. A positive limit stops
// the enumeration once that many paths have been found.
func (f *Finder) Paths(ctx context.Context, source, dest int, c rikudo.ConstraintSet, limit int) ([]rikudo.Path, error) {
	var paths []rikudo.Path
	err := f.walk(ctx, source, dest, c, func(p rikudo.Path) bool {
		paths = append(paths, p)
		return limit <= 0 || len(paths) < limit
	})
	return paths, err
}

// Count returns the number of paths Paths would return.
func (f *Finder) Count(ctx context.Context, source, dest int, c rikudo.ConstraintSet, limit int) (int, error) {
	count := 0
	err := f.walk(ctx, source, dest, c, func(rikudo.Path) bool {
		count++
		return limit <= 0 || count < limit
	})
	return count, err
}

// AtMost reports whether no more than k paths from source to dest honour
// c. Only k+1 solves are needed in the worst case.
func (f *Finder) AtMost(ctx context.Context, source, dest int, c rikudo.ConstraintSet, k int) (bool, error) {
	if k < 0 {
		return false, fmt.Errorf("invalid path count %d", k)
	}
	count, err := f.Count(ctx, source, dest, c, k+1)
	if err != nil {
		return false, err
	}
	return count <= k, nil
}

// Cycle returns a Hamiltonian cycle honouring c, or ErrNoCycle. The cycle
// is searched as a path from an out-neighbor s of the minimum out-degree
// vertex a back to a, closed with s.
func (f *Finder) Cycle(ctx context.Context, c rikudo.ConstraintSet) (rikudo.Path, error) {
	var found rikudo.Path
	if err := f.walkCycles(ctx, c, func(p rikudo.Path) bool {
		found = p
		return false
	}); err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNoCycle
	}
	return found, nil
}

// Cycles enumerates Hamiltonian cycles honouring c, each once.
func (f *Finder) Cycles(ctx context.Context, c rikudo.ConstraintSet, limit int) ([]rikudo.Path, error) {
	var cycles []rikudo.Path
	err := f.walkCycles(ctx, c, func(p rikudo.Path) bool {
		cycles = append(cycles, p)
		return limit <= 0 || len(cycles) < limit
	})
	return cycles, err
}

func (f *Finder) walkCycles(ctx context.Context, c rikudo.ConstraintSet, visit func(rikudo.Path) bool) error {
	anchor := f.g.MinOutDegreeVertex()
	f.logger.WithField("anchor", anchor).Debug("searching cycles")
	stopped := false
	for _, start := range f.g.Neighbors(anchor) {
		err := f.walk(ctx, start, anchor, c, func(p rikudo.Path) bool {
			if !visit(append(p, p[0])) {
				stopped = true
			}
			return !stopped
		})
		if err != nil {
			return err
		}
		if stopped {
			break
		}
	}
	return nil
}

// walk solves for a path, hands it to visit and bans it until the instance
// becomes unsatisfiable or visit returns false. An assignment that does not
// decode is treated as the end of the enumeration.
func (f *Finder) walk(ctx context.Context, source, dest int, c rikudo.ConstraintSet, visit func(rikudo.Path) bool) error {
	inst, err := f.encoder.Encode(source, dest, c)
	if err != nil {
		return err
	}
	session, err := f.engine.Open(inst)
	if err != nil {
		return fmt.Errorf("error opening solver session: %w", err)
	}

	logger := f.logger.WithFields(logrus.Fields{"source": source, "destination": dest})
	for found := 0; ; found++ {
		result, err := session.Solve(ctx)
		if err != nil {
			return err
		}
		if !result.Satisfiable {
			logger.WithField("paths", found).Debug("no further path")
			return nil
		}
		p, ok := f.encoder.Scheme().Decode(result.Assignment, false)
		if !ok {
			logger.WithField("paths", found).Debug("solver assignment does not decode to a path")
			return nil
		}
		logger.WithField("path", p.String()).Debug("found path")
		if !visit(p) {
			return nil
		}
		if err := session.Extend(f.encoder.Ban(p)); err != nil {
			return err
		}
	}
}
