package solver

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/operator-framework/rikudo/internal/cnf"
	"github.com/operator-framework/rikudo/internal/gateway"
	"github.com/operator-framework/rikudo/pkg/graph"
	"github.com/operator-framework/rikudo/pkg/rikudo"
)

// Strategy selects how a Refiner builds its constraint set.
type Strategy string

const (
	// Bisect shuffles every constraint derivable from the first path found
	// and binary searches the shortest prefix that makes it unique.
	Bisect Strategy = "bisect"
	// Grow adds one random constraint at a time until the current path is
	// unique, up to a bounded number of iterations.
	Grow Strategy = "grow"
)

var Strategies = []Strategy{Bisect, Grow}

// Refiner finds a Hamiltonian path together with a small set of map and
// diamond constraints under which it is the only path between its
// endpoints.
type Refiner struct {
	g             *graph.Graph
	encoder       *cnf.Encoder
	engine        gateway.Engine
	logger        *logrus.Entry
	rand          Rand
	maxIterations int
	tracer        Tracer
}

func NewRefiner(g *graph.Graph, options ...Option) (*Refiner, error) {
	c, err := configure(options)
	if err != nil {
		return nil, err
	}
	return &Refiner{
		g:             g,
		encoder:       cnf.NewEncoder(g, c.encoder...),
		engine:        c.engine,
		logger:        c.logger,
		rand:          c.rand,
		maxIterations: c.maxIterations,
		tracer:        c.tracer,
	}, nil
}

// Refine runs the given strategy.
func (r *Refiner) Refine(ctx context.Context, source, dest int, strategy Strategy) (rikudo.Solution, error) {
	switch strategy {
	case Bisect, "":
		return r.Minimal(ctx, source, dest)
	case Grow:
		return r.Grow(ctx, source, dest)
	}
	return rikudo.Solution{}, fmt.Errorf("unknown strategy %q, expected one of %v", strategy, Strategies)
}

// refinement holds the solver session of one run.
type refinement struct {
	*Refiner
	session gateway.Session
	logger  *logrus.Entry
}

func (r *Refiner) start(source, dest int, strategy Strategy) (*refinement, error) {
	inst, err := r.encoder.Encode(source, dest, rikudo.ConstraintSet{})
	if err != nil {
		return nil, err
	}
	session, err := r.engine.Open(inst)
	if err != nil {
		return nil, fmt.Errorf("error opening solver session: %w", err)
	}
	return &refinement{
		Refiner: r,
		session: session,
		logger: r.logger.WithFields(logrus.Fields{
			"run":         uuid.New().String(),
			"strategy":    string(strategy),
			"source":      source,
			"destination": dest,
		}),
	}, nil
}

// solve returns the path of a satisfying assignment, or nil if there is
// none or it does not decode.
func (r *refinement) solve(ctx context.Context, active ...gateway.Guard) (rikudo.Path, error) {
	result, err := r.session.Solve(ctx, active...)
	if err != nil {
		return nil, err
	}
	if !result.Satisfiable {
		return nil, nil
	}
	p, ok := r.encoder.Scheme().Decode(result.Assignment, false)
	if !ok {
		r.logger.Debug("solver assignment does not decode to a path")
		return nil, nil
	}
	return p, nil
}

// Minimal finds a path P and a second path Q. If there is no Q, P is
// unique without constraints. Otherwise the candidates of P are shuffled
// and the shortest prefix under which P is the only path is found by
// binary search. Every candidate holds on P, so growing the prefix only
// removes alternatives and the search is sound whatever the shuffle.
func (r *Refiner) Minimal(ctx context.Context, source, dest int) (rikudo.Solution, error) {
	run, err := r.start(source, dest, Bisect)
	if err != nil {
		return rikudo.Solution{}, err
	}

	p, err := run.solve(ctx)
	if err != nil {
		return rikudo.Solution{}, err
	}
	if p == nil {
		return rikudo.Solution{}, ErrNoPath
	}
	run.logger.WithField("path", p.String()).Debug("found path")

	if err := run.session.Extend(r.encoder.Ban(p)); err != nil {
		return rikudo.Solution{}, err
	}
	alt, err := run.solve(ctx)
	if err != nil {
		return rikudo.Solution{}, err
	}
	r.tracer.Trace(position{path: p, alternative: alt})
	if alt == nil {
		run.logger.Debug("path is unique without constraints")
		return rikudo.Solution{Path: p}, nil
	}

	candidates := pool(p)
	r.rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	guards := make([]gateway.Guard, len(candidates))
	for i, c := range candidates {
		if guards[i], err = run.session.Guard(c.clauses(r.encoder)...); err != nil {
			return rikudo.Solution{}, err
		}
	}

	k, err := MinimalPrefix(len(candidates), func(k int) (bool, error) {
		alt, err := run.solve(ctx, guards[:k]...)
		if err != nil {
			return false, err
		}
		r.tracer.Trace(position{path: p, alternative: alt, constraints: constraintSet(candidates[:k])})
		run.logger.WithFields(logrus.Fields{"prefix": k, "alternative": alt != nil}).Debug("probed candidate prefix")
		return alt != nil, nil
	})
	if err != nil {
		return rikudo.Solution{}, err
	}

	run.logger.WithFields(logrus.Fields{"constraints": k, "candidates": len(candidates)}).Debug("found minimal prefix")
	return rikudo.Solution{Path: p, Constraints: constraintSet(candidates[:k])}, nil
}

// Grow starts from the empty constraint set. While the path found under the
// current constraints has an alternative, a coin flip picks a diamond or a
// map from that path, taking the other kind when the chosen one is
// exhausted, and the constraint is asserted for the rest of the run. The
// run fails with an UndeterminedError after the configured number of
// checks.
func (r *Refiner) Grow(ctx context.Context, source, dest int) (rikudo.Solution, error) {
	run, err := r.start(source, dest, Grow)
	if err != nil {
		return rikudo.Solution{}, err
	}

	var set rikudo.ConstraintSet
	i := 0
	for ; i < r.maxIterations; i++ {
		p, err := run.solve(ctx)
		if err != nil {
			return rikudo.Solution{}, err
		}
		if p == nil {
			return rikudo.Solution{}, ErrNoPath
		}

		ban, err := run.session.Guard(r.encoder.Ban(p))
		if err != nil {
			return rikudo.Solution{}, err
		}
		alt, err := run.solve(ctx, ban)
		if err != nil {
			return rikudo.Solution{}, err
		}
		r.tracer.Trace(position{path: p, alternative: alt, constraints: set.Clone()})
		if alt == nil {
			run.logger.WithFields(logrus.Fields{"iterations": i + 1, "constraints": set.Len()}).Debug("path is unique")
			return rikudo.Solution{Path: p, Constraints: set}, nil
		}

		c, ok := r.pick(p, set)
		if !ok {
			i++
			break
		}
		run.logger.WithFields(logrus.Fields{"iteration": i, "constraint": c.String()}).Debug("adding constraint")
		c.addTo(&set)
		if err := run.session.Extend(c.clauses(r.encoder)...); err != nil {
			return rikudo.Solution{}, err
		}
	}
	return rikudo.Solution{}, UndeterminedError{Iterations: i}
}

// pick chooses the next constraint of a growing run from p.
func (r *Refiner) pick(p rikudo.Path, set rikudo.ConstraintSet) (candidate, bool) {
	diamonds := remaining(diamondCandidates(p), set)
	maps := remaining(mapCandidates(p), set)
	first, second := diamonds, maps
	if r.rand.Intn(2) == 1 {
		first, second = maps, diamonds
	}
	if len(first) == 0 {
		first = second
	}
	if len(first) == 0 {
		return candidate{}, false
	}
	return first[r.rand.Intn(len(first))], true
}
