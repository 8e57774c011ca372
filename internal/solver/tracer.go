package solver

import (
	"fmt"
	"io"

	"github.com/operator-framework/rikudo/pkg/rikudo"
)

// SearchPosition describes one uniqueness check of a refinement run.
type SearchPosition interface {
	// Path is the path the constraints are derived from.
	Path() rikudo.Path
	// Alternative is a second path honouring Constraints, or nil if Path
	// is the only one.
	Alternative() rikudo.Path
	Constraints() rikudo.ConstraintSet
}

type Tracer interface {
	Trace(p SearchPosition)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ SearchPosition) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(p SearchPosition) {
	fmt.Fprintf(t.Writer, "---\nPath: %s\n", p.Path())
	if alt := p.Alternative(); alt != nil {
		fmt.Fprintf(t.Writer, "Alternative: %s\n", alt)
	} else {
		fmt.Fprintf(t.Writer, "Alternative: none\n")
	}
	fmt.Fprintf(t.Writer, "Constraints:\n")
	c := p.Constraints()
	for _, m := range c.Maps {
		fmt.Fprintf(t.Writer, "- %s\n", m)
	}
	for _, d := range c.Diamonds {
		fmt.Fprintf(t.Writer, "- %s\n", d)
	}
}

type position struct {
	path        rikudo.Path
	alternative rikudo.Path
	constraints rikudo.ConstraintSet
}

func (p position) Path() rikudo.Path {
	return p.path
}

func (p position) Alternative() rikudo.Path {
	return p.alternative
}

func (p position) Constraints() rikudo.ConstraintSet {
	return p.constraints
}
