package solver

import (
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/operator-framework/rikudo/internal/cnf"
	"github.com/operator-framework/rikudo/internal/gateway"
)

// DefaultMaxIterations bounds a growing refinement run.
const DefaultMaxIterations = 1000

// Rand is the source of randomness for candidate selection. *rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

type config struct {
	engine        gateway.Engine
	logger        *logrus.Entry
	encoder       []cnf.EncoderOption
	rand          Rand
	maxIterations int
	tracer        Tracer
}

type Option func(c *config) error

// WithEngine selects the satisfiability engine. Defaults to gini.
func WithEngine(e gateway.Engine) Option {
	return func(c *config) error {
		c.engine = e
		return nil
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// WithEncoderOptions is passed on to every encoder built for the graph.
func WithEncoderOptions(options ...cnf.EncoderOption) Option {
	return func(c *config) error {
		c.encoder = append(c.encoder, options...)
		return nil
	}
}

// WithRand sets the source used to shuffle and pick candidate constraints.
func WithRand(r Rand) Option {
	return func(c *config) error {
		c.rand = r
		return nil
	}
}

// WithMaxIterations bounds the number of uniqueness checks of a growing
// refinement run.
func WithMaxIterations(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return errors.New("maximum number of iterations must be positive")
		}
		c.maxIterations = n
		return nil
	}
}

func WithTracer(t Tracer) Option {
	return func(c *config) error {
		c.tracer = t
		return nil
	}
}

var defaults = []Option{
	func(c *config) error {
		if c.engine == nil {
			c.engine = gateway.NewGiniEngine()
		}
		return nil
	},
	func(c *config) error {
		if c.logger == nil {
			l := logrus.New()
			l.SetOutput(io.Discard)
			c.logger = logrus.NewEntry(l)
		}
		return nil
	},
	func(c *config) error {
		if c.rand == nil {
			c.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		return nil
	},
	func(c *config) error {
		if c.maxIterations == 0 {
			c.maxIterations = DefaultMaxIterations
		}
		return nil
	},
	func(c *config) error {
		if c.tracer == nil {
			c.tracer = DefaultTracer{}
		}
		return nil
	},
}

func configure(options []Option) (config, error) {
	var c config
	for _, option := range append(options, defaults...) {
		if err := option(&c); err != nil {
			return config{}, err
		}
	}
	return c, nil
}
