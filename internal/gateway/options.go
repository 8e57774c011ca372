package gateway

import (
	"io"

	"github.com/sirupsen/logrus"
)

type config struct {
	path   string
	args   []string
	logger *logrus.Entry
}

type Option func(c *config) error

// WithBinary sets the solver binary and its arguments for the exec engine.
func WithBinary(path string, args ...string) Option {
	return func(c *config) error {
		c.path = path
		c.args = args
		return nil
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

var defaults = []Option{
	func(c *config) error {
		if c.logger == nil {
			l := logrus.New()
			l.SetOutput(io.Discard)
			c.logger = logrus.NewEntry(l)
		}
		return nil
	},
}
