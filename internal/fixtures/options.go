package fixtures

import (
	"time"

	"github.com/okian/talentscope/pkg/logger"
)

// Option configures a Generator.
type Option func(*Generator)

// WithChildren sets how many children a batch holds.
func WithChildren(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.children = n
		}
	}
}

// WithSessions sets the number of sessions generated per child.
func WithSessions(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.sessions = n
		}
	}
}

// WithResponses sets the number of question responses generated per child.
func WithResponses(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.responses = n
		}
	}
}

// WithSeed makes output reproducible. Equal seeds and reference times give
// equal batches.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithNow sets the reference time sessions and responses are dated against.
func WithNow(now time.Time) Option {
	return func(g *Generator) {
		if !now.IsZero() {
			g.now = now
		}
	}
}

// WithLogger sets the generator's logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}
