package lang

import "github.com/ardnew/glass/log"

// DefaultMaxDepth is the default limit on expression nesting accepted by the
// parser.
const DefaultMaxDepth = 10000

// Option configures parsing and evaluation.
type Option func(*options)

type options struct {
	logger   log.Logger
	maxDepth int
}

func makeOptions(opts ...Option) options {
	o := options{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the logger used for trace and debug output. The zero
// [log.Logger] discards everything.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxDepth limits how deeply expressions may nest. Values below one
// restore [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}

		o.maxDepth = depth
	}
}
