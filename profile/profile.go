package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Config describes a profiling session. The zero value profiles nothing.
type Config struct {
	mode  string
	path  string
	quiet bool
}

// Option applies a configuration option to a Config.
type Option func(Config) Config

// Make returns a Config with the given options applied.
func Make(opts ...Option) Config {
	var c Config

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// WithMode selects the profiling mode, one of [Modes].
func WithMode(mode string) Option {
	return func(c Config) Config {
		c.mode = mode

		return c
	}
}

// WithPath sets the directory that receives profile output.
func WithPath(path string) Option {
	return func(c Config) Config {
		c.path = path

		return c
	}
}

// WithQuiet suppresses the profiler's own start and stop messages.
func WithQuiet(quiet bool) Option {
	return func(c Config) Config {
		c.quiet = quiet

		return c
	}
}

// Mode returns the configured profiling mode.
func (c Config) Mode() string { return c.mode }

// Path returns the configured output directory.
func (c Config) Path() string { return c.path }

// Start begins profiling and returns a [Stopper] that ends it.
//
// If the binary was built without the pprof tag, or the mode is empty or
// unknown, Start returns a no-op. Stop is always safe to call.
func (c Config) Start() Stopper {
	if c.mode == "" {
		return ignore{}
	}

	return start(c)
}

type ignore struct{}

func (ignore) Stop() {}
