package log

import (
	"io"
	"time"
)

// Option applies a configuration option to config.
type Option func(config) config

func apply(c config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

// WithDefaults resets every setting to its default and directs output to w.
func WithDefaults(w io.Writer) Option {
	return func(config) config { return defaults(w) }
}

// WithOutput sets the output [io.Writer] for log messages.
// If a nil writer is provided, [io.Discard] is used instead.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}

		c.output = w

		return c
	}
}

// WithLevel sets the minimum log level. Messages below this level are
// discarded.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

// WithFormat sets the output format for log messages.
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format

		return c
	}
}

// WithTimeLayout sets the layout used to format log timestamps.
//
// The layout string can be one of the named layouts from the [time] package
// (for example, "RFC3339" or "DateTime"), or "none". Otherwise, it is passed
// verbatim to [time.Time.Format].
//
// An empty or "none" layout disables timestamps entirely.
func WithTimeLayout(layout string) Option {
	return func(c config) config {
		c.formatTime = makeFormatTimeFunc(layout)

		return c
	}
}

// WithFormatTime sets a custom timestamp formatter.
func WithFormatTime(fn func(time.Time) string) Option {
	return func(c config) config {
		if fn != nil {
			c.formatTime = fn
		}

		return c
	}
}

// WithCaller controls whether caller information is included in log output.
func WithCaller(enable bool) Option {
	return func(c config) config {
		c.caller = enable

		return c
	}
}

// WithPretty controls whether log output uses the human-oriented handlers.
// Pretty text is unquoted key=value pairs; pretty JSON is indented.
func WithPretty(enable bool) Option {
	return func(c config) config {
		c.pretty = enable

		return c
	}
}

// WithColor controls whether pretty output may contain ANSI styling.
// Even when enabled, styling is only emitted if the output is a terminal.
func WithColor(enable bool) Option {
	return func(c config) config {
		c.color = enable

		return c
	}
}
