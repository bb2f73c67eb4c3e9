// Package log provides a simplified logging interface based on [log/slog].
//
// A [Logger] is an immutable value configured at creation time with
// functional options. Deriving a logger with [Logger.Wrap], [Logger.With] or
// [Logger.WithGroup] never affects the original, so loggers can be shared
// freely between goroutines.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("evaluated", slog.String("file", "prog.glass"))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("DateTime"),
//		log.WithCaller(true))
//
// # Levels
//
// In addition to the four [log/slog] levels, the package defines
// [LevelTrace], which sits below [LevelDebug] and is rendered as "TRACE"
// rather than slog's "DEBUG-4". Level names parse case-insensitively with
// [ParseLevel] or through [Level.UnmarshalText].
//
// # Output
//
// Two formats are supported: [FormatText] (default) and [FormatJSON]. With
// [WithPretty] enabled (default), text output is unquoted key=value pairs and
// JSON output is indented. Pretty output is styled with lipgloss when the
// destination is a terminal and [WithColor] has not disabled it.
//
// # Package-Level Logger
//
// The package-level functions such as [Info] and [DebugContext] write through
// a default logger on standard error, which [Config] reconfigures and
// [SetDefault] replaces. Context-unaware functions use
// [DefaultContextProvider], which returns [context.TODO] by default.
package log
