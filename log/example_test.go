package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/glass/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none"), log.WithColor(false))
	logger.Info("evaluated", slog.String("file", "prog.glass"), slog.Int("tokens", 5))
	// Output:
	// level=INFO msg=evaluated file=prog.glass tokens=5
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelWarn),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message", slog.String("key", "value"))
	logger.Error("error message", slog.String("error", "something failed"))
	// Output:
	// level=WARN msg="warning message" key=value
	// level=ERROR msg="error message" error="something failed"
}

func Example_trace() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.TraceContext(context.Background(), "token", slog.String("kind", "number"))
	// Output:
	// {"level":"TRACE","msg":"token","kind":"number"}
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none"), log.WithColor(false)).
		With(slog.String("file", "prog.glass")).
		WithGroup("span")

	logger.Info("located", slog.Int("start", 4), slog.Int("end", 7))
	// Output:
	// level=INFO msg=located file=prog.glass span.start=4 span.end=7
}
