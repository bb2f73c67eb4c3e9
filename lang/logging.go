package lang

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/glass/log"
)

func sortedKeys[T any](m map[string]T) []string {
	if len(m) == 0 {
		return nil
	}

	return slices.Sorted(maps.Keys(m))
}

// traceTokens logs every token of source at trace level. The token stream is
// restartable, so this scan does not disturb parsing.
func traceTokens(ctx context.Context, logger log.Logger, source, file string) {
	if !logger.Enabled(ctx, log.LevelTrace) {
		return
	}

	count := 0

	for tok := range Tokenize(source) {
		logger.TraceContext(ctx, "token",
			slog.String("file", file),
			slog.String("kind", tok.Kind.String()),
			slog.String("text", tok.Span.Slice(source)),
			slog.String("span", tok.Span.String()))

		count++
	}

	logger.DebugContext(ctx, "tokenized",
		slog.String("file", file),
		slog.Int("count", count))
}
