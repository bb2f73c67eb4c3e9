package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/glass/log"
)

// Run tokenizes, parses and evaluates source, identified in diagnostics by
// file. A panic anywhere in the pipeline is returned as an UnknownError
// diagnostic.
func Run(ctx context.Context, source, file string, opts ...Option) (_ Value, err error) {
	defer recoverFault(&err)

	o := makeOptions(opts...)

	traceTokens(ctx, o.logger, source, file)

	node, err := Parse(Tokenize(source), source, file, opts...)
	if err != nil {
		return nil, err
	}

	if o.logger.Enabled(ctx, log.LevelDebug) {
		o.logger.DebugContext(ctx, "parsed",
			slog.String("file", file),
			slog.String("ast", node.String()))
	}

	result, err := NewEvaluator(source, file, opts...).Evaluate(ctx, node)
	if err != nil {
		return nil, err
	}

	if o.logger.Enabled(ctx, log.LevelDebug) {
		o.logger.DebugContext(ctx, "evaluated",
			slog.String("file", file),
			slog.String("type", result.Type()),
			slog.String("result", result.String()))
	}

	return result, nil
}
