package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/ardnew/glass/lang"
	"github.com/ardnew/glass/log"
)

// ConfigIdentifier is the kong variable holding the path of the YAML
// configuration file.
const ConfigIdentifier = "configFile"

// CacheIdentifier is the kong variable holding the cache directory.
const CacheIdentifier = "cacheDir"

type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// IO is the set of streams a command reads from and writes to. Nil fields
// fall back to the process's standard streams.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type ioKey struct{}

// WithIO returns a new context.Context carrying the given streams.
func WithIO(ctx context.Context, stdio IO) context.Context {
	return context.WithValue(ctx, ioKey{}, stdio)
}

// IOFrom returns the streams stored in ctx by [WithIO], with unset fields
// replaced by [os.Stdin], [os.Stdout] and [os.Stderr].
func IOFrom(ctx context.Context) IO {
	stdio, _ := ctx.Value(ioKey{}).(IO)

	if stdio.In == nil {
		stdio.In = os.Stdin
	}

	if stdio.Out == nil {
		stdio.Out = os.Stdout
	}

	if stdio.Err == nil {
		stdio.Err = os.Stderr
	}

	return stdio
}

// Settings are the global options shared by every command.
type Settings struct {
	Color    bool
	MaxDepth int
}

type settingsKey struct{}

// WithSettings returns a new context.Context carrying the given settings.
func WithSettings(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

func settingsFrom(ctx context.Context) Settings {
	s, ok := ctx.Value(settingsKey{}).(Settings)
	if !ok {
		return Settings{Color: true, MaxDepth: lang.DefaultMaxDepth}
	}

	return s
}

// langOptions returns the interpreter options implied by ctx.
func langOptions(ctx context.Context) []lang.Option {
	return []lang.Option{
		lang.WithLogger(log.Default()),
		lang.WithMaxDepth(settingsFrom(ctx).MaxDepth),
	}
}

const (
	stdinSource = "-"
	stdinName   = "<stdin>"
	exprName    = "<expr>"
)

// Source selects the program text a command operates on: a file, standard
// input, or inline text given with -e.
type Source struct {
	File string `arg:"" default:"-" help:"Source file, or '-' for stdin" optional:""`
	Expr string `help:"Use inline source text instead of a file" short:"e"`
}

// Load returns the identifier used in diagnostics and the text of the
// selected source.
func (s *Source) Load(ctx context.Context) (name, text string, err error) {
	stdin := s.File == "" || s.File == stdinSource

	switch {
	case s.Expr != "" && !stdin:
		return "", "", ErrSourceConflict.
			With(slog.String("file", s.File))

	case s.Expr != "":
		return exprName, s.Expr, nil

	case stdin:
		in := IOFrom(ctx).In
		if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			return "", "", ErrNoInput
		}

		b, err := io.ReadAll(in)
		if err != nil {
			return "", "", ErrReadSource.
				With(slog.String("file", stdinName)).
				Wrap(err)
		}

		return stdinName, string(b), nil
	}

	b, err := os.ReadFile(s.File)
	if err != nil {
		return "", "", ErrReadSource.
			With(slog.String("file", s.File)).
			Wrap(err)
	}

	return s.File, string(b), nil
}
