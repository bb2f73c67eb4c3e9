package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/glass/lang"
	"github.com/ardnew/glass/log"
)

// watchDelay coalesces the bursts of events editors produce for one save.
const watchDelay = 50 * time.Millisecond

// Eval evaluates a program and prints its value.
type Eval struct {
	Source `embed:""`

	Output string `default:"text" enum:"text,json,yaml,cbor" help:"Output format (${enum})"              short:"o"`
	Indent int    `default:"2"                               help:"Indentation for json and yaml (0 is compact)"`
	Watch  bool   `                                          help:"Re-evaluate the source file whenever it changes" short:"w"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) error {
	if e.Watch {
		return e.watch(ctx)
	}

	name, text, err := e.Load(ctx)
	if err != nil {
		return err
	}

	return e.evaluate(ctx, name, text)
}

func (e *Eval) evaluate(ctx context.Context, name, text string) error {
	v, err := lang.Run(ctx, text, name, langOptions(ctx)...)
	if err != nil {
		return err
	}

	out := IOFrom(ctx).Out

	switch e.Output {
	case "json":
		err = lang.FormatJSON(ctx, out, v, e.Indent)
	case "yaml":
		err = lang.FormatYAML(ctx, out, v, e.Indent)
	case "cbor":
		err = lang.FormatCBOR(ctx, out, v)
	default:
		err = lang.FormatValue(out, v)
	}

	if err != nil {
		return ErrWriteOutput.
			With(slog.String("format", e.Output)).
			Wrap(err)
	}

	return nil
}

// watch evaluates the source file once, then again after every change,
// until ctx is done. Failures are reported and do not stop watching.
func (e *Eval) watch(ctx context.Context) error {
	if e.Expr != "" || e.File == "" || e.File == stdinSource {
		return ErrWatchSource
	}

	path, err := filepath.Abs(e.File)
	if err != nil {
		return ErrWatch.With(slog.String("file", e.File)).Wrap(err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.With(slog.String("file", e.File)).Wrap(err)
	}
	defer w.Close()

	// Watching the directory survives editors that replace the file.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return ErrWatch.With(slog.String("file", e.File)).Wrap(err)
	}

	stdio := IOFrom(ctx)
	color := settingsFrom(ctx).Color

	once := func() {
		b, err := os.ReadFile(path)
		if err == nil {
			err = e.evaluate(ctx, e.File, string(b))
		}

		if err != nil && !errors.Is(err, context.Canceled) {
			_ = Report(stdio.Err, err, color)
		}
	}

	log.DebugContext(ctx, "watching", slog.String("file", path))

	once()

	timer := time.NewTimer(watchDelay)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) == path && (ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				log.TraceContext(ctx, "watch event",
					slog.String("file", ev.Name),
					slog.String("op", ev.Op.String()))
				timer.Reset(watchDelay)
			}

		case <-timer.C:
			once()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			log.WarnContext(ctx, "watch error", slog.Any("error", err))
		}
	}
}
