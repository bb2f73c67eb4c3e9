package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/glass/cli/cmd"
	"github.com/ardnew/glass/lang"
	"github.com/ardnew/glass/pkg"
)

// CLI is the top-level command-line interface for glass.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Color    bool `default:"true"        help:"Style diagnostics and logs written to a terminal" negatable:""`
	MaxDepth int  `default:"${maxDepth}" help:"Maximum expression nesting depth"`

	Run     cmd.Eval    `cmd:"" default:"withargs" help:"Evaluate a program and print its value"`
	Tokens  cmd.Tokens  `cmd:""                    help:"Print the token stream of a program"`
	AST     cmd.AST     `cmd:""                    help:"Print the syntax tree of a program"   name:"ast"`
	Init    cmd.Init    `cmd:""                    help:"Write the configuration file"`
	Version cmd.Version `cmd:""                    help:"Print the version"`
}

// Run executes the glass CLI with the given context and arguments.
// The exit function is called by kong when it must terminate early, such as
// after printing help.
//
// Streams are taken from [cmd.IOFrom]. A [lang.Diagnostic] returned by a
// command is rendered to the error stream here; the returned error then
// matches [cmd.ErrReported] so callers need not print it again.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	stdio := cmd.IOFrom(ctx)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configPath(baseConfig + ".yaml"),
		cmd.CacheIdentifier:  cacheDir(),
		"maxDepth":           strconv.Itoa(lang.DefaultMaxDepth),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before kong runs so that parse errors are logged the
	// way the user asked, wherever the flags appear.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdio.Out, stdio.Err),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(loadYAML, configPath(baseConfig+".yaml"), configPath(baseConfig+".yml")),
		kong.Configuration(
			loadGlass(ctx, configPath(baseConfig+pkg.Extension)),
			configPath(baseConfig+pkg.Extension),
		),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx, stdio.Err, cli.Color)

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSettings(ctx, cmd.Settings{
		Color:    cli.Color,
		MaxDepth: cli.MaxDepth,
	})

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	err = ktx.Run(ctx)

	var d *lang.Diagnostic
	if errors.As(err, &d) {
		if rerr := cmd.Report(stdio.Err, d, cli.Color); rerr != nil {
			return errors.Join(err, rerr)
		}

		return cmd.ErrReported.Wrap(err)
	}

	return err
}
