package cmd

import (
	"context"
	"encoding"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/glass/log"
	"github.com/ardnew/glass/profile"
)

const defaultConfigIndent = 2

// Init writes a YAML configuration file holding the current value of every
// global flag, so the file reproduces the invocation that created it.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrWriteConfig.Wrap(errors.New("no command-line context"))
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok || confPath == "" {
		return ErrWriteConfig.Wrap(errors.New("configuration path undefined"))
	}

	flags := []slog.Attr{slog.String("file", confPath)}

	if _, err := os.Stat(confPath); err == nil && !i.Force {
		return ErrWriteConfig.With(flags...).Wrap(ErrFileExists)
	}

	b, err := yaml.MarshalWithOptions(i.buildConfig(ctx), yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrWriteConfig.With(flags...).Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(confPath), 0o700); err != nil {
		return ErrWriteConfig.With(flags...).Wrap(err)
	}

	if err := os.WriteFile(confPath, b, 0o600); err != nil {
		return ErrWriteConfig.With(flags...).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file", flags...)

	return nil
}

// buildConfig maps the application's flags to their current values. Flags
// of a group whose names carry the group key as prefix are nested under it,
// which the configuration loader flattens back into the same flag names.
func (i *Init) buildConfig(ctx context.Context) map[string]any {
	ktx := kongContextFrom(ctx)
	conf := make(map[string]any)

	ignore := []string{"help", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val := flagValue(ktx, flag)
		if val == nil {
			continue
		}

		if flag.Group != nil {
			if key, ok := strings.CutPrefix(flag.Name, flag.Group.Key+"-"); ok {
				sub, _ := conf[flag.Group.Key].(map[string]any)
				if sub == nil {
					sub = make(map[string]any)
					conf[flag.Group.Key] = sub
				}

				sub[key] = val

				continue
			}
		}

		conf[flag.Name] = val
	}

	return conf
}

// flagValue returns the value of flag in a form YAML can represent, or nil
// if the flag is unset or empty.
func flagValue(ktx *kong.Context, flag *kong.Flag) any {
	switch v := ktx.FlagValue(flag).(type) {
	case nil:
		return nil

	case encoding.TextMarshaler:
		b, err := v.MarshalText()
		if err != nil || len(b) == 0 {
			return nil
		}

		return string(b)

	case string:
		if v == "" {
			return nil
		}

		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		return v

	default:
		return v
	}
}
