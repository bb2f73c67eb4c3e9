package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/glass/lang"
	"github.com/ardnew/glass/log"
)

// errConfigType reports a glass configuration program that does not
// evaluate to a dictionary.
var errConfigType = errors.New("configuration must evaluate to a dictionary")

// loadYAML is a [kong.ConfigurationLoader] for YAML configuration files, as
// written by the init command.
//
// Nested mappings name flags by joining keys with "-", so these are the
// same:
//
//	log:
//	  level: debug
//
//	log-level: debug
func loadYAML(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return config{}, nil
		}

		return nil, err
	}

	return flatten(doc), nil
}

// loadGlass returns a [kong.ConfigurationLoader] for configuration written
// as a glass program. The program must evaluate to a dictionary, whose keys
// follow the same rules as [loadYAML]:
//
//	{log: {level: "debug"}, max_depth: 100 * 10}
func loadGlass(ctx context.Context, file string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}

		v, err := lang.Run(ctx, string(b), file, lang.WithLogger(log.Default()))
		if err != nil {
			return nil, err
		}

		dict, ok := v.(lang.Dict)
		if !ok {
			return nil, fmt.Errorf("%w: got %s", errConfigType, v.Type())
		}

		doc, _ := lang.Native(dict).(map[string]any)

		return flatten(doc), nil
	}
}

// config implements [kong.Resolver] over a flat map of flag names.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver]. A flag is found by its name, or by
// its name with "-" replaced by "_".
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	if v, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return v, nil
	}

	return nil, nil
}

// flatten converts a nested document into a config. Numbers become strings
// so kong parses them with each flag's own mapper.
func flatten(doc map[string]any) config {
	c := config{}

	var walk func(prefix string, m map[string]any)

	walk = func(prefix string, m map[string]any) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			key := k
			if prefix != "" {
				key = prefix + "-" + k
			}

			switch v := m[k].(type) {
			case map[string]any:
				walk(key, v)
			case float64:
				c[key] = strconv.FormatFloat(v, 'f', -1, 64)
			case int, int64, uint64:
				c[key] = fmt.Sprint(v)
			default:
				c[key] = v
			}
		}
	}

	walk("", doc)

	return c
}
