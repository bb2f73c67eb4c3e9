package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

type initTestCLI struct {
	Log struct {
		Level string `default:"info"`
		Quiet bool
	} `embed:"" group:"log" prefix:"log-"`

	Color bool   `default:"true" negatable:""`
	Depth int    `default:"5"`
	Name  string `default:""`
}

// initContext parses args against initTestCLI with the configuration file
// variable set to path.
func initContext(t *testing.T, path string, args ...string) context.Context {
	t.Helper()

	var cli initTestCLI

	parser, err := kong.New(&cli,
		kong.ExplicitGroups([]kong.Group{{Key: "log", Title: "Logging"}}),
		kong.Vars{ConfigIdentifier: path},
	)
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), kctx)
}

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string)
		wantErr error
	}{
		{
			name: "create_new_config",
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing: content\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "fail_without_force",
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing: content\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			ctx := initContext(t, confPath, "--log-level=debug")

			err := (&Init{Force: tt.force}).Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrWriteConfig) {
					t.Fatalf("Init.Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Init.Run() unexpected error = %v", err)
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(content, &got); err != nil {
				t.Fatalf("generated config is not valid YAML: %v\n%s", err, content)
			}

			if lvl := got["log"].(map[string]any)["level"]; lvl != "debug" {
				t.Errorf("log.level = %v, want debug", lvl)
			}
		})
	}
}

// TestInitBuildConfig tests that buildConfig nests grouped flags and skips
// empty and built-in ones.
func TestInitBuildConfig(t *testing.T) {
	t.Parallel()

	ctx := initContext(t, "", "--no-color", "--depth=7")

	got := (&Init{}).buildConfig(ctx)
	want := map[string]any{
		"log": map[string]any{
			"level": "info",
			"quiet": false,
		},
		"color": false,
		"depth": 7,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("buildConfig() mismatch (-want +got):\n%s", diff)
	}
}

// TestInitWithInvalidPath tests init where the directory cannot be created.
func TestInitWithInvalidPath(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	ctx := initContext(t, filepath.Join(blocker, "config.yaml"))

	err := (&Init{}).Run(ctx)
	if !errors.Is(err, ErrWriteConfig) {
		t.Errorf("Init.Run() error = %v, want %v", err, ErrWriteConfig)
	}
}

// TestInitWithoutContext tests init outside of a parsed command line.
func TestInitWithoutContext(t *testing.T) {
	t.Parallel()

	err := (&Init{}).Run(context.Background())
	if !errors.Is(err, ErrWriteConfig) {
		t.Errorf("Init.Run() error = %v, want %v", err, ErrWriteConfig)
	}
}

// TestInitIndent tests that nested keys use two-space indentation.
func TestInitIndent(t *testing.T) {
	t.Parallel()

	confPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	ctx := initContext(t, confPath)

	if err := (&Init{}).Run(ctx); err != nil {
		t.Fatalf("Init.Run() unexpected error = %v", err)
	}

	content, err := os.ReadFile(confPath)
	if err != nil {
		t.Fatal(err)
	}

	want := "color: true\ndepth: 5\nlog:\n  level: info\n  quiet: false\n"
	if diff := cmp.Diff(want, string(content)); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}
