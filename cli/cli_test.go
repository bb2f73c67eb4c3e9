package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/glass/cli/cmd"
	"github.com/ardnew/glass/pkg"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", pkg.Name+"-cli-test-*")
	if err != nil {
		panic(err)
	}

	// Keep configuration and cache directories out of the user's home.
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	os.Setenv("HOME", dir)

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}

// run invokes Run with in as standard input and returns what it wrote.
func run(t *testing.T, in string, args ...string) (string, string, error) {
	t.Helper()

	var out, errs bytes.Buffer

	ctx := cmd.WithIO(context.Background(), cmd.IO{
		In:  strings.NewReader(in),
		Out: &out,
		Err: &errs,
	})

	err := Run(ctx, func(int) {}, args...)

	return out.String(), errs.String(), err
}

// useConfig writes a configuration file for the duration of the test.
func useConfig(t *testing.T, name, content string) {
	t.Helper()

	path := configPath(name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), defaultDirMode))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Cleanup(func() { os.Remove(path) })
}

func TestRun_Eval(t *testing.T) {
	tests := []struct {
		name string
		in   string
		args []string
		want string
	}{
		{"stdin", "2 ** 10", []string{"run"}, "1024\n"},
		{"expr", "", []string{"run", "-e", `"ab" + "cd"`}, "\"abcd\"\n"},
		{"json", "", []string{"run", "-o", "json", "--indent=0", "-e", "{k: [1, true]}"}, `{"k":[1,true]}` + "\n"},
		{"default command", "[1] + [2, 3]", nil, "[1, 2, 3]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.in, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRun_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main"+pkg.Extension)
	require.NoError(t, os.WriteFile(path, []byte("10 % 4 == 2\n"), 0o600))

	out, _, err := run(t, "", path)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestRun_Diagnostic(t *testing.T) {
	out, errs, err := run(t, "", "run", "-e", "1 + true", "--no-color")
	require.ErrorIs(t, err, cmd.ErrReported)
	assert.Empty(t, out)

	want := strings.Join([]string{
		"Cannot use operation '+' on type 'number' and 'boolean'",
		"1 + true",
		"^^^^^^^^",
		"[<expr>(Ln:1, Col:0..8)]",
	}, "\n") + "\n"

	assert.Equal(t, want, errs)
}

func TestRun_Tokens(t *testing.T) {
	out, _, err := run(t, "", "tokens", "-e", "x = 1")
	require.NoError(t, err)
	assert.Equal(t, "identifier x [0,1)\n=          = [2,3)\nnumber     1 [4,5)\n", out)
}

func TestRun_AST(t *testing.T) {
	out, _, err := run(t, "", "ast", "--expr=-1")
	require.NoError(t, err)
	assert.Equal(t, "Unary - [0,2)\n  Number 1 [1,2)\n", out)
}

func TestRun_Version(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, pkg.Version+"\n", out)
}

func TestRun_MaxDepth(t *testing.T) {
	_, errs, err := run(t, "", "--max-depth=2", "run", "--expr=--1")
	require.ErrorIs(t, err, cmd.ErrReported)
	assert.Contains(t, errs, "maximum depth of 2")
}

func TestRun_GlassConfig(t *testing.T) {
	useConfig(t, baseConfig+pkg.Extension, `{max_depth: 1 + 1}`)

	_, errs, err := run(t, "", "run", "--expr=--1")
	require.ErrorIs(t, err, cmd.ErrReported)
	assert.Contains(t, errs, "maximum depth of 2")
}

func TestRun_YAMLConfig(t *testing.T) {
	useConfig(t, baseConfig+".yaml", "max-depth: 2\n")

	_, errs, err := run(t, "", "run", "--expr=--1")
	require.ErrorIs(t, err, cmd.ErrReported)
	assert.Contains(t, errs, "maximum depth of 2")

	// Flags override the configuration file.
	out, _, err := run(t, "", "--max-depth=5", "run", "--expr=--1")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestRun_Init(t *testing.T) {
	path := configPath(baseConfig + ".yaml")
	t.Cleanup(func() { os.Remove(path) })

	_, _, err := run(t, "", "--log-level=warn", "--max-depth=64", "init")
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(b, &got))
	assert.EqualValues(t, 64, got["max-depth"])
	assert.Equal(t, true, got["color"])
	assert.Equal(t, "warn", got["log"].(map[string]any)["level"])

	// The written file configures later runs.
	_, errs, err := run(t, "", "run", "--expr="+strings.Repeat("-", 64)+"1")
	require.ErrorIs(t, err, cmd.ErrReported)
	assert.Contains(t, errs, "maximum depth of 64")

	_, _, err = run(t, "", "init")
	require.ErrorIs(t, err, cmd.ErrFileExists)

	_, _, err = run(t, "", "init", "--force")
	require.NoError(t, err)
}
