package commands

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestMain drops any SECURELOCAL_* settings inherited from the developer's
// shell so every invocation starts from the built-in defaults.
func TestMain(m *testing.M) {
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, "SECURELOCAL_") {
			_ = os.Unsetenv(name)
		}
	}
	os.Exit(m.Run())
}

// run executes one CLI invocation against home and returns stdout.
func run(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--home", home}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func seed(t *testing.T, home string, extra ...string) {
	t.Helper()
	args := append([]string{"set", "color=red", "count=3", "flag=false", `pref={"show":true}`}, extra...)
	_, err := run(t, home, args...)
	require.NoError(t, err)
}

func TestGet_AllJSON(t *testing.T) {
	home := t.TempDir()
	seed(t, home)

	out, err := run(t, home, "get")
	require.NoError(t, err)
	golden(t).Assert(t, "get_all", []byte(out))
}

func TestGet_FilteredJSON(t *testing.T) {
	home := t.TempDir()
	seed(t, home)

	out, err := run(t, home, "get", "color", "count", "flag", "missing")
	require.NoError(t, err)
	golden(t).Assert(t, "get_filtered", []byte(out))
}

func TestGet_AllText(t *testing.T) {
	home := t.TempDir()
	seed(t, home)

	out, err := run(t, home, "--format", "text", "get")
	require.NoError(t, err)
	golden(t).Assert(t, "get_all_text", []byte(out))
}

func TestGet_YAML(t *testing.T) {
	home := t.TempDir()
	seed(t, home)

	out, err := run(t, home, "--format", "yaml", "get")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]any{
		"color": "red",
		"count": 3,
		"flag":  false,
		"pref":  map[string]any{"show": true},
	}, got)
}

func TestGet_EmptySection(t *testing.T) {
	out, err := run(t, t.TempDir(), "get")
	require.NoError(t, err)
	assert.Equal(t, "{}\n", out)
}

func TestSet_JSONFlag(t *testing.T) {
	home := t.TempDir()
	_, err := run(t, home, "set", "--json", `{"a":"x","b":[1,2]}`, "a=y")
	require.NoError(t, err)

	out, err := run(t, home, "--format", "text", "get")
	require.NoError(t, err)
	assert.Equal(t, "a=y\nb=[1,2]\n", out)
}

func TestSet_RejectsBadInput(t *testing.T) {
	home := t.TempDir()

	_, err := run(t, home, "set")
	assert.ErrorContains(t, err, "nothing to set")

	_, err = run(t, home, "set", "novalue")
	assert.ErrorContains(t, err, `invalid item "novalue"`)

	_, err = run(t, home, "set", "--json", "[1]")
	assert.ErrorContains(t, err, "--json")
}

func TestRemove(t *testing.T) {
	home := t.TempDir()
	seed(t, home)

	_, err := run(t, home, "remove", "pref", "flag", "missing")
	require.NoError(t, err)

	out, err := run(t, home, "--format", "text", "get")
	require.NoError(t, err)
	assert.Equal(t, "color=red\ncount=3\n", out)

	_, err = run(t, home, "remove")
	assert.Error(t, err)
}

func TestSections(t *testing.T) {
	home := t.TempDir()
	_, err := run(t, home, "-s", "public", "set", "key=public-key")
	require.NoError(t, err)
	_, err = run(t, home, "--section", "private", "set", "key=private-key")
	require.NoError(t, err)

	out, err := run(t, home, "--format", "text", "sections")
	require.NoError(t, err)
	golden(t).Assert(t, "sections_text", []byte(out))

	out, err = run(t, home, "-s", "private", "--format", "text", "get", "key")
	require.NoError(t, err)
	assert.Equal(t, "key=private-key\n", out)
}

func TestSections_NoneYet(t *testing.T) {
	out, err := run(t, t.TempDir(), "sections")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestClear_RequiresConfirmation(t *testing.T) {
	home := t.TempDir()
	seed(t, home)
	_, err := run(t, home, "-s", "other", "set", "x=1")
	require.NoError(t, err)

	_, err = run(t, home, "clear")
	assert.ErrorContains(t, err, "--yes")

	out, err := run(t, home, "--format", "text", "sections")
	require.NoError(t, err)
	assert.Equal(t, "other\nsecure-local\n", out)

	_, err = run(t, home, "clear", "--yes")
	require.NoError(t, err)

	out, err = run(t, home, "-s", "other", "get")
	require.NoError(t, err)
	assert.Equal(t, "{}\n", out)
}

func TestStrictFlag(t *testing.T) {
	home := t.TempDir()
	seed(t, home)
	t.Setenv("SECURELOCAL_STRICT", "false")

	out, err := run(t, home, "--strict", "get", "color")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"color\": \"red\"\n}\n", out)
}

func TestSQLiteBackend(t *testing.T) {
	home := t.TempDir()
	_, err := run(t, home, "--backend", "sqlite", "set", "color=red")
	require.NoError(t, err)

	out, err := run(t, home, "--backend", "sqlite", "--format", "text", "get")
	require.NoError(t, err)
	assert.Equal(t, "color=red\n", out)

	// The disk backend on the same home is a separate store.
	out, err = run(t, home, "get")
	require.NoError(t, err)
	assert.Equal(t, "{}\n", out)
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, t.TempDir(), "--format", "xml", "get")
	assert.ErrorContains(t, err, `invalid format "xml"`)
}

func TestFlagsOverrideEnv(t *testing.T) {
	home := t.TempDir()
	seed(t, home)

	t.Setenv("SECURELOCAL_BACKEND", "memory")
	t.Setenv("SECURELOCAL_SECTION", "elsewhere")
	out, err := run(t, home, "--backend", "disk", "-s", "secure-local", "--format", "text", "get", "color")
	require.NoError(t, err)
	assert.Equal(t, "color=red\n", out)
}

func TestInvalidBackendFromEnv(t *testing.T) {
	t.Setenv("SECURELOCAL_BACKEND", "tape")
	_, err := run(t, t.TempDir(), "get")
	assert.ErrorContains(t, err, `invalid backend "tape"`)
}
