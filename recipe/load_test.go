package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyManifestKeepsDefaults(t *testing.T) {
	r, o, err := parse([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), r)
	assert.Equal(t, DefaultOptions(), o)
}

func TestParseOverridesOptions(t *testing.T) {
	r, o, err := parse([]byte(`
options:
  tests: false
  examples: true
`))
	require.NoError(t, err)
	assert.Equal(t, Default().Name, r.Name)
	assert.False(t, o.Tests)
	assert.True(t, o.Examples)
	assert.False(t, o.Verbose)
}

func TestParseOverridesMetadataAndRequires(t *testing.T) {
	r, _, err := parse([]byte(`
name: h5pp
version: 1.9.0
license: MIT
requires:
  - eigen/3.4.0
  - hdf5/1.12.1
`))
	require.NoError(t, err)
	assert.Equal(t, "h5pp/1.9.0", r.Ref())
	require.Len(t, r.Requires, 2)
	assert.Equal(t, Dependency{Name: "eigen", Version: "3.4.0"}, r.Requires[0])
	assert.Equal(t, Dependency{Name: "hdf5", Version: "1.12.1"}, r.Requires[1])
}

func TestParseRejectsUnpinnedRequire(t *testing.T) {
	_, _, err := parse([]byte("requires:\n  - eigen/~3.3\n"))
	assert.Error(t, err)
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, _, err := parse([]byte("options: [not, a, map"))
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultManifest)
	require.NoError(t, os.WriteFile(path, []byte("options:\n  verbose: true\n"), 0o644))

	_, o, err := Load(path)
	require.NoError(t, err)
	assert.True(t, o.Verbose)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
