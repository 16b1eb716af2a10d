package binary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstalled(t *testing.T) {
	root := t.TempDir()

	install := func(version string) {
		dir := filepath.Join(root, "tool-"+version)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "tool"), nil, 0o755))
	}

	install("v0.9.0")
	install("v0.10.0")
	install("v1.0.0-rc.1")
	install("0.2.0")

	// not versions
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tool-v2.0.0"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "other-v3.0.0"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "tool-v4.0.0"), nil, 0o644))
	install("v5.0.0.partial")

	versions, err := Installed(root, "tool")
	require.NoError(t, err)
	assert.Equal(t, []string{"v1.0.0-rc.1", "v0.10.0", "v0.9.0", "0.2.0"}, versions)
}

func TestInstalled_MissingRoot(t *testing.T) {
	versions, err := Installed(filepath.Join(t.TempDir(), "missing"), "tool")
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestCompareVersions(t *testing.T) {
	assert.Negative(t, compareversions("v0.9.0", "v0.10.0"))
	assert.Positive(t, compareversions("1.0.0", "v0.10.0"))
	assert.Zero(t, compareversions("v1.0.0", "1.0.0"))
	assert.Negative(t, compareversions("nightly-a", "nightly-b"))
}
