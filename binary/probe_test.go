package binary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type finder map[string]string

func (f finder) Which(name string) (string, bool) {
	path, ok := f[name]
	return path, ok
}

func TestProbe(t *testing.T) {
	dir := t.TempDir()
	cached := filepath.Join(dir, "tool")
	require.NoError(t, os.WriteFile(cached, []byte("bin"), 0o755))

	t.Run("command path wins over cache", func(t *testing.T) {
		path, ok := Probe(finder{"tool": "/usr/local/bin/tool"}, "tool", cached)
		assert.True(t, ok)
		assert.Equal(t, "/usr/local/bin/tool", path)
	})

	t.Run("cached regular file", func(t *testing.T) {
		path, ok := Probe(finder{}, "tool", cached)
		assert.True(t, ok)
		assert.Equal(t, cached, path)
	})

	t.Run("nil finder", func(t *testing.T) {
		path, ok := Probe(nil, "tool", cached)
		assert.True(t, ok)
		assert.Equal(t, cached, path)
	})

	t.Run("cached path gone", func(t *testing.T) {
		_, ok := Probe(finder{}, "tool", filepath.Join(dir, "missing"))
		assert.False(t, ok)
	})

	t.Run("cached path is a directory", func(t *testing.T) {
		_, ok := Probe(finder{}, "tool", dir)
		assert.False(t, ok)
	})

	t.Run("nothing cached", func(t *testing.T) {
		_, ok := Probe(finder{}, "tool", "")
		assert.False(t, ok)
	})
}
