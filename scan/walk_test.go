package scan

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWalk(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a\n")
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), "b\n")
	single := filepath.Join(dir, "a.txt")

	files, err := Walk([]string{single, filepath.Join(dir, "sub")})
	require.NoError(t, err)
	sort.Strings(files)
	assert.Equal(t, []string{single, filepath.Join(dir, "sub", "b.txt")}, files)
}

func TestWalkStdin(t *testing.T) {
	files, err := Walk([]string{Stdin})
	require.NoError(t, err)
	assert.Equal(t, []string{Stdin}, files)

	_, err = Walk([]string{Stdin, Stdin})
	assert.Error(t, err)
}

func TestWalkMissingPath(t *testing.T) {
	_, err := Walk([]string{filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}

func TestScanFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.txt")
	writeFile(t, path, "keep this\ndrop that\nkeep too\n")

	set, err := CompileSet([]string{`^keep`})
	require.NoError(t, err)

	var lines []string
	count, err := NewScanner(set).ScanFile(context.Background(), path, func(r Result) error {
		lines = append(lines, string(r.Line))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"keep this", "keep too"}, lines)
}

func TestScanFileMissing(t *testing.T) {
	set, err := CompileSet([]string{`x`})
	require.NoError(t, err)

	_, err = NewScanner(set).ScanFile(context.Background(), filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}
