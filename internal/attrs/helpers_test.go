package attrs

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile creates root/rel (slash separated) holding size bytes.
func writeFile(t *testing.T, root, rel string, size int) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0o644))

	return path
}

// mkdir creates root/rel (slash separated).
func mkdir(t *testing.T, root, rel string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(rel)), 0o755))
}

// dir returns the directory form of a slash separated path.
func dir(rel string) string {
	return dirPath(filepath.FromSlash(rel))
}

// file returns the native form of a slash separated path.
func file(rel string) string {
	return filepath.FromSlash(rel)
}

func sizeOf(n uint64) *uint64 {
	return &n
}

// paths extracts entry paths.
func paths(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}

	return out
}
