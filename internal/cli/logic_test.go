package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/fileattrs/internal/attrs"
	"github.com/idelchi/fileattrs/internal/config"
)

func writeTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()

	files := map[string]string{
		"a/x.txt":        "abcd",
		"a/b/y.txt":      "0123456789",
		"c/d/e/deep.txt": strings.Repeat("z", attrs.HashThreshold+5),
		"top.txt":        "t",
	}

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	return root
}

func baseConfig() *config.Config {
	return &config.Config{
		Attributes: []string{"size", "hash"},
		Workers:    1,
		Algorithm:  "sha256",
		PathStyle:  "relative",
		Output:     config.Stdout,
		Format:     "csv",
	}
}

func TestLogic_ExistingOutputFailsBeforeWalking(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(out, []byte("old"), 0o644))

	cfg := baseConfig()
	cfg.Output = out

	// The root does not exist either; the output check must come first.
	var stdout, stderr bytes.Buffer

	err := logic(context.Background(), cfg, filepath.Join(t.TempDir(), "missing"), &stdout, &stderr)
	require.ErrorIs(t, err, attrs.ErrOutputTargetExists)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestLogic_InvalidRootWritesNothing(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	cfg := baseConfig()
	cfg.Output = filepath.Join(dir, "report.csv")

	var stdout, stderr bytes.Buffer

	err := logic(context.Background(), cfg, file, &stdout, &stderr)
	require.ErrorIs(t, err, attrs.ErrInvalidRoot)

	_, err = os.Stat(cfg.Output)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLogic_WritesReportFile(t *testing.T) {
	root := writeTree(t)

	cfg := baseConfig()
	cfg.Attributes = []string{"size"}
	cfg.Output = filepath.Join(t.TempDir(), "report.csv")

	var stdout, stderr bytes.Buffer

	require.NoError(t, logic(context.Background(), cfg, root, &stdout, &stderr))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	sep := string(filepath.Separator)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	assert.Equal(t, []string{
		"path,size",
		"." + sep + "," + "65556",
		"top.txt,1",
		"a" + sep + ",14",
		filepath.Join("a", "x.txt") + ",4",
		filepath.Join("a", "b") + sep + ",10",
		filepath.Join("a", "b", "y.txt") + ",10",
		"c" + sep + ",65541",
		filepath.Join("c", "d") + sep + ",65541",
		filepath.Join("c", "d", "e") + sep + ",65541",
		filepath.Join("c", "d", "e", "deep.txt") + ",65541",
		"empty" + sep + ",0",
	}, lines)
}

func TestLogic_WorkerCountProducesIdenticalOutput(t *testing.T) {
	root := writeTree(t)

	run := func(format string, workers int) string {
		cfg := baseConfig()
		cfg.Format = format
		cfg.Workers = workers

		var stdout, stderr bytes.Buffer

		require.NoError(t, logic(context.Background(), cfg, root, &stdout, &stderr))

		return stdout.String()
	}

	for _, format := range []string{"csv", "json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			sequential := run(format, 1)
			require.NotEmpty(t, sequential)

			if format == "csv" {
				assert.True(t, strings.HasPrefix(sequential, "path,size,sha256\n"))
			}

			for _, workers := range []int{0, 3, 32} {
				assert.Equal(t, sequential, run(format, workers), "workers=%d", workers)
			}
		})
	}
}

func TestLogic_Table(t *testing.T) {
	root := writeTree(t)

	cfg := baseConfig()
	cfg.Format = "table"

	var stdout, stderr bytes.Buffer

	require.NoError(t, logic(context.Background(), cfg, root, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "PATH")
	assert.Contains(t, stdout.String(), "Total files:")
	assert.Contains(t, stdout.String(), "64 KiB")
}

func TestLogic_InvalidFormat(t *testing.T) {
	cfg := baseConfig()
	cfg.Format = "xml"

	var stdout, stderr bytes.Buffer

	require.Error(t, logic(context.Background(), cfg, t.TempDir(), &stdout, &stderr))
}

// lockFile makes root/rel unreadable for the duration of the test.
func lockFile(t *testing.T, root, rel string) {
	t.Helper()

	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.Chmod(path, 0o000))
	t.Cleanup(func() { _ = os.Chmod(path, 0o644) })
}

func TestLogic_TolerantWritesEmptyFields(t *testing.T) {
	root := writeTree(t)
	lockFile(t, root, "a/x.txt")

	cfg := baseConfig()
	cfg.Tolerant = true
	cfg.Output = filepath.Join(t.TempDir(), "report.csv")

	var stdout, stderr bytes.Buffer

	require.NoError(t, logic(context.Background(), cfg, root, &stdout, &stderr))

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	sep := string(filepath.Separator)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	assert.Contains(t, lines, filepath.Join("a", "x.txt")+",,")
	assert.Contains(t, lines, "a"+sep+",,")
	assert.Contains(t, lines, "."+sep+",,")
	assert.Contains(t, lines, filepath.Join("a", "b")+sep+",10,")
	assert.Contains(t, stderr.String(), "could not be read")
}

func TestLogic_StrictWritesNoReport(t *testing.T) {
	root := writeTree(t)
	lockFile(t, root, "a/x.txt")

	cfg := baseConfig()
	cfg.Output = filepath.Join(t.TempDir(), "report.csv")

	var stdout, stderr bytes.Buffer

	err := logic(context.Background(), cfg, root, &stdout, &stderr)

	var cerr *attrs.AttributeComputeError
	require.ErrorAs(t, err, &cerr)

	_, err = os.Stat(cfg.Output)
	require.ErrorIs(t, err, os.ErrNotExist)
}
