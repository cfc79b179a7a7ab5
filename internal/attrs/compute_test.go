package attrs

import (
	"crypto/sha256"
	"hash"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingHasher counts how many digest states were requested.
type countingHasher struct {
	calls atomic.Int64
}

func (c *countingHasher) New() hash.Hash {
	c.calls.Add(1)

	return sha256.New()
}

func TestCompute_SizeOnlyNeverHashes(t *testing.T) {
	root := t.TempDir()
	small := writeFile(t, root, "small.txt", 10)
	large := writeFile(t, root, "large.bin", HashThreshold+1)

	counter := &countingHasher{}
	computer := &Computer{Attributes: []Attribute{AttributeSize}, NewHash: counter.New}

	for _, path := range []string{small, large} {
		rec, err := computer.Compute(Entry{Path: path, Kind: KindFile})
		require.NoError(t, err)
		require.NotNil(t, rec.Size)
		assert.Empty(t, rec.Hash)
	}

	assert.Zero(t, counter.calls.Load())
}

func TestCompute_SizeAndHash(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "hello.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	counter := &countingHasher{}
	computer := &Computer{Attributes: []Attribute{AttributeSize, AttributeHash}, NewHash: counter.New}

	rec, err := computer.Compute(Entry{Path: path, Kind: KindFile})
	require.NoError(t, err)

	assert.Equal(t, Record{
		Path: path,
		Size: sizeOf(11),
		Hash: "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
	}, rec)
	assert.EqualValues(t, 1, counter.calls.Load())
}

func TestCompute_HashOnly(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "f.bin", 5)

	rec, err := NewComputer([]Attribute{AttributeHash}, SHA1).Compute(Entry{Path: path, Kind: KindFile})
	require.NoError(t, err)
	assert.Nil(t, rec.Size)
	assert.Len(t, rec.Hash, 40)
}

func TestCompute_DirectoryIsPathOnly(t *testing.T) {
	root := t.TempDir()

	counter := &countingHasher{}
	computer := &Computer{Attributes: DefaultAttributes, NewHash: counter.New}

	rec, err := computer.Compute(Entry{Path: dirPath(root), Kind: KindDirectory})
	require.NoError(t, err)
	assert.Equal(t, Record{Path: dirPath(root)}, rec)
	assert.Zero(t, counter.calls.Load())
}

func TestCompute_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.txt")

	rec, err := NewComputer(DefaultAttributes, SHA256).Compute(Entry{Path: path, Kind: KindFile})
	require.Error(t, err)

	var cerr *AttributeComputeError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, path, cerr.Path)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, Record{Path: path}, rec)
}
