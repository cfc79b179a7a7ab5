package attrs

import (
	"crypto/md5"  //nolint:gosec // Offered for compatibility, not security
	"crypto/sha1" //nolint:gosec // Offered for compatibility, not security
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const (
	// HashThreshold is the largest file size hashed by reading the whole file at once.
	HashThreshold = 64 * 1024
	// ChunkSize is the read size used for files above HashThreshold.
	ChunkSize = 64 * 1024
)

// Algorithm selects the digest used for the hash attribute.
type Algorithm string

const (
	// MD5 is the MD5 digest.
	MD5 Algorithm = "md5"
	// SHA1 is the SHA-1 digest.
	SHA1 Algorithm = "sha1"
	// SHA256 is the SHA-256 digest.
	SHA256 Algorithm = "sha256"
	// SHA512 is the SHA-512 digest.
	SHA512 Algorithm = "sha512"
	// BLAKE2b256 is the 256-bit BLAKE2b digest.
	BLAKE2b256 Algorithm = "blake2b-256"
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = SHA256

//nolint:gochecknoglobals // Closed set of digest constructors
var algorithms = map[Algorithm]func() hash.Hash{
	MD5:    md5.New,
	SHA1:   sha1.New,
	SHA256: sha256.New,
	SHA512: sha512.New,
	BLAKE2b256: func() hash.Hash {
		h, _ := blake2b.New256(nil) // Only fails for oversized keys

		return h
	},
}

// Algorithms returns the supported algorithm names in sorted order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, 0, len(algorithms))
	for a := range algorithms {
		out = append(out, a)
	}

	slices.Sort(out)

	return out
}

// ParseAlgorithm resolves an algorithm name. An empty name selects DefaultAlgorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	if name == "" {
		return DefaultAlgorithm, nil
	}

	a := Algorithm(strings.ToLower(name))
	if _, ok := algorithms[a]; !ok {
		return "", fmt.Errorf("invalid hash algorithm %q: must be one of %v", name, Algorithms())
	}

	return a, nil
}

// New returns a fresh digest state for the algorithm.
func (a Algorithm) New() hash.Hash {
	newHash, ok := algorithms[a]
	if !ok {
		newHash = algorithms[DefaultAlgorithm]
	}

	return newHash()
}

// HashFile digests the file at path, choosing the strategy by size.
func HashFile(path string, size int64, h hash.Hash) (string, error) {
	if size <= HashThreshold {
		return hashWhole(path, h)
	}

	return hashChunked(path, h)
}

// hashWhole reads the whole file into memory before hashing it.
func hashWhole(path string, h hash.Hash) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	h.Write(content)

	return hex.EncodeToString(h.Sum(nil)), nil
}

// hashChunked feeds the file through h in ChunkSize reads.
func hashChunked(path string, h hash.Hash) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	buf := make([]byte, ChunkSize)

	for {
		n, err := file.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
