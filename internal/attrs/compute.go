package attrs

import (
	"hash"
	"os"
)

// Computer computes the requested attributes of single entries.
// It holds no per-call state and is safe for concurrent use on distinct files.
type Computer struct {
	// Attributes lists what to compute.
	Attributes []Attribute
	// Algorithm selects the digest when NewHash is nil.
	Algorithm Algorithm
	// NewHash overrides the digest constructor.
	NewHash func() hash.Hash
}

// NewComputer creates a Computer for the requested attributes and algorithm.
func NewComputer(attributes []Attribute, algorithm Algorithm) *Computer {
	return &Computer{
		Attributes: attributes,
		Algorithm:  algorithm,
	}
}

// Compute returns the record for entry. Directories get a path-only record;
// their size is filled in later by Aggregate.
func (c *Computer) Compute(entry Entry) (Record, error) {
	record := Record{Path: entry.Path}

	if entry.IsDir() {
		return record, nil
	}

	wantSize := wants(c.Attributes, AttributeSize)
	wantHash := wants(c.Attributes, AttributeHash)

	if !wantSize && !wantHash {
		return record, nil
	}

	// One stat serves both the size attribute and the hashing strategy.
	info, err := os.Stat(entry.Path)
	if err != nil {
		return Record{Path: entry.Path}, &AttributeComputeError{Path: entry.Path, Err: err}
	}

	if wantSize {
		size := uint64(info.Size()) //nolint:gosec // File sizes are never negative
		record.Size = &size
	}

	if wantHash {
		digest, err := HashFile(entry.Path, info.Size(), c.hasher())
		if err != nil {
			return Record{Path: entry.Path}, &AttributeComputeError{Path: entry.Path, Err: err}
		}

		record.Hash = digest
	}

	return record, nil
}

// hasher returns a fresh digest state.
func (c *Computer) hasher() hash.Hash {
	if c.NewHash != nil {
		return c.NewHash()
	}

	return c.Algorithm.New()
}
