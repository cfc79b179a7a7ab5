package attrs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind distinguishes files from directories.
type Kind uint8

const (
	// KindFile is a regular file.
	KindFile Kind = iota
	// KindDirectory is a directory.
	KindDirectory
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Entry is one filesystem object discovered during enumeration.
// Directory paths end with a path separator.
type Entry struct {
	// Path is the entry path as walked.
	Path string
	// Kind tells files and directories apart.
	Kind Kind
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

// Record holds the attributes computed for one entry.
// A nil Size or empty Hash means the value is missing.
type Record struct {
	// Path is the entry path, directories ending with a separator.
	Path string `json:"path" yaml:"path"`
	// Size is the byte size, aggregated from children for directories.
	Size *uint64 `json:"size,omitempty" yaml:"size,omitempty"`
	// Hash is the hex-encoded content digest. Always empty for directories.
	Hash string `json:"hash,omitempty" yaml:"hash,omitempty"`
}

// IsDir reports whether the record belongs to a directory.
func (r Record) IsDir() bool {
	return isDirPath(r.Path)
}

const separator = string(filepath.Separator)

// dirPath marks a cleaned directory path with a trailing separator.
func dirPath(path string) string {
	if strings.HasSuffix(path, separator) {
		return path
	}

	return path + separator
}

// isDirPath reports whether path carries the directory marker.
func isDirPath(path string) bool {
	return strings.HasSuffix(path, separator)
}

// parentKey returns the accumulator key of the directory containing path.
func parentKey(path string) string {
	return filepath.Dir(filepath.Clean(path))
}

// statDir checks that root exists and is a directory.
func statDir(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: accessing path %q: %w", ErrInvalidRoot, root, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: path %q is not a directory", ErrInvalidRoot, root)
	}

	return nil
}
