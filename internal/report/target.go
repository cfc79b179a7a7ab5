package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/idelchi/fileattrs/internal/attrs"
)

// Target is a report destination that is never overwritten.
type Target struct {
	fs   billy.Filesystem
	name string
}

// NewTarget returns a Target on fs at name.
func NewTarget(fs billy.Filesystem, name string) *Target {
	return &Target{fs: fs, name: name}
}

// FileTarget returns a Target for a path on the local filesystem.
func FileTarget(path string) (*Target, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving output path %q: %w", path, err)
	}

	return NewTarget(osfs.New(filepath.Dir(abs)), filepath.Base(abs)), nil
}

// Name returns the target's file name.
func (t *Target) Name() string {
	return t.name
}

// Check fails with attrs.ErrOutputTargetExists if the target is already present.
func (t *Target) Check() error {
	_, err := t.fs.Lstat(t.name)

	switch {
	case err == nil:
		return fmt.Errorf("%w: %q", attrs.ErrOutputTargetExists, t.name)
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("checking output %q: %w", t.name, err)
	}
}

// WriteTo creates the target exclusively and writes report into it.
// A failed write removes the partial file.
func (t *Target) WriteTo(report *attrs.Report, format Format) (err error) {
	file, err := t.fs.OpenFile(t.name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %q", attrs.ErrOutputTargetExists, t.name)
		}

		return fmt.Errorf("creating output %q: %w", t.name, err)
	}

	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output %q: %w", t.name, cerr)
		}

		if err != nil {
			_ = t.fs.Remove(t.name)
		}
	}()

	return Write(file, report, format)
}
