package attrs

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// listing groups the children of every directory seen during a walk.
type listing struct {
	mu       sync.Mutex // fastwalk invokes the callback from its worker goroutines
	children map[string]*dirChildren
}

type dirChildren struct {
	files []string
	dirs  []string
}

func newListing(root string) *listing {
	return &listing{
		children: map[string]*dirChildren{root: {}},
	}
}

// slot returns the children of dir, creating them on first use. Callers hold mu.
func (l *listing) slot(dir string) *dirChildren {
	c, ok := l.children[dir]
	if !ok {
		c = &dirChildren{}
		l.children[dir] = c
	}

	return c
}

func (l *listing) addDir(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	parent := l.slot(filepath.Dir(path))
	parent.dirs = append(parent.dirs, path)

	l.slot(path)
}

func (l *listing) addFile(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	parent := l.slot(filepath.Dir(path))
	parent.files = append(parent.files, path)
}

// emit appends dir, its sorted files, and then each sorted sub-directory
// recursively, so every directory precedes all of its descendants.
func (l *listing) emit(dir string, out []Entry) []Entry {
	out = append(out, Entry{Path: dirPath(dir), Kind: KindDirectory})

	c := l.children[dir]
	if c == nil {
		return out
	}

	slices.Sort(c.files)
	slices.Sort(c.dirs)

	for _, file := range c.files {
		out = append(out, Entry{Path: file, Kind: KindFile})
	}

	for _, sub := range c.dirs {
		out = l.emit(sub, out)
	}

	return out
}

// Enumerate walks root and returns its entries in enumeration order:
// each directory, then its files sorted by name, then its sub-directories
// in sorted order, each expanded the same way.
//
// Symbolic links and other non-regular files are skipped. Any listing
// failure aborts the walk with ErrEnumeration.
func Enumerate(ctx context.Context, root string) ([]Entry, error) {
	if root == "" {
		root = "."
	}

	root = filepath.Clean(root)

	if err := statDir(root); err != nil {
		return nil, err
	}

	l := newListing(root)

	conf := &fastwalk.Config{
		Follow:     false, // Don't follow symlinks
		NumWorkers: 1,     // Enumeration stays single-threaded
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: listing %q: %w", ErrEnumeration, path, err)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
		default:
		}

		path = filepath.Clean(path)
		if path == root {
			return nil
		}

		switch {
		case d.IsDir():
			l.addDir(path)
		case d.Type().IsRegular():
			l.addFile(path)
		}

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return l.emit(root, make([]Entry, 0, len(l.children))), nil
}
