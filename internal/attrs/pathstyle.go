package attrs

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PathStyle controls how record paths are written. It never affects traversal order.
type PathStyle string

const (
	// PathAsWalked keeps paths as produced by the walk, rooted at the given root.
	PathAsWalked PathStyle = "as-walked"
	// PathAbsolute writes absolute paths.
	PathAbsolute PathStyle = "absolute"
	// PathRelative writes paths relative to the root, the root itself as "./".
	PathRelative PathStyle = "relative"
)

// ParsePathStyle resolves a path style name. An empty name selects PathAsWalked.
func ParsePathStyle(name string) (PathStyle, error) {
	switch style := PathStyle(strings.ToLower(name)); style {
	case "":
		return PathAsWalked, nil
	case PathAsWalked, PathAbsolute, PathRelative:
		return style, nil
	default:
		return "", fmt.Errorf("invalid path style %q: must be one of [%s %s %s]",
			name, PathAsWalked, PathAbsolute, PathRelative)
	}
}

// restyle rewrites record paths in place, keeping the directory marker.
func restyle(records []Record, root string, style PathStyle) error {
	if style == PathAsWalked || style == "" {
		return nil
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving absolute path: %w", err)
	}

	for i := range records {
		rec := &records[i]
		isDir := rec.IsDir()

		rel, err := filepath.Rel(root, filepath.Clean(rec.Path))
		if err != nil {
			return fmt.Errorf("relativizing %q: %w", rec.Path, err)
		}

		var path string

		switch style {
		case PathAbsolute:
			path = filepath.Join(absRoot, rel)
		case PathRelative:
			path = rel
		}

		if isDir {
			path = dirPath(path)
		}

		rec.Path = path
	}

	return nil
}
