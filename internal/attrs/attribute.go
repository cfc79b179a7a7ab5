package attrs

import (
	"fmt"
	"slices"
	"strings"
)

// Attribute names a per-entry attribute that can be computed.
type Attribute string

const (
	// AttributeSize is the byte size of a file, or the rolled-up size of a directory.
	AttributeSize Attribute = "size"
	// AttributeHash is the content digest of a file.
	AttributeHash Attribute = "hash"
)

// DefaultAttributes are computed when none are requested explicitly.
//
//nolint:gochecknoglobals // Config constant
var DefaultAttributes = []Attribute{AttributeSize, AttributeHash}

// ParseAttributes validates attribute names, dropping duplicates while
// keeping the order in which they were first given.
func ParseAttributes(names []string) ([]Attribute, error) {
	out := make([]Attribute, 0, len(names))

	for _, name := range names {
		attr := Attribute(strings.ToLower(strings.TrimSpace(name)))

		switch attr {
		case AttributeSize, AttributeHash:
		default:
			return nil, fmt.Errorf("invalid attribute %q: must be one of [%s %s]", name, AttributeSize, AttributeHash)
		}

		if !slices.Contains(out, attr) {
			out = append(out, attr)
		}
	}

	return out, nil
}

// wants reports whether attr is in the requested list.
func wants(requested []Attribute, attr Attribute) bool {
	return slices.Contains(requested, attr)
}
