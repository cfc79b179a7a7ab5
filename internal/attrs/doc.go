// Package attrs collects per-entry file attributes for a directory tree.
//
// It enumerates the tree in a deterministic depth-first order, computes
// sizes and content hashes for files using a bounded worker pool, and
// rolls directory sizes up from their children in a single reverse pass
// over the enumeration order.
package attrs
