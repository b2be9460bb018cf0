// ABOUTME: Tokenized surface-path utilities for nested editing regions
// ABOUTME: Containment is decided segment-wise, never by raw string prefix

// Package surface resolves the display state of nested isolated editing
// regions against the active selection. Regions are identified by
// slash-delimited paths of surface ids, e.g. "body/c1/c1".
package surface

import "strings"

// Delimiter separates segments of a surface path.
const Delimiter = "/"

// Tokens splits a surface path into its segments.
func Tokens(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, Delimiter)
}

// tokensEqual compares two token sequences segment by segment.
func tokensEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// isStrictPrefix reports whether prefix is a proper ancestor of path in the
// surface hierarchy, by token count. "body/sn" is not an ancestor of
// "body/sn2" even though it is a string prefix of it.
func isStrictPrefix(prefix, path []string) bool {
	if len(prefix) >= len(path) {
		return false
	}
	for i := range prefix {
		if prefix[i] != path[i] {
			return false
		}
	}
	return true
}

// Equal reports whether two surface paths identify the same surface.
func Equal(a, b string) bool {
	return tokensEqual(Tokens(a), Tokens(b))
}

// IsAncestor reports whether ancestor is a proper ancestor of path.
func IsAncestor(ancestor, path string) bool {
	return isStrictPrefix(Tokens(ancestor), Tokens(path))
}
