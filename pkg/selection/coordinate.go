// ABOUTME: Coordinate and Range value types for positions inside text properties
// ABOUTME: Coordinates order by offset on a shared path; ranges are start<=end

package selection

// Coordinate identifies a character position inside a named text property.
// Path is the sequence of node ids ending in a property name, e.g.
// ["p1", "content"]. Offset is a non-negative character offset.
type Coordinate struct {
	Path   []string
	Offset int
}

// PathEquals compares two property paths element-wise.
// Raw string joins are never used for path comparison.
func PathEquals(a, b []string) bool {
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

// Equals reports whether two coordinates address the same position.
func (c Coordinate) Equals(other Coordinate) bool {
	return c.Offset == other.Offset && PathEquals(c.Path, other.Path)
}

// Before reports whether c precedes other on the same path. Coordinates on
// different paths are incomparable; Before returns false for those.
func (c Coordinate) Before(other Coordinate) bool {
	return PathEquals(c.Path, other.Path) && c.Offset < other.Offset
}

// Range is a pair of coordinates with Start <= End in document order.
type Range struct {
	Start Coordinate
	End   Coordinate
}

// IsCollapsed reports whether the range is empty.
func (r Range) IsCollapsed() bool {
	return r.Start.Equals(r.End)
}

// IsValid checks the start<=end invariant for property-scoped ranges, which
// always have both endpoints on the same path.
func (r Range) IsValid() bool {
	if !PathEquals(r.Start.Path, r.End.Path) {
		return false
	}
	return r.Start.Offset >= 0 && r.Start.Offset <= r.End.Offset
}
