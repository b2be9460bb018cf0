// ABOUTME: Tests for selection variants and their shared predicates
// ABOUTME: Verifies tagging, collapsed semantics and coordinate ordering

package selection

import "testing"

func TestNullSelection(t *testing.T) {
	sel := Null()

	if !sel.IsNull() {
		t.Error("null selection must report IsNull")
	}
	if !sel.IsCollapsed() {
		t.Error("null selection must report IsCollapsed")
	}
	if sel.IsProperty() || sel.IsContainer() || sel.IsNode() {
		t.Error("null selection must not report any other variant")
	}
	if sel.SurfaceID() != "" {
		t.Errorf("null selection carries no surface, got %q", sel.SurfaceID())
	}
}

func TestZeroValueIsNull(t *testing.T) {
	var sel Selection
	if !sel.IsNull() {
		t.Error("zero value must be the null selection")
	}
}

func TestPropertySelectionPredicates(t *testing.T) {
	sel := NewProperty([]string{"p1", "content"}, 2, 7, "body")

	if sel.IsNull() {
		t.Error("property selection reported IsNull")
	}
	if !sel.IsProperty() {
		t.Error("property selection must report IsProperty")
	}
	if sel.IsContainer() || sel.IsNode() {
		t.Error("exactly one variant tag must be active")
	}
	if sel.IsCollapsed() {
		t.Error("selection [2,7) is not collapsed")
	}
	if sel.SurfaceID() != "body" {
		t.Errorf("expected surface 'body', got %q", sel.SurfaceID())
	}

	collapsed := NewProperty([]string{"p1", "content"}, 4, 4, "body")
	if !collapsed.IsCollapsed() {
		t.Error("selection [4,4) must be collapsed")
	}
}

func TestContainerSelectionPredicates(t *testing.T) {
	sel := NewContainer("body", []string{"p1", "content"}, 3, []string{"p2", "content"}, 5, "body")

	if !sel.IsContainer() {
		t.Error("container selection must report IsContainer")
	}
	if sel.IsCollapsed() {
		t.Error("selection across two nodes is not collapsed")
	}

	collapsed := NewContainer("body", []string{"p1", "content"}, 3, []string{"p1", "content"}, 3, "body")
	if !collapsed.IsCollapsed() {
		t.Error("container selection with equal endpoints must be collapsed")
	}
}

func TestNodeSelectionPredicates(t *testing.T) {
	whole := NewNode("body", "fig1", WholeNode, "body")
	if !whole.IsNode() {
		t.Error("node selection must report IsNode")
	}
	if whole.IsCollapsed() {
		t.Error("whole-node selection covers content and is not collapsed")
	}

	before := NewNode("body", "fig1", BeforeNode, "body")
	if !before.IsCollapsed() {
		t.Error("before-node selection is a cursor position and must be collapsed")
	}
	after := NewNode("body", "fig1", AfterNode, "body")
	if !after.IsCollapsed() {
		t.Error("after-node selection is a cursor position and must be collapsed")
	}
}

func TestCoordinateOrdering(t *testing.T) {
	a := Coordinate{Path: []string{"p1", "content"}, Offset: 2}
	b := Coordinate{Path: []string{"p1", "content"}, Offset: 5}
	other := Coordinate{Path: []string{"p2", "content"}, Offset: 9}

	if !a.Before(b) {
		t.Error("offset 2 precedes offset 5 on the same path")
	}
	if b.Before(a) {
		t.Error("offset 5 does not precede offset 2")
	}
	if a.Before(other) || other.Before(a) {
		t.Error("coordinates on different paths are incomparable")
	}
	if !a.Equals(Coordinate{Path: []string{"p1", "content"}, Offset: 2}) {
		t.Error("coordinates with equal path and offset must be equal")
	}
}

func TestRangeValidity(t *testing.T) {
	path := []string{"p1", "content"}
	valid := Range{
		Start: Coordinate{Path: path, Offset: 1},
		End:   Coordinate{Path: path, Offset: 4},
	}
	if !valid.IsValid() {
		t.Error("ordered range on one path must be valid")
	}
	if valid.IsCollapsed() {
		t.Error("range [1,4) is not collapsed")
	}

	collapsed := Range{
		Start: Coordinate{Path: path, Offset: 3},
		End:   Coordinate{Path: path, Offset: 3},
	}
	if !collapsed.IsCollapsed() {
		t.Error("range with equal endpoints must be collapsed")
	}

	reversed := Range{
		Start: Coordinate{Path: path, Offset: 4},
		End:   Coordinate{Path: path, Offset: 1},
	}
	if reversed.IsValid() {
		t.Error("end before start violates the range invariant")
	}

	crossPath := Range{
		Start: Coordinate{Path: []string{"p1", "content"}, Offset: 0},
		End:   Coordinate{Path: []string{"p2", "content"}, Offset: 2},
	}
	if crossPath.IsValid() {
		t.Error("property-scoped range endpoints must share one path")
	}
}

func TestPathEquals(t *testing.T) {
	cases := []struct {
		name string
		a, b []string
		want bool
	}{
		{"equal", []string{"p1", "content"}, []string{"p1", "content"}, true},
		{"different length", []string{"p1"}, []string{"p1", "content"}, false},
		{"different element", []string{"p1", "content"}, []string{"p2", "content"}, false},
		{"both empty", nil, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PathEquals(tc.a, tc.b); got != tc.want {
				t.Errorf("PathEquals(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}
