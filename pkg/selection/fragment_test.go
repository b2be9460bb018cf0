// ABOUTME: Tests for fragment decomposition of selections
// ABOUTME: Verifies document order, skipped empty fragments and degenerate cases

package selection

import (
	"errors"
	"testing"
)

// fakeView is a minimal ContainerView over fixed children and text lengths.
type fakeView struct {
	children map[string][]string
	lengths  map[string]int
}

func (v *fakeView) NodeIDs(containerID string) []string {
	return v.children[containerID]
}

func (v *fakeView) TextLength(path []string) int {
	if len(path) < 2 {
		return 0
	}
	return v.lengths[path[0]+"."+path[1]]
}

func testView() *fakeView {
	return &fakeView{
		children: map[string][]string{
			"body": {"p1", "fig1", "p2"},
		},
		lengths: map[string]int{
			"p1.content": 19,
			"p2.content": 23,
		},
	}
}

func TestContainerFragmentsSpanningNodes(t *testing.T) {
	sel := NewContainer("body", []string{"p1", "content"}, 4, []string{"p2", "content"}, 5, "body")

	frags, err := sel.Fragments(testView())
	if err != nil {
		t.Fatalf("Fragments failed: %v", err)
	}
	if len(frags) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(frags))
	}

	first := frags[0]
	if first.Kind != TextFragment || first.StartOffset != 4 || first.EndOffset != 19 {
		t.Errorf("first fragment should cover [4,19) of p1.content, got %+v", first)
	}
	if !PathEquals(first.Path, []string{"p1", "content"}) {
		t.Errorf("first fragment path wrong: %v", first.Path)
	}

	middle := frags[1]
	if middle.Kind != NodeFragment || !PathEquals(middle.Path, []string{"fig1"}) {
		t.Errorf("middle fragment should be the whole fig1 node, got %+v", middle)
	}

	last := frags[2]
	if last.Kind != TextFragment || last.StartOffset != 0 || last.EndOffset != 5 {
		t.Errorf("last fragment should cover [0,5) of p2.content, got %+v", last)
	}
}

func TestContainerFragmentsSkipEmptyEndpoints(t *testing.T) {
	// Start offset at the end of p1 and end offset at the start of p2: both
	// endpoints contribute nothing and only fig1 remains.
	sel := NewContainer("body", []string{"p1", "content"}, 19, []string{"p2", "content"}, 0, "body")

	frags, err := sel.Fragments(testView())
	if err != nil {
		t.Fatalf("Fragments failed: %v", err)
	}
	if len(frags) != 1 {
		t.Fatalf("expected 1 fragment, got %d: %+v", len(frags), frags)
	}
	if frags[0].Kind != NodeFragment || !PathEquals(frags[0].Path, []string{"fig1"}) {
		t.Errorf("expected whole-node fragment for fig1, got %+v", frags[0])
	}
}

func TestContainerFragmentsDegenerateSingleProperty(t *testing.T) {
	sel := NewContainer("body", []string{"p1", "content"}, 2, []string{"p1", "content"}, 8, "body")

	frags, err := sel.Fragments(testView())
	if err != nil {
		t.Fatalf("Fragments failed: %v", err)
	}
	if len(frags) != 1 {
		t.Fatalf("expected single fragment, got %d", len(frags))
	}
	f := frags[0]
	if f.Kind != TextFragment || f.StartOffset != 2 || f.EndOffset != 8 {
		t.Errorf("degenerate selection must yield one text fragment [2,8), got %+v", f)
	}
}

func TestContainerFragmentsWholeNodeEndpoints(t *testing.T) {
	sel := NewContainer("body", []string{"fig1"}, 0, []string{"p2", "content"}, 3, "body")

	frags, err := sel.Fragments(testView())
	if err != nil {
		t.Fatalf("Fragments failed: %v", err)
	}
	if len(frags) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(frags))
	}
	if frags[0].Kind != NodeFragment || !PathEquals(frags[0].Path, []string{"fig1"}) {
		t.Errorf("expected whole-node first fragment, got %+v", frags[0])
	}
	if frags[1].Kind != TextFragment || frags[1].EndOffset != 3 {
		t.Errorf("expected partial last fragment [0,3), got %+v", frags[1])
	}
}

func TestContainerFragmentsUnknownNode(t *testing.T) {
	sel := NewContainer("body", []string{"ghost", "content"}, 0, []string{"p2", "content"}, 3, "body")

	if _, err := sel.Fragments(testView()); !errors.Is(err, ErrNotInContainer) {
		t.Errorf("expected ErrNotInContainer, got %v", err)
	}
}

func TestCollapsedSelectionHasNoFragments(t *testing.T) {
	sel := NewProperty([]string{"p1", "content"}, 4, 4, "body")

	frags, err := sel.Fragments(testView())
	if err != nil {
		t.Fatalf("Fragments failed: %v", err)
	}
	if len(frags) != 0 {
		t.Errorf("collapsed selection must decompose to nothing, got %+v", frags)
	}
}

func TestPropertySelectionSingleFragment(t *testing.T) {
	sel := NewProperty([]string{"p1", "content"}, 4, 9, "body")

	frags, err := sel.Fragments(testView())
	if err != nil {
		t.Fatalf("Fragments failed: %v", err)
	}
	if len(frags) != 1 || frags[0].Kind != TextFragment {
		t.Fatalf("expected one text fragment, got %+v", frags)
	}
	if frags[0].StartOffset != 4 || frags[0].EndOffset != 9 {
		t.Errorf("fragment offsets wrong: %+v", frags[0])
	}
}

func TestCoveredNodeIDs(t *testing.T) {
	sel := NewContainer("body", []string{"p1", "content"}, 4, []string{"p2", "content"}, 5, "body")

	covered := sel.CoveredNodeIDs(testView())
	want := []string{"p1", "fig1", "p2"}
	if len(covered) != len(want) {
		t.Fatalf("expected %v, got %v", want, covered)
	}
	for i := range want {
		if covered[i] != want[i] {
			t.Errorf("covered[%d] = %q, want %q", i, covered[i], want[i])
		}
	}

	node := NewNode("body", "fig1", WholeNode, "body")
	covered = node.CoveredNodeIDs(testView())
	if len(covered) != 1 || covered[0] != "fig1" {
		t.Errorf("node selection covers its target only, got %v", covered)
	}

	if got := Null().CoveredNodeIDs(testView()); got != nil {
		t.Errorf("null selection covers nothing, got %v", got)
	}
}
