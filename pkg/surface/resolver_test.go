// ABOUTME: Tests for the isolated-region state resolver
// ABOUTME: Covers focus, co-focus, co-selection and the prefix-collision defect

package surface

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/podviaznikov/substance/internal/metrics"
	"github.com/podviaznikov/substance/pkg/selection"
)

// orderView provides container child ordering for co-selection tests.
type orderView struct {
	children map[string][]string
}

func (v *orderView) NodeIDs(containerID string) []string { return v.children[containerID] }
func (v *orderView) TextLength(path []string) int        { return 0 }

func newResolver(view selection.ContainerView) *Resolver {
	return NewResolver(Config{
		Metrics: metrics.New(prometheus.NewRegistry()),
		View:    view,
	})
}

func propertySel(surfaceID string) selection.Selection {
	return selection.NewProperty([]string{"n", "content"}, 0, 1, surfaceID)
}

func TestNullSelectionLeavesEverythingUnselected(t *testing.T) {
	r := newResolver(nil)
	regions := []string{"body/c1", "body/c1/c1/c2", "body/sn", "body/sn2"}

	states := r.Resolve(selection.Null(), regions)
	if len(states) != len(regions) {
		t.Fatalf("every region must resolve to a state, got %d of %d", len(states), len(regions))
	}
	for p, s := range states {
		if s != NotSelected {
			t.Errorf("region %s = %s, want not-selected", p, s)
		}
	}
}

func TestPrefixCollisionRegression(t *testing.T) {
	// A selection owned by body/sn2/sn2.title must never mark body/sn,
	// even though "body/sn" is a string prefix of "body/sn2".
	r := newResolver(nil)
	regions := []string{"body/sn", "body/sn2"}

	states := r.Resolve(propertySel("body/sn2/sn2.title"), regions)
	if states["body/sn"] != NotSelected {
		t.Errorf("body/sn = %s, want not-selected", states["body/sn"])
	}
	if states["body/sn2"] != Focused {
		t.Errorf("body/sn2 = %s, want focused", states["body/sn2"])
	}
}

func TestNestedRegionFocusChain(t *testing.T) {
	r := newResolver(nil)
	regions := []string{"body/c1", "body/c1/c1/c2"}

	states := r.Resolve(propertySel("body/c1/c1/c2/c2"), regions)
	if states["body/c1"] != CoFocused {
		t.Errorf("body/c1 = %s, want co-focused", states["body/c1"])
	}
	if states["body/c1/c1/c2"] != Focused {
		t.Errorf("body/c1/c1/c2 = %s, want focused", states["body/c1/c1/c2"])
	}
}

func TestFocusOnExactRegionSurface(t *testing.T) {
	r := newResolver(nil)
	regions := []string{"body/c1", "body/c1/c2"}

	// The owning surface is itself the inner region: the inner region is
	// focused and its parent co-focused, not focused via the leaf rule.
	states := r.Resolve(propertySel("body/c1/c2"), regions)
	if states["body/c1/c2"] != Focused {
		t.Errorf("body/c1/c2 = %s, want focused", states["body/c1/c2"])
	}
	if states["body/c1"] != CoFocused {
		t.Errorf("body/c1 = %s, want co-focused", states["body/c1"])
	}
}

func TestNodeSelectionSelectsRegion(t *testing.T) {
	r := newResolver(nil)
	regions := []string{"body/c1", "body/c2"}

	sel := selection.NewNode("body", "c1", selection.WholeNode, "body")
	states := r.Resolve(sel, regions)
	if states["body/c1"] != Selected {
		t.Errorf("body/c1 = %s, want selected", states["body/c1"])
	}
	if states["body/c2"] != NotSelected {
		t.Errorf("body/c2 = %s, want not-selected", states["body/c2"])
	}

	// Before/after cursors target the gap, not the node.
	cursor := selection.NewNode("body", "c1", selection.BeforeNode, "body")
	states = r.Resolve(cursor, regions)
	if states["body/c1"] != NotSelected {
		t.Errorf("cursor mode must not select the region, got %s", states["body/c1"])
	}
}

func TestContainerSelectionCoSelectsSpannedRegions(t *testing.T) {
	view := &orderView{children: map[string][]string{
		"body": {"sn1", "p1", "sn2"},
	}}
	r := newResolver(view)
	regions := []string{"body/sn1", "body/sn2", "body/sn1/inner/deep"}

	sel := selection.NewContainer("body",
		[]string{"sn1", "content"}, 0,
		[]string{"sn2", "content"}, 3, "body")
	states := r.Resolve(sel, regions)

	if states["body/sn1"] != CoSelected {
		t.Errorf("body/sn1 = %s, want co-selected", states["body/sn1"])
	}
	if states["body/sn2"] != CoSelected {
		t.Errorf("body/sn2 = %s, want co-selected", states["body/sn2"])
	}
	// Co-selection never propagates into regions nested below a spanned node.
	if states["body/sn1/inner/deep"] != NotSelected {
		t.Errorf("body/sn1/inner/deep = %s, want not-selected", states["body/sn1/inner/deep"])
	}
}

func TestContainerSelectionDoesNotCoSelectUncovered(t *testing.T) {
	view := &orderView{children: map[string][]string{
		"body": {"sn1", "p1", "sn2", "sn3"},
	}}
	r := newResolver(view)
	regions := []string{"body/sn1", "body/sn3"}

	sel := selection.NewContainer("body",
		[]string{"sn1", "content"}, 0,
		[]string{"p1", "content"}, 2, "body")
	states := r.Resolve(sel, regions)

	if states["body/sn1"] != CoSelected {
		t.Errorf("body/sn1 = %s, want co-selected", states["body/sn1"])
	}
	if states["body/sn3"] != NotSelected {
		t.Errorf("region outside the span = %s, want not-selected", states["body/sn3"])
	}
}

func TestSelectionWithoutSurfaceResolvesNothing(t *testing.T) {
	r := newResolver(nil)
	regions := []string{"body/c1"}

	sel := selection.NewProperty([]string{"n", "content"}, 0, 1, "")
	states := r.Resolve(sel, regions)
	if states["body/c1"] != NotSelected {
		t.Errorf("selection without owning surface must resolve to not-selected, got %s", states["body/c1"])
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		NotSelected: "not-selected",
		Selected:    "selected",
		CoSelected:  "co-selected",
		Focused:     "focused",
		CoFocused:   "co-focused",
	}
	for s, want := range cases {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
}

func BenchmarkResolve(b *testing.B) {
	r := NewResolver(Config{})
	regions := make([]string, 0, 100)
	for i := 0; i < 100; i++ {
		regions = append(regions, "body/c1/c1/c2")
	}
	sel := propertySel("body/c1/c1/c2/c2")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Resolve(sel, regions)
	}
}
