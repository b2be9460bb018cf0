// ABOUTME: Region state resolver mapping a selection onto nested regions
// ABOUTME: Pure function of (selection surface path, region path set)

package surface

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/podviaznikov/substance/internal/metrics"
	"github.com/podviaznikov/substance/pkg/selection"
)

// State is the display mode of one isolated region relative to the active
// selection.
type State int

const (
	// NotSelected is the default; every region always resolves to a
	// well-defined state, falling back to this one.
	NotSelected State = iota
	// Selected marks the region a whole-node selection targets directly.
	Selected
	// CoSelected marks regions a container selection spans without the
	// selection originating inside them.
	CoSelected
	// Focused marks the region owning the selection: its path equals the
	// selection's surface path, or the surface is a leaf directly inside it.
	Focused
	// CoFocused marks proper ancestors of the focused region.
	CoFocused
)

func (s State) String() string {
	switch s {
	case NotSelected:
		return "not-selected"
	case Selected:
		return "selected"
	case CoSelected:
		return "co-selected"
	case Focused:
		return "focused"
	case CoFocused:
		return "co-focused"
	default:
		return "unknown"
	}
}

// Config carries explicit resolver configuration. View supplies container
// child ordering for co-selection and may be nil when container selections
// never occur.
type Config struct {
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
	View    selection.ContainerView
}

// Resolver computes region states. It holds no mutable cross-call state and
// is safe to re-run on every selection change.
type Resolver struct {
	log     zerolog.Logger
	metrics *metrics.Metrics
	view    selection.ContainerView
}

// NewResolver creates a region state resolver.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{log: cfg.Logger, metrics: cfg.Metrics, view: cfg.View}
}

// Resolve computes the state of every region for the given selection. All
// containment tests tokenize paths on the delimiter and compare segment
// sequences; each region is recomputed from its full path so co-focus never
// propagates across resolutions.
func (r *Resolver) Resolve(sel selection.Selection, regionPaths []string) map[string]State {
	start := time.Now()
	states := make(map[string]State, len(regionPaths))
	for _, p := range regionPaths {
		states[p] = NotSelected
	}

	if sel.IsNull() || sel.SurfaceID() == "" {
		r.observe(len(regionPaths), start)
		return states
	}

	surf := Tokens(sel.SurfaceID())

	// When the owning surface is itself a region, only path equality focuses
	// a region; the leaf-surface rule below is for property surfaces that
	// have no region entry of their own.
	surfIsRegion := false
	for _, p := range regionPaths {
		if tokensEqual(Tokens(p), surf) {
			surfIsRegion = true
			break
		}
	}

	var covered map[string]bool
	if sel.IsContainer() && r.view != nil {
		ids := sel.CoveredNodeIDs(r.view)
		covered = make(map[string]bool, len(ids))
		for _, id := range ids {
			covered[id] = true
		}
	}

	for _, p := range regionPaths {
		rt := Tokens(p)
		switch {
		case tokensEqual(rt, surf):
			states[p] = Focused
		case !surfIsRegion && len(surf) == len(rt)+1 && isStrictPrefix(rt, surf):
			// The selection lives on a leaf surface directly inside this
			// region, e.g. region body/sn2 owning surface body/sn2/sn2.title.
			states[p] = Focused
		case isStrictPrefix(rt, surf):
			states[p] = CoFocused
		case sel.IsNode() && sel.NodeMode() == selection.WholeNode &&
			len(rt) == len(surf)+1 && isStrictPrefix(surf, rt) && rt[len(rt)-1] == sel.NodeID():
			states[p] = Selected
		case covered != nil &&
			len(rt) == len(surf)+1 && isStrictPrefix(surf, rt) && covered[rt[len(rt)-1]]:
			// Spanned by the selection without owning it. Never propagates
			// below the spanned region itself.
			states[p] = CoSelected
		}
	}

	r.log.Debug().
		Str("surface", sel.SurfaceID()).
		Str("kind", sel.Kind().String()).
		Int("regions", len(regionPaths)).
		Msg("resolved region states")

	r.observe(len(regionPaths), start)
	return states
}

func (r *Resolver) observe(regionCount int, start time.Time) {
	if r.metrics != nil {
		r.metrics.ObserveResolve(regionCount, time.Since(start))
	}
}
