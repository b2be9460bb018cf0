// ABOUTME: Fragment decomposition of selections into per-node pieces
// ABOUTME: Emits whole-node and partial-text fragments in document order

package selection

import (
	"errors"
	"fmt"
)

// ErrNotInContainer is returned when a container selection endpoint does not
// resolve to a child of the selection's container.
var ErrNotInContainer = errors.New("selection: node not in container")

// FragmentKind discriminates fragment variants.
type FragmentKind int

const (
	// NodeFragment covers one whole node; Path is [nodeID].
	NodeFragment FragmentKind = iota
	// TextFragment covers [StartOffset, EndOffset) of one text property.
	TextFragment
)

// Fragment is one maximal contiguous piece of a selection. Fragments are
// ordered by document order, mutually exclusive, and cover exactly the
// selected span.
type Fragment struct {
	Kind        FragmentKind
	Path        []string
	StartOffset int
	EndOffset   int
}

// ContainerView is the minimal document contract fragment decomposition
// needs: child ordering of a container and text property lengths.
type ContainerView interface {
	// NodeIDs returns the child node ids of a container in document order.
	NodeIDs(containerID string) []string
	// TextLength returns the character length of the text property at path.
	TextLength(path []string) int
}

// Fragments decomposes the selection into ordered fragments. A node that
// contributes nothing to the selection produces no fragment. Null and
// collapsed selections decompose to nothing.
func (s Selection) Fragments(view ContainerView) ([]Fragment, error) {
	if s.IsCollapsed() {
		return nil, nil
	}
	switch s.kind {
	case KindProperty:
		return []Fragment{{
			Kind:        TextFragment,
			Path:        s.path,
			StartOffset: s.startOffset,
			EndOffset:   s.endOffset,
		}}, nil
	case KindNode:
		return []Fragment{{Kind: NodeFragment, Path: []string{s.nodeID}}}, nil
	case KindContainer:
		return s.containerFragments(view)
	default:
		return nil, nil
	}
}

func (s Selection) containerFragments(view ContainerView) ([]Fragment, error) {
	startNode := s.startPath[0]
	endNode := s.endPath[0]

	if startNode == endNode {
		// Degenerate case: the selection spans exactly one property.
		if len(s.startPath) > 1 {
			return []Fragment{{
				Kind:        TextFragment,
				Path:        s.startPath,
				StartOffset: s.startOffset,
				EndOffset:   s.endOffset,
			}}, nil
		}
		return []Fragment{{Kind: NodeFragment, Path: []string{startNode}}}, nil
	}

	ids := view.NodeIDs(s.containerID)
	startIdx, endIdx := -1, -1
	for i, id := range ids {
		if id == startNode {
			startIdx = i
		}
		if id == endNode {
			endIdx = i
		}
	}
	if startIdx < 0 || endIdx < 0 || endIdx < startIdx {
		return nil, fmt.Errorf("%w: %q..%q in %q", ErrNotInContainer, startNode, endNode, s.containerID)
	}

	var frags []Fragment

	// Partial first node; skipped entirely when the start offset sits at the
	// end of its property and nothing is covered.
	if len(s.startPath) > 1 {
		length := view.TextLength(s.startPath)
		if s.startOffset < length {
			frags = append(frags, Fragment{
				Kind:        TextFragment,
				Path:        s.startPath,
				StartOffset: s.startOffset,
				EndOffset:   length,
			})
		}
	} else {
		frags = append(frags, Fragment{Kind: NodeFragment, Path: []string{startNode}})
	}

	for i := startIdx + 1; i < endIdx; i++ {
		frags = append(frags, Fragment{Kind: NodeFragment, Path: []string{ids[i]}})
	}

	if len(s.endPath) > 1 {
		if s.endOffset > 0 {
			frags = append(frags, Fragment{
				Kind:        TextFragment,
				Path:        s.endPath,
				StartOffset: 0,
				EndOffset:   s.endOffset,
			})
		}
	} else {
		frags = append(frags, Fragment{Kind: NodeFragment, Path: []string{endNode}})
	}

	return frags, nil
}

// CoveredNodeIDs returns the ids of container children the selection spans,
// in document order. Empty for selections that are not container or node
// selections.
func (s Selection) CoveredNodeIDs(view ContainerView) []string {
	switch s.kind {
	case KindNode:
		return []string{s.nodeID}
	case KindContainer:
		ids := view.NodeIDs(s.containerID)
		startIdx, endIdx := -1, -1
		for i, id := range ids {
			if id == s.startPath[0] {
				startIdx = i
			}
			if id == s.endPath[0] {
				endIdx = i
			}
		}
		if startIdx < 0 || endIdx < 0 || endIdx < startIdx {
			return nil
		}
		covered := make([]string, 0, endIdx-startIdx+1)
		for i := startIdx; i <= endIdx; i++ {
			covered = append(covered, ids[i])
		}
		return covered
	default:
		return nil
	}
}
