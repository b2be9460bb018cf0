// ABOUTME: Property-scoped range annotations over text properties
// ABOUTME: Both endpoints share one path; start<=end holds for the lifetime

package document

import (
	"fmt"

	"github.com/podviaznikov/substance/pkg/selection"
)

// Annotation marks a range [Start, End) of one text property, e.g. a
// strong/emphasis span or a link. Both coordinates always share the same
// path; Start <= End in document order. Annotations are created, re-ranged
// and removed only through Document operations, which re-validate the
// invariant and keep the index consistent.
type Annotation struct {
	ID    string
	Type  string
	Start selection.Coordinate
	End   selection.Coordinate
	Props map[string]any
}

// Path returns the property path both endpoints live on.
func (a *Annotation) Path() []string { return a.Start.Path }

// StartOffset returns the start offset of the annotated range.
func (a *Annotation) StartOffset() int { return a.Start.Offset }

// EndOffset returns the end offset of the annotated range.
func (a *Annotation) EndOffset() int { return a.End.Offset }

// IsInsideOf reports whether the annotated range lies inside a property
// selection on the same path. Strict requires the annotation's offsets to be
// strictly inside the selection's offsets; otherwise the test is inclusive.
// Null selections contain nothing. Selection kinds this test does not handle
// yield (false, ErrUnsupported); callers treat that as no containment, not
// as a failure.
func (a *Annotation) IsInsideOf(sel selection.Selection, strict bool) (bool, error) {
	if sel.IsNull() {
		return false, nil
	}
	if !sel.IsProperty() {
		return false, fmt.Errorf("%w: isInsideOf on %s selection", ErrUnsupported, sel.Kind())
	}
	if !selection.PathEquals(a.Path(), sel.Path()) {
		return false, nil
	}
	if strict {
		return sel.StartOffset() < a.Start.Offset && a.End.Offset < sel.EndOffset(), nil
	}
	return sel.StartOffset() <= a.Start.Offset && a.End.Offset <= sel.EndOffset(), nil
}

// cloneProps copies annotation data. Annotation records hold scalar values
// and string slices; anything else is carried over as-is by reference.
func cloneProps(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		if ss, ok := v.([]string); ok {
			cp := make([]string, len(ss))
			copy(cp, ss)
			out[k] = cp
			continue
		}
		out[k] = v
	}
	return out
}

// Clone produces an independent copy of the annotation.
func (a *Annotation) Clone() *Annotation {
	return &Annotation{
		ID:    a.ID,
		Type:  a.Type,
		Start: selection.Coordinate{Path: append([]string(nil), a.Start.Path...), Offset: a.Start.Offset},
		End:   selection.Coordinate{Path: append([]string(nil), a.End.Path...), Offset: a.End.Offset},
		Props: cloneProps(a.Props),
	}
}
