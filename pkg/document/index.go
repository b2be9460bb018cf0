// ABOUTME: Range-queryable annotation index keyed by property path
// ABOUTME: Pure query surface; the owning document performs all mutation

package document

import (
	"sort"
	"strings"
)

// AnnotationIndex answers which annotations overlap a given property path or
// offset window within it. It has no side effects; the owning Document keeps
// it consistent across annotation lifecycle and text mutation.
type AnnotationIndex struct {
	byPath map[string][]*Annotation
	byNode map[string][]*Annotation
}

func newAnnotationIndex() *AnnotationIndex {
	return &AnnotationIndex{
		byPath: make(map[string][]*Annotation),
		byNode: make(map[string][]*Annotation),
	}
}

// pathKey encodes a property path for map lookup. NUL never occurs in node
// ids or property names.
func pathKey(path []string) string {
	return strings.Join(path, "\x00")
}

// Get returns all annotations on a property path, ordered by start offset.
// A single-element path [nodeID] returns every annotation whose path begins
// with that node id, i.e. node-level collection across all its properties.
func (idx *AnnotationIndex) Get(path []string) []*Annotation {
	if len(path) == 1 {
		return sortedCopy(idx.byNode[path[0]])
	}
	return sortedCopy(idx.byPath[pathKey(path)])
}

// GetRange returns the annotations on path overlapping the half-open window
// [startOffset, endOffset). An annotation abutting the window boundary does
// not overlap, except that a collapsed window matches every annotation
// covering that single offset.
func (idx *AnnotationIndex) GetRange(path []string, startOffset, endOffset int) []*Annotation {
	var out []*Annotation
	for _, a := range idx.byPath[pathKey(path)] {
		if startOffset == endOffset {
			if a.Start.Offset <= startOffset && a.End.Offset >= startOffset {
				out = append(out, a)
			}
			continue
		}
		if a.Start.Offset < endOffset && a.End.Offset > startOffset {
			out = append(out, a)
		}
	}
	return sortedCopy(out)
}

// All returns every indexed annotation, ordered by path then start offset.
func (idx *AnnotationIndex) All() []*Annotation {
	var out []*Annotation
	for _, annos := range idx.byPath {
		out = append(out, annos...)
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := pathKey(out[i].Path()), pathKey(out[j].Path())
		if pi != pj {
			return pi < pj
		}
		if out[i].Start.Offset != out[j].Start.Offset {
			return out[i].Start.Offset < out[j].Start.Offset
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (idx *AnnotationIndex) add(a *Annotation) {
	key := pathKey(a.Path())
	idx.byPath[key] = append(idx.byPath[key], a)
	nodeID := a.Path()[0]
	idx.byNode[nodeID] = append(idx.byNode[nodeID], a)
}

func (idx *AnnotationIndex) remove(a *Annotation) {
	key := pathKey(a.Path())
	idx.byPath[key] = removeAnno(idx.byPath[key], a.ID)
	if len(idx.byPath[key]) == 0 {
		delete(idx.byPath, key)
	}
	nodeID := a.Path()[0]
	idx.byNode[nodeID] = removeAnno(idx.byNode[nodeID], a.ID)
	if len(idx.byNode[nodeID]) == 0 {
		delete(idx.byNode, nodeID)
	}
}

func removeAnno(annos []*Annotation, id string) []*Annotation {
	out := annos[:0]
	for _, a := range annos {
		if a.ID != id {
			out = append(out, a)
		}
	}
	return out
}

func sortedCopy(annos []*Annotation) []*Annotation {
	if len(annos) == 0 {
		return nil
	}
	out := make([]*Annotation, len(annos))
	copy(out, annos)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start.Offset != out[j].Start.Offset {
			return out[i].Start.Offset < out[j].Start.Offset
		}
		return out[i].ID < out[j].ID
	})
	return out
}
