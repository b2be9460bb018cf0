// ABOUTME: Copy/extract engine producing self-consistent snippet documents
// ABOUTME: Clips annotations, copies owning references transitively, trims partial text

// Package clipboard extracts a coherent copy of selected content: a minimal
// standalone snippet document containing exactly the selected nodes and
// text, closed under ownership references, with annotations clipped and
// re-targeted into the snippet.
package clipboard

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/podviaznikov/substance/internal/metrics"
	"github.com/podviaznikov/substance/pkg/document"
	"github.com/podviaznikov/substance/pkg/selection"
)

// Config carries explicit engine configuration.
type Config struct {
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

// Engine copies selected content out of a document. It reads a stable
// snapshot of the source for the whole run; the caller guarantees no
// concurrent mutation.
type Engine struct {
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// NewEngine creates a copy engine.
func NewEngine(cfg Config) *Engine {
	return &Engine{log: cfg.Logger, metrics: cfg.Metrics}
}

// Copy produces a snippet document for the selection. Null and collapsed
// selections yield (nil, nil); so do selection kinds the engine does not
// support, which log a warn diagnostic instead of producing partial output.
func (e *Engine) Copy(doc *document.Document, sel selection.Selection) (*document.Document, error) {
	start := time.Now()
	snippet, err := e.copy(doc, sel)

	if e.metrics != nil {
		status := "ok"
		switch {
		case err != nil:
			status = "error"
		case snippet == nil:
			status = "empty"
		}
		e.metrics.ObserveCopy(sel.Kind().String(), status, time.Since(start))
		if snippet != nil {
			// Snippet node count minus its container.
			e.metrics.CopiedNodes.Add(float64(snippet.NodeCount() - 1))
		}
	}
	return snippet, err
}

func (e *Engine) copy(doc *document.Document, sel selection.Selection) (*document.Document, error) {
	if sel.IsNull() || sel.IsCollapsed() {
		e.log.Debug().Msg("nothing to copy for null or collapsed selection")
		return nil, nil
	}
	switch sel.Kind() {
	case selection.KindProperty:
		return e.copyProperty(doc, sel)
	case selection.KindNode:
		return e.copyNode(doc, sel)
	case selection.KindContainer:
		return e.copyContainer(doc, sel)
	default:
		e.log.Warn().Str("kind", sel.Kind().String()).Msg("copy not supported for selection kind")
		return nil, nil
	}
}

// copyProperty copies the substring [start, end) of one text property into a
// fresh node, carrying over every annotation overlapping the window with
// offsets clamped into [0, end-start] and re-targeted to the new node.
func (e *Engine) copyProperty(doc *document.Document, sel selection.Selection) (*document.Document, error) {
	text, err := doc.GetText(sel.Path())
	if err != nil {
		return nil, err
	}
	start, end := sel.StartOffset(), sel.EndOffset()
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start >= end {
		return nil, nil
	}

	srcNode, ok := doc.GetNode(sel.Path()[0])
	if !ok {
		return nil, fmt.Errorf("%w: %q", document.ErrNodeNotFound, sel.Path()[0])
	}
	prop := sel.Path()[1]

	snippet := doc.CreateSnippet()
	node := &document.Node{
		ID:    uuid.NewString(),
		Type:  srcNode.Type,
		Props: map[string]any{prop: text[start:end]},
	}
	if _, err := snippet.CreateNode(node); err != nil {
		return nil, err
	}
	if err := snippet.AppendChild(document.SnippetID, node.ID); err != nil {
		return nil, err
	}

	newPath := []string{node.ID, prop}
	if e.metrics != nil {
		e.metrics.AnnotationQueriesTotal.Inc()
	}
	for _, a := range doc.Annotations().GetRange(sel.Path(), start, end) {
		if len(a.Path()) != 2 {
			e.log.Warn().Str("annotation", a.ID).Msg("skipping annotation kind not supported by copy")
			continue
		}
		c := a.Clone()
		c.Start.Path = newPath
		c.End.Path = newPath
		c.Start.Offset = clampLow(a.StartOffset()-start, 0)
		c.End.Offset = clampHigh(a.EndOffset()-start, end-start)
		if _, err := snippet.AddAnnotation(c); err != nil {
			return nil, err
		}
	}
	return snippet, nil
}

func clampLow(v, low int) int {
	if v < low {
		return low
	}
	return v
}

func clampHigh(v, high int) int {
	if v > high {
		return high
	}
	return v
}

// copyNode copies the selected node transitively and registers it as the
// sole visible child of the snippet container.
func (e *Engine) copyNode(doc *document.Document, sel selection.Selection) (*document.Document, error) {
	snippet := doc.CreateSnippet()
	visited := make(map[string]copyState)
	if err := e.copyNodeTree(doc, snippet, sel.NodeID(), visited); err != nil {
		return nil, err
	}
	if err := snippet.AppendChild(document.SnippetID, sel.NodeID()); err != nil {
		return nil, err
	}
	return snippet, nil
}

// copyContainer decomposes the selection into fragments, copies each
// fragment's node once in document order, then trims the partial first and
// last text fragments, propagating the trims to annotations.
func (e *Engine) copyContainer(doc *document.Document, sel selection.Selection) (*document.Document, error) {
	frags, err := sel.Fragments(doc)
	if err != nil {
		return nil, err
	}
	if len(frags) == 0 {
		return nil, nil
	}

	snippet := doc.CreateSnippet()
	visited := make(map[string]copyState)
	for _, f := range frags {
		nodeID := f.Path[0]
		if visited[nodeID] == copyDone {
			continue
		}
		if err := e.copyNodeTree(doc, snippet, nodeID, visited); err != nil {
			return nil, err
		}
		if err := snippet.AppendChild(document.SnippetID, nodeID); err != nil {
			return nil, err
		}
	}

	// Trim the suffix of the last partial fragment before the prefix of the
	// first, so the first trim cannot shift the last fragment's offsets.
	last := frags[len(frags)-1]
	if last.Kind == selection.TextFragment {
		if length := snippet.TextLength(last.Path); last.EndOffset < length {
			if err := snippet.DeleteTextRange(last.Path, last.EndOffset, length); err != nil {
				return nil, err
			}
		}
	}
	first := frags[0]
	if first.Kind == selection.TextFragment && first.StartOffset > 0 {
		if err := snippet.DeleteTextRange(first.Path, 0, first.StartOffset); err != nil {
			return nil, err
		}
	}
	return snippet, nil
}

type copyState int

const (
	copyInProgress copyState = iota + 1
	copyDone
)

// copyNodeTree copies a node and, depth-first before it, every node its
// owning and file references point at, plus the annotations on its own text
// properties. Idempotent per pass: a node already copied is skipped. Source
// data holds ownership trees, not graphs; a cycle is a data-integrity fault.
func (e *Engine) copyNodeTree(doc, snippet *document.Document, nodeID string, visited map[string]copyState) error {
	switch visited[nodeID] {
	case copyDone:
		return nil
	case copyInProgress:
		return fmt.Errorf("%w: ownership cycle at node %q", document.ErrIntegrity, nodeID)
	}
	visited[nodeID] = copyInProgress

	n, ok := doc.GetNode(nodeID)
	if !ok {
		return fmt.Errorf("%w: %q", document.ErrNodeNotFound, nodeID)
	}
	nt, ok := doc.Schema().Type(n.Type)
	if !ok {
		return fmt.Errorf("%w: unknown node type %q", document.ErrIntegrity, n.Type)
	}

	for _, p := range nt.Properties {
		switch {
		case p.Type == document.TypeFile:
			if ref := n.Ref(p.Name); ref != "" {
				if err := e.copyNodeTree(doc, snippet, ref, visited); err != nil {
					return err
				}
			}
		case p.Type == document.TypeID && p.Owned:
			if ref := n.Ref(p.Name); ref != "" {
				if err := e.copyNodeTree(doc, snippet, ref, visited); err != nil {
					return err
				}
			}
		case p.Type == document.TypeIDArray && p.Owned:
			for _, ref := range n.IDs(p.Name) {
				if err := e.copyNodeTree(doc, snippet, ref, visited); err != nil {
					return err
				}
			}
		}
	}

	if _, err := snippet.CreateNode(n.Clone(nt)); err != nil {
		return err
	}

	for _, p := range nt.Properties {
		if !p.IsText() {
			continue
		}
		for _, a := range doc.Annotations().Get([]string{nodeID, p.Name}) {
			if _, err := snippet.AddAnnotation(a.Clone()); err != nil {
				return err
			}
		}
	}

	visited[nodeID] = copyDone
	return nil
}
