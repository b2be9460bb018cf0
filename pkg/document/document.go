// ABOUTME: In-memory document arena with schema validation and text mutation
// ABOUTME: Keeps annotation ranges consistent across edits; emits change events

package document

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/podviaznikov/substance/pkg/selection"
)

// SnippetID is the id of the container node every snippet document holds.
const SnippetID = "snippet"

// Config carries explicit document configuration. The zero value uses a
// no-op logger.
type Config struct {
	Logger zerolog.Logger
}

// Document is an arena of typed nodes addressed by stable ids, plus the
// annotations over their text properties. All operations are synchronous
// and run to completion on the calling goroutine; callers provide the
// read-only boundary when extracting while others mutate.
type Document struct {
	schema    *Schema
	nodes     map[string]*Node
	annos     map[string]*Annotation
	index     *AnnotationIndex
	log       zerolog.Logger
	listeners []func(Event)
}

// New creates an empty document over a schema.
func New(schema *Schema, cfg Config) *Document {
	return &Document{
		schema: schema,
		nodes:  make(map[string]*Node),
		annos:  make(map[string]*Annotation),
		index:  newAnnotationIndex(),
		log:    cfg.Logger,
	}
}

// Schema returns the schema the document validates against.
func (d *Document) Schema() *Schema { return d.schema }

// Annotations returns the document's annotation index.
func (d *Document) Annotations() *AnnotationIndex { return d.index }

// OnChange registers a callback invoked synchronously for every mutation.
func (d *Document) OnChange(fn func(Event)) {
	d.listeners = append(d.listeners, fn)
}

func (d *Document) emit(e Event) {
	for _, fn := range d.listeners {
		fn(e)
	}
}

// CreateNode validates a node against the schema and stores it. An empty id
// is assigned a fresh uuid. The node is not attached to any container yet.
func (d *Document) CreateNode(n *Node) (*Node, error) {
	if _, ok := d.schema.Type(n.Type); !ok {
		return nil, fmt.Errorf("%w: unknown node type %q", ErrInvalidArgument, n.Type)
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if _, exists := d.nodes[n.ID]; exists {
		return nil, fmt.Errorf("%w: duplicate node id %q", ErrInvalidArgument, n.ID)
	}
	if n.Props == nil {
		n.Props = make(map[string]any)
	}
	d.nodes[n.ID] = n
	d.emit(Event{Type: NodeCreated, NodeID: n.ID})
	return n, nil
}

// GetNode returns the node record for id.
func (d *Document) GetNode(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// NodeCount returns the number of nodes in the arena.
func (d *Document) NodeCount() int { return len(d.nodes) }

// AnnotationCount returns the number of annotations.
func (d *Document) AnnotationCount() int { return len(d.annos) }

// Nodes returns all node records ordered by id.
func (d *Document) Nodes() []*Node {
	out := make([]*Node, 0, len(d.nodes))
	for _, n := range d.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get resolves a path: [nodeID] yields the node, [nodeID, property] the
// property value.
func (d *Document) Get(path []string) (any, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidArgument)
	}
	n, ok := d.nodes[path[0]]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, path[0])
	}
	if len(path) == 1 {
		return n, nil
	}
	nt, _ := d.schema.Type(n.Type)
	if _, ok := nt.Property(path[1]); !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNoSuchProperty, n.Type, path[1])
	}
	return n.Props[path[1]], nil
}

// GetText returns the text property value at path.
func (d *Document) GetText(path []string) (string, error) {
	if len(path) != 2 {
		return "", fmt.Errorf("%w: text path must be [node, property]", ErrInvalidArgument)
	}
	v, err := d.Get(path)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

// SetText replaces the text property at path. Annotation offsets are
// clamped into the new length.
func (d *Document) SetText(path []string, text string) error {
	if err := d.setProp(path, text); err != nil {
		return err
	}
	for _, a := range d.index.Get(path) {
		if a.Start.Offset > len(text) {
			a.Start.Offset = len(text)
		}
		if a.End.Offset > len(text) {
			a.End.Offset = len(text)
		}
	}
	d.emit(Event{Type: TextChanged, NodeID: path[0], Path: path})
	return nil
}

func (d *Document) setProp(path []string, v any) error {
	if len(path) != 2 {
		return fmt.Errorf("%w: property path must be [node, property]", ErrInvalidArgument)
	}
	n, ok := d.nodes[path[0]]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, path[0])
	}
	nt, _ := d.schema.Type(n.Type)
	if _, ok := nt.Property(path[1]); !ok {
		return fmt.Errorf("%w: %s.%s", ErrNoSuchProperty, n.Type, path[1])
	}
	n.Props[path[1]] = v
	return nil
}

// TextLength returns the length of the text property at path, or 0 when the
// path does not resolve. Implements selection.ContainerView.
func (d *Document) TextLength(path []string) int {
	s, err := d.GetText(path)
	if err != nil {
		return 0
	}
	return len(s)
}

// NodeIDs returns the child ids of a container in document order.
// Implements selection.ContainerView.
func (d *Document) NodeIDs(containerID string) []string {
	n, ok := d.nodes[containerID]
	if !ok {
		return nil
	}
	nt, _ := d.schema.Type(n.Type)
	cp, ok := nt.ChildrenProperty()
	if !ok {
		return nil
	}
	return n.IDs(cp.Name)
}

func (d *Document) childList(containerID string) (*Node, string, []string, error) {
	n, ok := d.nodes[containerID]
	if !ok {
		return nil, "", nil, fmt.Errorf("%w: %q", ErrNodeNotFound, containerID)
	}
	nt, _ := d.schema.Type(n.Type)
	cp, ok := nt.ChildrenProperty()
	if !ok {
		return nil, "", nil, fmt.Errorf("%w: %q is not a container", ErrInvalidArgument, containerID)
	}
	ids, _ := n.Props[cp.Name].([]string)
	return n, cp.Name, ids, nil
}

// AppendChild attaches a node at the end of a container's child list.
func (d *Document) AppendChild(containerID, nodeID string) error {
	n, prop, ids, err := d.childList(containerID)
	if err != nil {
		return err
	}
	if _, ok := d.nodes[nodeID]; !ok {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, nodeID)
	}
	n.Props[prop] = append(ids, nodeID)
	d.emit(Event{Type: NodeAttached, NodeID: nodeID, ContainerID: containerID})
	return nil
}

// InsertBefore attaches a node before refID in a container's child list.
// A refID that is not an actual child is a contract violation and fails
// with ErrInvalidArgument.
func (d *Document) InsertBefore(containerID, refID, nodeID string) error {
	n, prop, ids, err := d.childList(containerID)
	if err != nil {
		return err
	}
	if _, ok := d.nodes[nodeID]; !ok {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, nodeID)
	}
	pos := -1
	for i, id := range ids {
		if id == refID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return fmt.Errorf("%w: %q is not a child of %q", ErrInvalidArgument, refID, containerID)
	}
	next := make([]string, 0, len(ids)+1)
	next = append(next, ids[:pos]...)
	next = append(next, nodeID)
	next = append(next, ids[pos:]...)
	n.Props[prop] = next
	d.emit(Event{Type: NodeAttached, NodeID: nodeID, ContainerID: containerID})
	return nil
}

// RemoveChild detaches a node from a container's child list.
func (d *Document) RemoveChild(containerID, nodeID string) error {
	n, prop, ids, err := d.childList(containerID)
	if err != nil {
		return err
	}
	pos := -1
	for i, id := range ids {
		if id == nodeID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return fmt.Errorf("%w: %q is not a child of %q", ErrInvalidArgument, nodeID, containerID)
	}
	n.Props[prop] = append(ids[:pos], ids[pos+1:]...)
	d.emit(Event{Type: NodeDetached, NodeID: nodeID, ContainerID: containerID})
	return nil
}

// DeleteNode removes a node and every annotation on its properties. The
// caller detaches it from containers first.
func (d *Document) DeleteNode(id string) error {
	if _, ok := d.nodes[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	for _, a := range d.index.Get([]string{id}) {
		d.removeAnnotation(a)
	}
	delete(d.nodes, id)
	return nil
}

// AddAnnotation validates and stores an annotation. Both endpoints must be
// property coordinates on the same existing path with start <= end.
func (d *Document) AddAnnotation(a *Annotation) (*Annotation, error) {
	r := selection.Range{Start: a.Start, End: a.End}
	if len(a.Start.Path) != 2 || !r.IsValid() {
		return nil, fmt.Errorf("%w: annotation endpoints must be ordered coordinates on one property path", ErrInvalidArgument)
	}
	if _, err := d.GetText(a.Start.Path); err != nil {
		return nil, err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if _, exists := d.annos[a.ID]; exists {
		return nil, fmt.Errorf("%w: duplicate annotation id %q", ErrInvalidArgument, a.ID)
	}
	d.annos[a.ID] = a
	d.index.add(a)
	d.emit(Event{Type: AnnotationAdded, AnnotationID: a.ID, Path: a.Path()})
	return a, nil
}

// GetAnnotation returns the annotation record for id.
func (d *Document) GetAnnotation(id string) (*Annotation, bool) {
	a, ok := d.annos[id]
	return a, ok
}

// RemoveAnnotation deletes an annotation by id.
func (d *Document) RemoveAnnotation(id string) error {
	a, ok := d.annos[id]
	if !ok {
		return fmt.Errorf("%w: annotation %q", ErrNodeNotFound, id)
	}
	d.removeAnnotation(a)
	return nil
}

func (d *Document) removeAnnotation(a *Annotation) {
	d.index.remove(a)
	delete(d.annos, a.ID)
	d.emit(Event{Type: AnnotationRemoved, AnnotationID: a.ID, Path: a.Path()})
}

// UpdateAnnotationRange re-points an annotation at the path and offsets of a
// property selection. Any other selection kind is a contract violation and
// fails with ErrInvalidArgument. Only the components that actually changed
// are written, which keeps the change log minimal for undo and audit.
func (d *Document) UpdateAnnotationRange(id string, sel selection.Selection) error {
	a, ok := d.annos[id]
	if !ok {
		return fmt.Errorf("%w: annotation %q", ErrNodeNotFound, id)
	}
	if !sel.IsProperty() {
		return fmt.Errorf("%w: updateRange requires a property selection, got %s", ErrInvalidArgument, sel.Kind())
	}
	if sel.StartOffset() < 0 || sel.EndOffset() < sel.StartOffset() {
		return fmt.Errorf("%w: selection offsets out of order", ErrInvalidArgument)
	}
	changed := false
	if !selection.PathEquals(a.Path(), sel.Path()) {
		d.index.remove(a)
		path := append([]string(nil), sel.Path()...)
		a.Start.Path = path
		a.End.Path = path
		d.index.add(a)
		changed = true
	}
	if a.Start.Offset != sel.StartOffset() {
		a.Start.Offset = sel.StartOffset()
		changed = true
	}
	if a.End.Offset != sel.EndOffset() {
		a.End.Offset = sel.EndOffset()
		changed = true
	}
	if changed {
		d.emit(Event{Type: AnnotationUpdated, AnnotationID: a.ID, Path: a.Path()})
	}
	return nil
}

// DeleteTextRange removes [startOffset, endOffset) from a text property and
// propagates the deletion to annotations on that path: ranges after the
// window shift left, ranges straddling it are clamped, and annotations that
// fall entirely inside the window are removed.
func (d *Document) DeleteTextRange(path []string, startOffset, endOffset int) error {
	text, err := d.GetText(path)
	if err != nil {
		return err
	}
	if startOffset < 0 || endOffset > len(text) || startOffset > endOffset {
		return fmt.Errorf("%w: delete range [%d,%d) on text of length %d", ErrInvalidArgument, startOffset, endOffset, len(text))
	}
	if startOffset == endOffset {
		return nil
	}
	if err := d.setProp(path, text[:startOffset]+text[endOffset:]); err != nil {
		return err
	}
	length := endOffset - startOffset
	for _, a := range d.index.Get(path) {
		if a.Start.Offset >= startOffset && a.End.Offset <= endOffset {
			d.removeAnnotation(a)
			continue
		}
		a.Start.Offset = shiftForDelete(a.Start.Offset, startOffset, length)
		a.End.Offset = shiftForDelete(a.End.Offset, startOffset, length)
	}
	d.emit(Event{Type: TextChanged, NodeID: path[0], Path: path})
	return nil
}

func shiftForDelete(offset, start, length int) int {
	if offset <= start {
		return offset
	}
	if offset-length < start {
		return start
	}
	return offset - length
}

// InsertText inserts text at offset in a text property. Annotation starts at
// or after the insert point shift right; annotation ends shift only when
// strictly after it, so typing at an annotation boundary does not grow it.
func (d *Document) InsertText(path []string, offset int, insert string) error {
	text, err := d.GetText(path)
	if err != nil {
		return err
	}
	if offset < 0 || offset > len(text) {
		return fmt.Errorf("%w: insert offset %d on text of length %d", ErrInvalidArgument, offset, len(text))
	}
	if insert == "" {
		return nil
	}
	if err := d.setProp(path, text[:offset]+insert+text[offset:]); err != nil {
		return err
	}
	for _, a := range d.index.Get(path) {
		collapsed := a.Start.Offset == a.End.Offset
		if a.Start.Offset >= offset {
			a.Start.Offset += len(insert)
		}
		if a.End.Offset > offset || (collapsed && a.End.Offset >= offset) {
			a.End.Offset += len(insert)
		}
	}
	d.emit(Event{Type: TextChanged, NodeID: path[0], Path: path})
	return nil
}

// CreateSnippet creates a new empty document over the same schema holding a
// single container node. Snippets are fully independent of their source.
func (d *Document) CreateSnippet() *Document {
	snippet := New(d.schema, Config{Logger: d.log})
	snippet.nodes[SnippetID] = &Node{
		ID:    SnippetID,
		Type:  "container",
		Props: map[string]any{"nodes": []string{}},
	}
	return snippet
}
