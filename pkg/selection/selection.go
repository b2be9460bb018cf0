// ABOUTME: Selection model as a closed tagged union over four variants
// ABOUTME: Null, property, container and node selections with shared predicates

// Package selection defines the coordinate and selection model for
// structured documents: positions inside text properties, the four
// selection variants, and decomposition of container selections into
// ordered fragments.
package selection

// Kind discriminates the selection variants. Exactly one kind is active
// per Selection value; decision points switch exhaustively on it.
type Kind int

const (
	KindNull Kind = iota
	KindProperty
	KindContainer
	KindNode
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindProperty:
		return "property"
	case KindContainer:
		return "container"
	case KindNode:
		return "node"
	default:
		return "unknown"
	}
}

// NodeMode distinguishes what part of a node a node selection addresses.
type NodeMode int

const (
	WholeNode NodeMode = iota
	BeforeNode
	AfterNode
)

// Selection is the tagged union over the four selection variants. The zero
// value is the null selection. A non-null selection always carries the
// SurfaceID of the editing region it originated in.
type Selection struct {
	kind Kind

	// property variant
	path        []string
	startOffset int
	endOffset   int

	// container variant
	containerID string
	startPath   []string
	endPath     []string

	// node variant
	nodeID   string
	nodeMode NodeMode

	surfaceID string
}

// Null returns the null selection.
func Null() Selection {
	return Selection{kind: KindNull}
}

// NewProperty creates a property selection spanning [startOffset, endOffset)
// of one text property.
func NewProperty(path []string, startOffset, endOffset int, surfaceID string) Selection {
	return Selection{
		kind:        KindProperty,
		path:        path,
		startOffset: startOffset,
		endOffset:   endOffset,
		surfaceID:   surfaceID,
	}
}

// NewContainer creates a container selection spanning multiple nodes inside
// one container, endpoints given in document order.
func NewContainer(containerID string, startPath []string, startOffset int, endPath []string, endOffset int, surfaceID string) Selection {
	return Selection{
		kind:        KindContainer,
		containerID: containerID,
		startPath:   startPath,
		startOffset: startOffset,
		endPath:     endPath,
		endOffset:   endOffset,
		surfaceID:   surfaceID,
	}
}

// NewNode creates a node selection addressing a single node in a container.
func NewNode(containerID, nodeID string, mode NodeMode, surfaceID string) Selection {
	return Selection{
		kind:        KindNode,
		containerID: containerID,
		nodeID:      nodeID,
		nodeMode:    mode,
		surfaceID:   surfaceID,
	}
}

// Kind returns the active variant tag.
func (s Selection) Kind() Kind { return s.kind }

// IsNull reports whether nothing is selected.
func (s Selection) IsNull() bool { return s.kind == KindNull }

// IsProperty reports whether the selection spans one text property.
func (s Selection) IsProperty() bool { return s.kind == KindProperty }

// IsContainer reports whether the selection spans nodes inside a container.
func (s Selection) IsContainer() bool { return s.kind == KindContainer }

// IsNode reports whether the selection addresses a single node.
func (s Selection) IsNode() bool { return s.kind == KindNode }

// IsCollapsed reports whether the selection covers no content. Node
// selections in before/after mode are cursor positions and count as
// collapsed; a whole-node selection does not.
func (s Selection) IsCollapsed() bool {
	switch s.kind {
	case KindNull:
		return true
	case KindProperty:
		return s.startOffset == s.endOffset
	case KindContainer:
		return s.startOffset == s.endOffset && PathEquals(s.startPath, s.endPath)
	case KindNode:
		return s.nodeMode != WholeNode
	default:
		return true
	}
}

// Path returns the property path of a property selection.
func (s Selection) Path() []string { return s.path }

// StartOffset returns the start offset of a property or container selection.
func (s Selection) StartOffset() int { return s.startOffset }

// EndOffset returns the end offset of a property or container selection.
func (s Selection) EndOffset() int { return s.endOffset }

// ContainerID returns the container id of a container or node selection.
func (s Selection) ContainerID() string { return s.containerID }

// StartPath returns the start coordinate path of a container selection.
func (s Selection) StartPath() []string { return s.startPath }

// EndPath returns the end coordinate path of a container selection.
func (s Selection) EndPath() []string { return s.endPath }

// NodeID returns the target node id of a node selection.
func (s Selection) NodeID() string { return s.nodeID }

// NodeMode returns the mode of a node selection.
func (s Selection) NodeMode() NodeMode { return s.nodeMode }

// SurfaceID returns the id of the editing surface the selection originated
// in. Empty for the null selection.
func (s Selection) SurfaceID() string { return s.surfaceID }
