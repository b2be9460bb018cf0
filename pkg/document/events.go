// ABOUTME: Change notification events for document mutations
// ABOUTME: Attach/detach and annotation lifecycle observable via callbacks

package document

// EventType enumerates document change notifications.
type EventType int

const (
	NodeCreated EventType = iota
	NodeAttached
	NodeDetached
	TextChanged
	AnnotationAdded
	AnnotationRemoved
	AnnotationUpdated
)

func (t EventType) String() string {
	switch t {
	case NodeCreated:
		return "node-created"
	case NodeAttached:
		return "node-attached"
	case NodeDetached:
		return "node-detached"
	case TextChanged:
		return "text-changed"
	case AnnotationAdded:
		return "annotation-added"
	case AnnotationRemoved:
		return "annotation-removed"
	case AnnotationUpdated:
		return "annotation-updated"
	default:
		return "unknown"
	}
}

// Event describes one document mutation. Attach and detach are explicit
// index updates on the container's child list, observed here rather than
// through overridable hooks on node types.
type Event struct {
	Type         EventType
	NodeID       string
	ContainerID  string
	Path         []string
	AnnotationID string
}
