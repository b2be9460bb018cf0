// ABOUTME: Node records for the document arena
// ABOUTME: Typed property access plus schema-driven cloning of known shapes

package document

// Node is one record in the document arena. Relationships to other nodes
// are stored as id references in Props, never as live pointers.
type Node struct {
	ID    string
	Type  string
	Props map[string]any
}

// Text returns the string value of a property, or "" when unset.
func (n *Node) Text(name string) string {
	if n.Props == nil {
		return ""
	}
	s, _ := n.Props[name].(string)
	return s
}

// IDs returns a copy of an id-array property, or nil when unset.
func (n *Node) IDs(name string) []string {
	if n.Props == nil {
		return nil
	}
	ids, _ := n.Props[name].([]string)
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Ref returns the string value of a single-id or file reference property.
func (n *Node) Ref(name string) string {
	return n.Text(name)
}

// Clone produces an independent copy of the node restricted to the
// properties its schema declares. Unknown properties are dropped rather
// than cloned reflectively.
func (n *Node) Clone(nt NodeType) *Node {
	out := &Node{ID: n.ID, Type: n.Type, Props: make(map[string]any, len(nt.Properties))}
	for _, p := range nt.Properties {
		v, ok := n.Props[p.Name]
		if !ok {
			continue
		}
		switch p.Type {
		case TypeIDArray, TypeStringArray:
			if ids, ok := v.([]string); ok {
				cp := make([]string, len(ids))
				copy(cp, ids)
				out.Props[p.Name] = cp
			}
		default:
			out.Props[p.Name] = v
		}
	}
	return out
}
