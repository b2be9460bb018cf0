// ABOUTME: Schema reflection for typed document nodes
// ABOUTME: Ordered property descriptors drive validation and schema-driven cloning

package document

// PropertyType enumerates the value types a node property may hold.
type PropertyType int

const (
	TypeString PropertyType = iota
	TypeText
	TypeNumber
	TypeBool
	TypeStringArray
	TypeID
	TypeIDArray
	TypeFile
)

// Property describes one declared property of a node type.
type Property struct {
	Name  string
	Type  PropertyType
	Owned bool // referenced nodes belong to this node's subtree
}

// IsArray reports whether the property holds multiple values.
func (p Property) IsArray() bool {
	return p.Type == TypeIDArray || p.Type == TypeStringArray
}

// IsReference reports whether the property points at other nodes. File
// properties reference file nodes and participate in ownership copies.
func (p Property) IsReference() bool {
	return p.Type == TypeID || p.Type == TypeIDArray || p.Type == TypeFile
}

// IsText reports whether the property is an annotatable text property.
func (p Property) IsText() bool {
	return p.Type == TypeText
}

// NodeType declares a node type with its ordered property descriptors.
type NodeType struct {
	Name       string
	Properties []Property
}

// Property returns the descriptor for name.
func (nt NodeType) Property(name string) (Property, bool) {
	for _, p := range nt.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// ChildrenProperty returns the owned id-array property holding a container's
// children, if the type declares one.
func (nt NodeType) ChildrenProperty() (Property, bool) {
	for _, p := range nt.Properties {
		if p.Type == TypeIDArray && p.Owned {
			return p, true
		}
	}
	return Property{}, false
}

// Schema is an explicit registry of node types. It is passed to document
// constructors; there is no process-wide default schema.
type Schema struct {
	types map[string]NodeType
}

// NewSchema builds a schema from node type definitions. The container type
// is always registered so every schema can host snippets.
func NewSchema(types ...NodeType) *Schema {
	s := &Schema{types: make(map[string]NodeType, len(types)+1)}
	s.register(ContainerType())
	for _, nt := range types {
		s.register(nt)
	}
	return s
}

func (s *Schema) register(nt NodeType) {
	s.types[nt.Name] = nt
}

// Type returns the definition of a node type.
func (s *Schema) Type(name string) (NodeType, bool) {
	nt, ok := s.types[name]
	return nt, ok
}

// ContainerType is the built-in node type whose "nodes" property lists the
// ids of its children in document order.
func ContainerType() NodeType {
	return NodeType{
		Name: "container",
		Properties: []Property{
			{Name: "nodes", Type: TypeIDArray, Owned: true},
		},
	}
}
