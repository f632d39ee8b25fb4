// Package schema reconstructs the Parquet schema tree from the flat,
// pre-order list of elements stored in a file's footer metadata, and
// computes the per-leaf maximum definition and repetition levels the
// column-chunk decoder and nested assembler both depend on.
package schema

import (
	"errors"
	"fmt"

	"github.com/arrowparquet/parquet-arrow/format"
)

// Kind classifies a schema node for the purposes of nested reconstruction.
type Kind int

const (
	// Primitive nodes are leaves: they carry a physical type and decode
	// directly to a column of values.
	Primitive Kind = iota
	// Group nodes are plain structs: every child is present whenever the
	// group itself is present.
	Group
	// Map nodes follow the three-level MAP / MAP_KEY_VALUE convention.
	Map
	// Repeated nodes are LIST-annotated (or bare REPEATED) groups.
	Repeated
)

func (k Kind) String() string {
	switch k {
	case Primitive:
		return "PRIMITIVE"
	case Group:
		return "GROUP"
	case Map:
		return "MAP"
	case Repeated:
		return "REPEATED"
	default:
		return "UNKNOWN"
	}
}

// Node is one element of the schema tree. The tree uses ordinary parent
// pointers; the garbage collector has no trouble with the parent/child
// back-references, so nothing fancier is needed.
type Node struct {
	Name           string
	Path           []string
	FieldID        int32
	PhysicalType   format.Type
	TypeLength     int32
	ConvertedType  format.ConvertedType
	HasConverted   bool
	LogicalType    *format.LogicalType
	RepetitionType format.FieldRepetitionType
	Scale          int32
	Precision      int32

	// MaxDefinitionLevel and MaxRepetitionLevel count Optional+Repeated and
	// Repeated ancestors (inclusive of this node) respectively. They are the
	// definitive reference for nullability and nesting depth.
	MaxDefinitionLevel int32
	MaxRepetitionLevel int32

	Root bool
	Kind Kind

	parent   *Node
	Children []*Node
}

// Parent returns the node's parent, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsLeaf reports whether the node maps directly to a column chunk.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// At walks the tree following names, returning nil if the path does not
// resolve to a node.
func (n *Node) At(path ...string) *Node {
	cur := n
	for _, name := range path {
		var next *Node
		for _, c := range cur.Children {
			if c.Name == name {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Leaves returns the tree's leaves in the depth-first order they are
// stored in the file, which is also column-chunk order within a row group.
func (n *Node) Leaves() []*Node {
	return n.appendLeaves(nil)
}

func (n *Node) appendLeaves(leaves []*Node) []*Node {
	if n.IsLeaf() {
		return append(leaves, n)
	}
	for _, c := range n.Children {
		leaves = c.appendLeaves(leaves)
	}
	return leaves
}

var errEmptySchema = errors.New("schema: empty element list")

// FromElements builds a schema tree from the flat, pre-order SchemaElement
// list stored in FileMetaData.Schema. Element 0 is always the implicit root
// group (the "message" element); its own Repetition field is meaningless and
// ignored.
func FromElements(elements []format.SchemaElement) (*Node, error) {
	if len(elements) == 0 {
		return nil, errEmptySchema
	}

	root := &Node{Root: true, RepetitionType: format.Required}
	consumed := build(root, elements)
	if consumed != len(elements) {
		return nil, fmt.Errorf("schema: expected to consume %d elements, consumed %d", len(elements), consumed)
	}
	compute(root)
	return root, nil
}

// build populates current from elements[0] and recursively constructs
// current's children from the following elements, returning the number of
// elements consumed (1 + every descendant).
func build(current *Node, elements []format.SchemaElement) int {
	el := &elements[0]

	current.FieldID = el.FieldID
	current.Name = el.Name
	current.PhysicalType = el.Type
	current.TypeLength = el.TypeLength
	current.ConvertedType = el.ConvertedType
	current.HasConverted = el.HasConvertedType
	current.LogicalType = el.LogicalType
	current.Scale = el.Scale
	current.Precision = el.Precision
	if !current.Root {
		current.RepetitionType = el.RepetitionType
	}
	current.Children = make([]*Node, el.NumChildren)

	consumed := 1
	for i := 0; i < int(el.NumChildren); i++ {
		child := &Node{parent: current}
		current.Children[i] = child
		consumed += build(child, elements[consumed:])
	}
	return consumed
}

// compute fills in Path, MaxDefinitionLevel, MaxRepetitionLevel and Kind for
// current and every descendant, given that current's own fields (other than
// these) are already populated.
func compute(current *Node) {
	if current.parent != nil {
		current.MaxDefinitionLevel = current.parent.MaxDefinitionLevel
		current.MaxRepetitionLevel = current.parent.MaxRepetitionLevel
		current.Path = appendPath(current.parent.Path, current.Name)
	}
	if current.RepetitionType == format.Repeated {
		current.MaxRepetitionLevel++
	}
	if current.RepetitionType != format.Required {
		current.MaxDefinitionLevel++
	}
	current.Kind = computeKind(current)

	for _, c := range current.Children {
		compute(c)
	}
}

func computeKind(n *Node) Kind {
	if len(n.Children) == 0 {
		return Primitive
	}
	if n.HasConverted {
		switch n.ConvertedType {
		case format.Map, format.MapKeyValue:
			return Map
		case format.List:
			return Repeated
		}
	}
	if n.LogicalType != nil && n.LogicalType.Kind == format.MapLogicalType {
		return Map
	}
	if n.LogicalType != nil && n.LogicalType.Kind == format.ListLogicalType {
		return Repeated
	}
	if n.RepetitionType == format.Repeated {
		return Repeated
	}
	return Group
}

func appendPath(path []string, name string) []string {
	next := make([]string, len(path)+1)
	copy(next, path)
	next[len(path)] = name
	return next
}
