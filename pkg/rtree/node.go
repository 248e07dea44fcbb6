package rtree

import "slices"

// Node is the capability a payload type must provide to live in a [Tree].
//
// N is the concrete node type itself (usually a pointer), so that Clone can
// return a value the tree can store. Mutators are called by the tree during
// insertion and removal; implementations must apply them in place.
//
// ChildIDs defines rendering order. The tree never sorts children, so an
// implementation backed by an unordered collection renders in whatever order
// that collection yields.
type Node[I comparable, N any] interface {
	ID() I
	// ParentID returns the parent identifier and true, or false for a node
	// without a parent.
	ParentID() (I, bool)
	ChildIDs() []I
	SetParentID(parent I)
	AddChildID(child I)
	RemoveChildID(child I)
	// Clone returns an independent deep copy of the node.
	Clone() N
}

// BasicNode is a general purpose [Node] that keeps child identifiers in
// insertion order and ignores duplicate child ids.
//
// Label is an optional display text carried alongside the identifier. The
// tree does not interpret it.
type BasicNode[I comparable] struct {
	id        I
	parent    I
	hasParent bool
	children  []I

	Label string
}

// NewNode creates a parentless node with no children.
func NewNode[I comparable](id I) *BasicNode[I] {
	return &BasicNode[I]{id: id}
}

// NewLabeledNode creates a parentless node carrying a display label.
func NewLabeledNode[I comparable](id I, label string) *BasicNode[I] {
	return &BasicNode[I]{id: id, Label: label}
}

func (n *BasicNode[I]) ID() I { return n.id }

func (n *BasicNode[I]) ParentID() (I, bool) { return n.parent, n.hasParent }

// ChildIDs returns a copy of the child identifiers in insertion order.
func (n *BasicNode[I]) ChildIDs() []I { return slices.Clone(n.children) }

func (n *BasicNode[I]) SetParentID(parent I) {
	n.parent = parent
	n.hasParent = true
}

func (n *BasicNode[I]) AddChildID(child I) {
	if slices.Contains(n.children, child) {
		return
	}
	n.children = append(n.children, child)
}

func (n *BasicNode[I]) RemoveChildID(child I) {
	n.children = slices.DeleteFunc(n.children, func(id I) bool { return id == child })
}

func (n *BasicNode[I]) Clone() *BasicNode[I] {
	c := *n
	c.children = slices.Clone(n.children)
	return &c
}

var _ Node[string, *BasicNode[string]] = (*BasicNode[string])(nil)
