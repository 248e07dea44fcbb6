package rtree

import (
	"errors"
	"fmt"
)

var (
	// ErrRootNodeAlreadyExists is returned by [Tree.AddNode] when a node is
	// inserted without a parent while the tree already has a root.
	ErrRootNodeAlreadyExists = errors.New("root node already exists")

	// ErrRootNodeHasParent is returned by [Tree.AddNode] when a node that
	// records its own parent is offered as the root of an empty tree. Detached
	// roots are only produced by extraction and [FromNodes].
	ErrRootNodeHasParent = errors.New("root node has a parent")

	// ErrParentNodeDoesNotExist is returned by [Tree.AddNode] and [FromNodes]
	// when the named parent is not stored in the tree.
	ErrParentNodeDoesNotExist = errors.New("parent node does not exist")

	// ErrNodeDoesNotExist is returned by the extraction methods when the
	// requested node is not stored in the tree.
	ErrNodeDoesNotExist = errors.New("node does not exist")

	// ErrPartialRootMove is returned by [Tree.Extract] when a depth-bounded
	// move of the root would leave stored nodes without a tree.
	ErrPartialRootMove = errors.New("bounded move of the root would drop nodes")

	// ErrParentNodeDoesNotContainChild is returned by [FromNodes] when a node
	// names a parent whose child list does not include it.
	ErrParentNodeDoesNotContainChild = errors.New("parent node does not contain child")

	// ErrChildNodeHasNoParent is returned by [FromNodes] when a node after the
	// first one records no parent.
	ErrChildNodeHasNoParent = errors.New("child node has no parent")
)

// Unlimited disables the depth bound of the traversal and extraction methods.
const Unlimited = -1

// Tree is a rooted tree store. It owns at most one root node plus every
// other node keyed by identifier.
//
// The zero value is not usable - use [New] or [NewBasic].
// Tree is not safe for concurrent use without external synchronization.
type Tree[I comparable, N Node[I, N]] struct {
	root    N
	hasRoot bool
	nodes   map[I]N // every node except the root
}

// New creates an empty tree.
func New[I comparable, N Node[I, N]]() *Tree[I, N] {
	return &Tree[I, N]{nodes: make(map[I]N)}
}

// NewBasic creates an empty tree of [BasicNode] values.
func NewBasic[I comparable]() *Tree[I, *BasicNode[I]] {
	return New[I, *BasicNode[I]]()
}

// AddNode inserts node under parent, or as the root when parent is nil.
//
// A root may only be inserted into an empty tree and must not record a
// parent of its own. A child's parent must already be stored; on success the
// parent gains the child id and the node's parent pointer is set to match.
//
// Identifiers are not checked for reuse. Inserting an id that is already
// stored replaces the earlier entry and leaves the tree inconsistent.
func (t *Tree[I, N]) AddNode(parent *I, node N) error {
	if parent == nil {
		if t.hasRoot {
			return ErrRootNodeAlreadyExists
		}
		if _, ok := node.ParentID(); ok {
			return ErrRootNodeHasParent
		}
		t.root = node
		t.hasRoot = true
		return nil
	}

	p, ok := t.Node(*parent)
	if !ok {
		return fmt.Errorf("%w: %v", ErrParentNodeDoesNotExist, *parent)
	}
	p.AddChildID(node.ID())
	node.SetParentID(*parent)
	t.nodes[node.ID()] = node
	return nil
}

// AddRoot inserts node as the root of an empty tree.
func (t *Tree[I, N]) AddRoot(node N) error {
	return t.AddNode(nil, node)
}

// AddChild inserts node under the stored node parent.
func (t *Tree[I, N]) AddChild(parent I, node N) error {
	return t.AddNode(&parent, node)
}

// Node returns the stored node with the given id. The returned value is the
// stored one, so mutations through a pointer node type apply in place.
func (t *Tree[I, N]) Node(id I) (N, bool) {
	if n, ok := t.nodes[id]; ok {
		return n, true
	}
	if t.hasRoot && t.root.ID() == id {
		return t.root, true
	}
	var zero N
	return zero, false
}

// Root returns the root node, or false for an empty tree.
func (t *Tree[I, N]) Root() (N, bool) {
	return t.root, t.hasRoot
}

// RemoveNode removes the node with the given id and unlinks it from its
// parent's child list.
//
// Removal does not cascade: descendants of the removed node remain stored
// but are no longer reachable from the root. Removing the root of a tree
// that still holds other nodes leaves the tree corrupt; see [Tree.Len].
func (t *Tree[I, N]) RemoveNode(id I) (N, bool) {
	if n, ok := t.nodes[id]; ok {
		delete(t.nodes, id)
		if pid, ok := n.ParentID(); ok {
			if p, ok := t.Node(pid); ok {
				p.RemoveChildID(id)
			}
		}
		return n, true
	}
	if t.hasRoot && t.root.ID() == id {
		n := t.root
		var zero N
		t.root = zero
		t.hasRoot = false
		return n, true
	}
	var zero N
	return zero, false
}

// Len returns the number of stored nodes, reachable or not.
//
// Len panics if the tree holds nodes but no root. That state only arises
// from removing the root while children are still stored.
func (t *Tree[I, N]) Len() int {
	if !t.hasRoot {
		if len(t.nodes) > 0 {
			panic("rtree: tree holds nodes but no root")
		}
		return 0
	}
	return len(t.nodes) + 1
}

// IsSubtree reports whether the root records a parent outside the tree,
// i.e. whether the tree is a detached view into a larger tree.
func (t *Tree[I, N]) IsSubtree() bool {
	if !t.hasRoot {
		return false
	}
	_, ok := t.root.ParentID()
	return ok
}
