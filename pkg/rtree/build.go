package rtree

import (
	"fmt"
	"slices"
)

// FromNodes builds a tree from an ordered node sequence.
//
// The first node becomes the root as-is; if it records a parent the result
// is a detached sub-tree. Every later node must record a parent that appears
// earlier in the sequence, and that parent must already list it as a child.
// Nodes are stored without copying and their links are not modified.
//
// Because N cannot be inferred from the constraint alone, callers name the
// id type: rtree.FromNodes[string](nodes).
func FromNodes[I comparable, N Node[I, N]](nodes []N) (*Tree[I, N], error) {
	t := New[I, N]()
	if len(nodes) == 0 {
		return t, nil
	}
	t.root = nodes[0]
	t.hasRoot = true

	for _, n := range nodes[1:] {
		pid, ok := n.ParentID()
		if !ok {
			return nil, fmt.Errorf("node %v: %w", n.ID(), ErrChildNodeHasNoParent)
		}
		p, ok := t.Node(pid)
		if !ok {
			return nil, fmt.Errorf("node %v: %w: %v", n.ID(), ErrParentNodeDoesNotExist, pid)
		}
		if !slices.Contains(p.ChildIDs(), n.ID()) {
			return nil, fmt.Errorf("node %v: %w: %v", n.ID(), ErrParentNodeDoesNotContainChild, pid)
		}
		t.nodes[n.ID()] = n
	}
	return t, nil
}
