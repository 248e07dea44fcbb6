package rtree

import "fmt"

// Extract returns a new tree rooted at id holding the nodes collected by
// [Tree.DescendantIDs] for the same depth.
//
// With move false every node is deep-copied through [Node.Clone] and the
// receiver is left untouched. With move true the nodes are moved out of the
// receiver. The former parent keeps the moved id in its child list, so the
// receiver renders it as an unresolved child afterwards. Moving the root
// empties the receiver, so a bounded move of the root fails with
// [ErrPartialRootMove] when any stored node lies beyond depth.
//
// The new root keeps its parent pointer, so extracting anything but an
// undetached root yields a detached sub-tree. Child ids beyond depth stay in
// the child lists of the deepest extracted nodes.
func (t *Tree[I, N]) Extract(id I, depth int, move bool) (*Tree[I, N], error) {
	n, ok := t.Node(id)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNodeDoesNotExist, id)
	}
	isRoot := t.hasRoot && t.root.ID() == id
	if isRoot && move && depth >= 0 {
		stored := 0
		for _, did := range t.DescendantIDs(id, depth) {
			if _, ok := t.nodes[did]; ok {
				stored++
			}
		}
		if stored < len(t.nodes) {
			return nil, fmt.Errorf("%w: %v", ErrPartialRootMove, id)
		}
		depth = Unlimited
	}
	if isRoot && depth < 0 {
		if move {
			out := &Tree[I, N]{root: t.root, hasRoot: true, nodes: t.nodes}
			t.clear()
			return out, nil
		}
		return t.Clone(), nil
	}

	out := New[I, N]()
	out.hasRoot = true
	if move {
		out.root = n
	} else {
		out.root = n.Clone()
	}

	for _, did := range t.DescendantIDs(id, depth) {
		d, ok := t.nodes[did]
		if !ok {
			continue
		}
		if move {
			out.nodes[did] = d
			delete(t.nodes, did)
		} else {
			out.nodes[did] = d.Clone()
		}
	}

	if move {
		delete(t.nodes, id)
	}
	return out, nil
}

// CloneFrom returns a deep copy of the sub-tree rooted at id.
func (t *Tree[I, N]) CloneFrom(id I) (*Tree[I, N], error) {
	return t.Extract(id, Unlimited, false)
}

// CloneFromDepth returns a deep copy of the sub-tree rooted at id, limited to
// depth levels below it.
func (t *Tree[I, N]) CloneFromDepth(id I, depth int) (*Tree[I, N], error) {
	return t.Extract(id, depth, false)
}

// Take moves the sub-tree rooted at id out of the tree.
func (t *Tree[I, N]) Take(id I) (*Tree[I, N], error) {
	return t.Extract(id, Unlimited, true)
}

// Clone returns a deep copy of the whole tree, including stored nodes that
// are not reachable from the root.
func (t *Tree[I, N]) Clone() *Tree[I, N] {
	out := &Tree[I, N]{hasRoot: t.hasRoot, nodes: make(map[I]N, len(t.nodes))}
	if t.hasRoot {
		out.root = t.root.Clone()
	}
	for id, n := range t.nodes {
		out.nodes[id] = n.Clone()
	}
	return out
}

func (t *Tree[I, N]) clear() {
	var zero N
	t.root = zero
	t.hasRoot = false
	t.nodes = make(map[I]N)
}

// IDs returns the ids of every stored node, root included, in no particular
// order.
func (t *Tree[I, N]) IDs() []I {
	ids := make([]I, 0, t.Len())
	if t.hasRoot {
		ids = append(ids, t.root.ID())
	}
	for id := range t.nodes {
		ids = append(ids, id)
	}
	return ids
}
