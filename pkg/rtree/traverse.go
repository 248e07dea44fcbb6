package rtree

// DescendantIDs returns the ids below id in pre-order, following at most
// depth child hops. A negative depth means [Unlimited] and depth 0 returns
// nil.
//
// Child ids that are not stored in the tree are still listed, but nothing is
// collected below them. An unknown id yields nil.
func (t *Tree[I, N]) DescendantIDs(id I, depth int) []I {
	var ids []I
	t.collectDescendants(id, depth, &ids)
	return ids
}

func (t *Tree[I, N]) collectDescendants(id I, depth int, ids *[]I) {
	if depth == 0 {
		return
	}
	n, ok := t.Node(id)
	if !ok {
		return
	}
	next := depth
	if next > 0 {
		next--
	}
	for _, child := range n.ChildIDs() {
		*ids = append(*ids, child)
		t.collectDescendants(child, next, ids)
	}
}

// AncestorIDs returns the parent ids above id, nearest first, following at
// most depth parent hops. A negative depth means [Unlimited] and depth 0
// returns nil.
//
// The walk stops after the first parent id that is not stored. In a
// detached sub-tree this means the root's external parent is reported as
// one final hop.
//
// Cycles are not detected. An unlimited walk over a malformed tree whose
// parent pointers loop does not terminate.
func (t *Tree[I, N]) AncestorIDs(id I, depth int) []I {
	if depth == 0 {
		return nil
	}
	n, ok := t.Node(id)
	if !ok {
		return nil
	}

	var ids []I
	for depth != 0 {
		pid, ok := n.ParentID()
		if !ok {
			break
		}
		ids = append(ids, pid)
		if depth > 0 {
			depth--
		}
		if n, ok = t.Node(pid); !ok {
			break
		}
	}
	return ids
}

// Walk visits every node reachable from the root in pre-order, passing the
// node and its depth below the root. Walk stops when fn returns false.
// Child ids that are not stored are skipped.
func (t *Tree[I, N]) Walk(fn func(node N, depth int) bool) {
	if !t.hasRoot {
		return
	}

	type frame struct {
		node  N
		depth int
	}
	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.node, f.depth) {
			return
		}
		children := f.node.ChildIDs()
		for i := len(children) - 1; i >= 0; i-- {
			if c, ok := t.nodes[children[i]]; ok {
				stack = append(stack, frame{c, f.depth + 1})
			}
		}
	}
}
