package rtree

import "slices"

// Equal reports whether t and other store the same ids with the same parent
// pointers and the same child id sequences. Payloads beyond the link
// structure are not compared. A nil tree equals only another nil tree.
func (t *Tree[I, N]) Equal(other *Tree[I, N]) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.hasRoot != other.hasRoot || len(t.nodes) != len(other.nodes) {
		return false
	}
	if t.hasRoot && !sameLinks[I](t.root, other.root) {
		return false
	}
	for id, n := range t.nodes {
		o, ok := other.nodes[id]
		if !ok || !sameLinks[I](n, o) {
			return false
		}
	}
	return true
}

func sameLinks[I comparable, N Node[I, N]](a, b N) bool {
	if a.ID() != b.ID() {
		return false
	}
	ap, aok := a.ParentID()
	bp, bok := b.ParentID()
	if aok != bok || (aok && ap != bp) {
		return false
	}
	return slices.Equal(a.ChildIDs(), b.ChildIDs())
}
