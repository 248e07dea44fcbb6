// Package rtree provides a generic rooted tree addressed by identifier.
//
// # Overview
//
// A [Tree] owns at most one root node plus a map from identifier to every
// other node. Nodes never point at each other directly: each node records its
// own identifier, an optional parent identifier, and the identifiers of its
// children. The map is the arena and identifiers are the indices, which keeps
// the structure free of pointer cycles and makes sub-tree extraction a matter
// of copying map entries.
//
// Payload types plug in through the [Node] capability. [BasicNode] is a
// ready-made implementation that keeps child identifiers in insertion order.
//
// # Basic Usage
//
// Insert a root first, then children under existing parents:
//
//	t := rtree.NewBasic[int]()
//	_ = t.AddRoot(rtree.NewNode(1))
//	_ = t.AddChild(1, rtree.NewNode(2))
//	_ = t.AddChild(2, rtree.NewNode(3))
//
// Query the structure with [Tree.Node], [Tree.DescendantIDs] and
// [Tree.AncestorIDs]. Extract views with [Tree.CloneFrom],
// [Tree.CloneFromDepth] and [Tree.Take].
//
// # Detached Sub-trees
//
// A tree whose root records a parent identifier is a detached sub-tree
// ([Tree.IsSubtree]): a partial view of a larger tree that is not modelled.
// Clones taken from a non-root node are always detached. [Tree.AncestorIDs]
// still reports the external parent of such a root as one extra hop, which is
// what lets windowed rendering remember where a view sits.
//
// # Removal
//
// [Tree.RemoveNode] does not cascade. Descendants of a removed node stay in
// the store but are no longer reachable from the root. Use [Tree.Take] to
// detach a whole branch.
//
// # Concurrency
//
// Tree instances are not safe for concurrent use. Every mutation touches both
// the inserted node and its parent, so readers and writers alike must share a
// single external lock if a tree is used from several goroutines.
package rtree
