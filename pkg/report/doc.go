// Package report renders an [rtree.Tree] as an indented Unicode diagram.
//
// # Output Format
//
// Each node occupies one line: a connector prefix, a space, the parent label
// followed by " ↜ " when the node has a parent, then the node's own label.
// A report starts and ends with a newline:
//
//	 1
//	 ├── 1 ↜ 2
//	 │   └── 2 ↜ 4
//	 └── 1 ↜ 3
//
// Connector columns are [Glyph] values padded to the display width of the
// parent label (via go-runewidth), so wide and multi-byte labels keep bars
// aligned. Child ids that are not stored in the tree are drawn with a dashed
// connector and not expanded. Elided children are replaced by a " ╎" marker
// line.
//
// # Truncation
//
// [Config.MaxChildren] caps the children drawn per node. [WrapBottom] keeps
// the first children and appends a marker; [WrapTop] keeps the last ones.
//
// # Windowed Rendering
//
// With [Config.Select] set, only a window around one node is drawn. The
// window root is found by walking Radius/2 parent hops up from the target
// and the view extends Radius/2 levels below that root (see [Window]).
// Truncation then recenters each child list on the branch leading to the
// target, with a leading marker when earlier siblings were skipped.
//
// The formatter recurses once per level, so stack use grows with tree depth.
package report
