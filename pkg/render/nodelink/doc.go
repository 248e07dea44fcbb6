// Package nodelink renders trees as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// nodes appear as boxes connected by arrows. It complements the text report
// in package report for cases where a diagram is preferred.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(t, nodelink.Options[string]{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include the id and child count
//   - Label: display text per id
//   - Select: draw only the window a windowed text report would show
//
// # DOT Format
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded box
// nodes. Nodes and edges are emitted in pre-order, so output is stable for
// node types with ordered children. Unresolved child ids and the external
// parent of a detached sub-tree are drawn dashed.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
