// Package render groups the diagram renderers.
//
// Text reports live in [report]; this tree holds renderers that delegate
// layout to an external engine. The [nodelink] subpackage emits Graphviz DOT
// with the same windowed selection as the report and renders it to SVG:
//
//	dot := nodelink.ToDOT(t, nodelink.Options[string]{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [report]: github.com/matzehuels/rtree/pkg/report
// [nodelink]: github.com/matzehuels/rtree/pkg/render/nodelink
package render
