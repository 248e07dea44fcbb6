package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/rtree/pkg/report"
	"github.com/matzehuels/rtree/pkg/rtree"
)

// Options configures node-link diagram rendering.
type Options[I comparable] struct {
	// Detailed adds the node id and child count below the label.
	Detailed bool

	// Label returns the text shown for an id. Defaults to fmt.Sprint.
	Label func(I) string

	// Select restricts the diagram to the same window a windowed text
	// report would show. The selected node is highlighted.
	Select *report.Selection[I]
}

func (o Options[I]) label(id I) string {
	if o.Label != nil {
		return o.Label(id)
	}
	return fmt.Sprint(id)
}

// ToDOT converts a tree to Graphviz DOT format for node-link visualization.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Child ids that are not stored in the tree, and the external parent of a
// detached root, are drawn as dashed grey nodes joined by dashed edges.
func ToDOT[I comparable, N rtree.Node[I, N]](t *rtree.Tree[I, N], opts Options[I]) string {
	var selected *I
	if opts.Select != nil {
		if sub, _, ok := report.Window(t, *opts.Select); ok {
			t = sub
			selected = &opts.Select.ID
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var edges []string
	if root, ok := t.Root(); ok {
		if pid, ok := root.ParentID(); ok {
			key := fmt.Sprint(pid)
			fmt.Fprintf(&buf, "  %q [%s];\n", key, strings.Join(ghostAttrs(opts.label(pid)), ", "))
			edges = append(edges, fmt.Sprintf("  %q -> %q [style=dashed];\n", key, fmt.Sprint(root.ID())))
		}
	}

	t.Walk(func(n N, _ int) bool {
		key := fmt.Sprint(n.ID())
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts))}
		if selected != nil && *selected == n.ID() {
			attrs = append(attrs, "fillcolor=\"#fde68a\"", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", key, strings.Join(attrs, ", "))

		for _, c := range n.ChildIDs() {
			ckey := fmt.Sprint(c)
			if _, ok := t.Node(c); ok {
				edges = append(edges, fmt.Sprintf("  %q -> %q;\n", key, ckey))
				continue
			}
			fmt.Fprintf(&buf, "  %q [%s];\n", ckey, strings.Join(ghostAttrs(opts.label(c)), ", "))
			edges = append(edges, fmt.Sprintf("  %q -> %q [style=dashed];\n", key, ckey))
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel[I comparable, N rtree.Node[I, N]](n N, opts Options[I]) string {
	label := opts.label(n.ID())
	if !opts.Detailed {
		return label
	}
	return fmt.Sprintf("%s\nid: %v\nchildren: %d", label, n.ID(), len(n.ChildIDs()))
}

func ghostAttrs(label string) []string {
	return []string{
		fmt.Sprintf("label=%q", label),
		"style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black",
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag to a zero-origin viewBox with
// matching pixel size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
