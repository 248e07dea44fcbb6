package report

import (
	"io"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/rtree/pkg/errors"
	"github.com/matzehuels/rtree/pkg/rtree"
)

// Report renders t as text under cfg. The result starts and ends with a
// newline; an empty tree renders as a single newline.
func Report[I comparable, N rtree.Node[I, N]](t *rtree.Tree[I, N], cfg Config[I]) string {
	var path []I
	if cfg.Select != nil {
		if sub, p, ok := Window(t, *cfg.Select); ok {
			t, path = sub, p
		}
	}

	f := &formatter[I, N]{tree: t, cfg: cfg, path: path}
	if root, ok := t.Root(); ok {
		if pid, ok := root.ParentID(); ok {
			f.b.WriteString("\n")
			f.b.WriteString(Glyph{Kind: DashBar}.String())
			f.node(root, []Glyph{{Kind: DashBar, ParentWidth: runewidth.StringWidth(cfg.label(pid))}}, "")
		} else {
			f.node(root, nil, "")
		}
	}
	f.b.WriteString("\n")
	return f.b.String()
}

// Write renders t to w. A failing writer is reported with
// [errors.ErrCodeFormatting].
func Write[I comparable, N rtree.Node[I, N]](w io.Writer, t *rtree.Tree[I, N], cfg Config[I]) error {
	if _, err := io.WriteString(w, Report(t, cfg)); err != nil {
		return errors.Wrap(errors.ErrCodeFormatting, err, "write report")
	}
	return nil
}

// String renders the whole tree with the default configuration, without
// the leading newline.
func String[I comparable, N rtree.Node[I, N]](t *rtree.Tree[I, N]) string {
	return strings.TrimPrefix(Report(t, Config[I]{}), "\n")
}

// Window returns the detached view rendered for sel together with the
// selection path: sel.ID followed by its ancestors, nearest first.
//
// The window root is the farthest ancestor within Radius/2 hops that is
// stored in t, or sel.ID itself. The view holds Radius/2 levels below it.
// Window reports false when sel.ID is not stored.
func Window[I comparable, N rtree.Node[I, N]](t *rtree.Tree[I, N], sel Selection[I]) (*rtree.Tree[I, N], []I, bool) {
	if _, ok := t.Node(sel.ID); !ok {
		return nil, nil, false
	}
	half := max(sel.Radius, 0) / 2
	ancestors := t.AncestorIDs(sel.ID, half)

	// A detached root's external parent is part of the path but cannot
	// root the view.
	rootID := sel.ID
	for i := len(ancestors) - 1; i >= 0; i-- {
		if _, ok := t.Node(ancestors[i]); ok {
			rootID = ancestors[i]
			break
		}
	}

	sub, err := t.CloneFromDepth(rootID, half)
	if err != nil {
		return nil, nil, false
	}
	return sub, append([]I{sel.ID}, ancestors...), true
}

type formatter[I comparable, N rtree.Node[I, N]] struct {
	tree *rtree.Tree[I, N]
	cfg  Config[I]
	path []I
	b    strings.Builder
}

// node writes n and, recursively, its visible children. Recursion depth
// equals tree depth.
func (f *formatter[I, N]) node(n N, stack []Glyph, suffix string) {
	f.b.WriteString("\n")
	f.b.WriteString(prefix(stack, suffix))
	f.b.WriteString(" ")

	parentWidth := 0
	if pid, ok := n.ParentID(); ok {
		parent := f.cfg.label(pid)
		parentWidth = runewidth.StringWidth(parent)
		f.b.WriteString(parent)
		f.b.WriteString(" ↜ ")
	}
	f.b.WriteString(f.cfg.styled(n.ID(), f.cfg.label(n.ID())))

	children, leading, trailing := f.visible(n.ChildIDs())
	if leading {
		f.marker(stack, parentWidth)
	}
	for i, id := range children {
		last := !trailing && i == len(children)-1

		cont, joint, dashed := Glyph{Kind: SolidBar, ParentWidth: parentWidth},
			Glyph{Kind: SolidCross, ParentWidth: parentWidth},
			Glyph{Kind: SolidDashCross, ParentWidth: parentWidth}
		if last {
			cont.Kind, joint.Kind, dashed.Kind = Space, SolidAngle, SolidDashAngle
		}
		childStack := append(slices.Clip(stack), cont)

		if child, ok := f.tree.Node(id); ok {
			f.node(child, childStack, joint.String())
			continue
		}
		f.b.WriteString("\n")
		f.b.WriteString(prefix(childStack, dashed.String()))
		f.b.WriteString(" ")
		f.b.WriteString(f.cfg.styled(id, f.cfg.label(id)))
	}
	if trailing {
		f.marker(stack, parentWidth)
	}
}

// marker writes an elision line for the children of a node at stack.
func (f *formatter[I, N]) marker(stack []Glyph, parentWidth int) {
	f.b.WriteString("\n")
	for _, g := range stack {
		f.b.WriteString(g.String())
	}
	f.b.WriteString(Glyph{Kind: DashBar, ParentWidth: parentWidth}.String())
}

// visible applies the child budget. It reports whether a leading or a
// trailing elision marker is due.
func (f *formatter[I, N]) visible(ids []I) (kept []I, leading, trailing bool) {
	limit := f.cfg.MaxChildren
	if limit <= 0 || len(ids) <= limit {
		return ids, false, false
	}

	if k, ok := f.selected(ids); ok {
		start := max(0, k-limit/2)
		ids = ids[start:]
		if len(ids) > limit {
			return ids[:limit], start > 0, true
		}
		return ids, start > 0, false
	}

	if f.cfg.Wrap == WrapTop {
		return ids[len(ids)-limit:], false, false
	}
	return ids[:limit], false, true
}

// selected returns the index of the first child on the selection path,
// trying path entries nearest the target first.
func (f *formatter[I, N]) selected(ids []I) (int, bool) {
	for _, p := range f.path {
		if k := slices.Index(ids, p); k >= 0 {
			return k, true
		}
	}
	return 0, false
}
