package report

import "strings"

// GlyphKind identifies one column of connector art.
type GlyphKind int

const (
	// Space continues below a last child: blank.
	Space GlyphKind = iota
	// SolidBar continues below a child that has later siblings.
	SolidBar
	// SolidAngle connects a last child.
	SolidAngle
	// SolidDashAngle connects a last child whose id is not stored.
	SolidDashAngle
	// SolidCross connects a child that has later siblings.
	SolidCross
	// SolidDashCross connects an unresolved child that has later siblings.
	SolidDashCross
	// DashBar marks elided children and the edge of a detached root.
	DashBar
	// Empty prints nothing.
	Empty
)

// Glyph is one connector column, padded to the display width of the parent
// label printed above it so bars and corners stay aligned under labels of
// any width.
type Glyph struct {
	Kind        GlyphKind
	ParentWidth int
}

// String renders the glyph.
func (g Glyph) String() string {
	switch g.Kind {
	case Space:
		return "    " + strings.Repeat(" ", padLen(-1, g.ParentWidth))
	case SolidBar:
		return " │  " + strings.Repeat(" ", padLen(-1, g.ParentWidth))
	case SolidAngle:
		return " └──" + strings.Repeat("─", padLen(-1, g.ParentWidth))
	case SolidDashAngle:
		return " └╌╌╌╌╌╌" + strings.Repeat("╌", padLen(3, g.ParentWidth))
	case SolidCross:
		return " ├──" + strings.Repeat("─", padLen(-1, g.ParentWidth))
	case SolidDashCross:
		return " ├╌╌╌╌╌╌" + strings.Repeat("╌", padLen(3, g.ParentWidth))
	case DashBar:
		return " ╎  " + strings.Repeat(" ", padLen(-1, g.ParentWidth))
	default:
		return ""
	}
}

// padLen returns width+delta, or 0 when |delta| >= width.
func padLen(delta, width int) int {
	if abs(delta) >= width {
		return 0
	}
	return width + delta
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// prefix joins every glyph of stack except the last, which is replaced by
// suffix. An empty stack yields suffix alone.
func prefix(stack []Glyph, suffix string) string {
	if len(stack) == 0 {
		return suffix
	}
	var b strings.Builder
	for _, g := range stack[:len(stack)-1] {
		b.WriteString(g.String())
	}
	b.WriteString(suffix)
	return b.String()
}
