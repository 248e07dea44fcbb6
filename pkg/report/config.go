package report

import (
	"fmt"
	"strings"
)

// ChildWrap selects which end of a wide child list is elided.
type ChildWrap int

const (
	// WrapBottom keeps the first children and marks the elided tail.
	WrapBottom ChildWrap = iota
	// WrapTop keeps the last children and drops the head without a marker.
	WrapTop
)

func (w ChildWrap) String() string {
	if w == WrapTop {
		return "top"
	}
	return "bottom"
}

// ParseChildWrap parses "top" or "bottom" (case-insensitive). The empty
// string yields [WrapBottom].
func ParseChildWrap(s string) (ChildWrap, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bottom":
		return WrapBottom, nil
	case "top":
		return WrapTop, nil
	default:
		return WrapBottom, fmt.Errorf("invalid child wrap %q: want top or bottom", s)
	}
}

// Selection centers a render on one node.
//
// The window extends Radius/2 parent hops above ID and the same number of
// levels below the chosen window root. A negative Radius counts as zero.
type Selection[I comparable] struct {
	ID     I
	Radius int
}

// Config controls a single render. The zero value renders the whole tree
// without truncation.
type Config[I comparable] struct {
	// MaxChildren caps the children shown per node. Zero or less disables
	// truncation.
	MaxChildren int

	// Wrap selects the elided end when MaxChildren is exceeded.
	Wrap ChildWrap

	// Select, when set, renders a window around one node instead of the
	// whole tree. An id that is not stored falls back to the whole tree.
	Select *Selection[I]

	// Label returns the text printed for an id. Defaults to fmt.Sprint.
	// Connector widths follow the display width of this text.
	Label func(I) string

	// Style decorates a node's own label after widths are computed, e.g.
	// to highlight the selected node with terminal colors.
	Style func(id I, label string) string
}

func (c Config[I]) label(id I) string {
	if c.Label != nil {
		return c.Label(id)
	}
	return fmt.Sprint(id)
}

func (c Config[I]) styled(id I, label string) string {
	if c.Style != nil {
		return c.Style(id, label)
	}
	return label
}
