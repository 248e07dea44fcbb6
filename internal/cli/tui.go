package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	pkgio "github.com/matzehuels/rtree/pkg/io"
	"github.com/matzehuels/rtree/pkg/pipeline"
	"github.com/matzehuels/rtree/pkg/report"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// BrowseModel - Interactive windowed report
// =============================================================================

// browseRow is one reachable node in pre-order.
type browseRow struct {
	id     string
	depth  int
	parent int // row index of the parent, -1 for the root
}

// BrowseModel is the bubbletea model for walking a tree. The view is the
// windowed report centered on the node under the cursor.
type BrowseModel struct {
	Tree        *pkgio.Tree
	Cursor      int
	Radius      int
	MaxChildren int
	Wrap        report.ChildWrap
	Labels      bool
	Height      int

	rows []browseRow
}

// NewBrowseModel creates a browse model with the cursor on the root.
func NewBrowseModel(t *pkgio.Tree, radius, maxChildren int, wrap report.ChildWrap, labels bool) BrowseModel {
	m := BrowseModel{
		Tree:        t,
		Radius:      radius,
		MaxChildren: maxChildren,
		Wrap:        wrap,
		Labels:      labels,
		Height:      20,
	}

	var stack []int // row index per depth
	t.Walk(func(n *pkgio.Node, depth int) bool {
		stack = stack[:depth]
		parent := -1
		if depth > 0 {
			parent = stack[depth-1]
		}
		stack = append(stack, len(m.rows))
		m.rows = append(m.rows, browseRow{id: n.ID(), depth: depth, parent: parent})
		return true
	})
	return m
}

// Focus moves the cursor to id. It reports false if id is not reachable.
func (m *BrowseModel) Focus(id string) bool {
	for i, r := range m.rows {
		if r.id == id {
			m.Cursor = i
			return true
		}
	}
	return false
}

// Selected returns the id under the cursor.
func (m BrowseModel) Selected() (string, bool) {
	if len(m.rows) == 0 {
		return "", false
	}
	return m.rows[m.Cursor].id, true
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
			}
		case "left", "h", "p":
			if len(m.rows) > 0 && m.rows[m.Cursor].parent >= 0 {
				m.Cursor = m.rows[m.Cursor].parent
			}
		case "g", "home":
			m.Cursor = 0
		case "G", "end":
			if len(m.rows) > 0 {
				m.Cursor = len(m.rows) - 1
			}
		case "+", "=":
			m.Radius++
		case "-":
			if m.Radius > 0 {
				m.Radius--
			}
		case "]":
			m.MaxChildren++
		case "[":
			if m.MaxChildren > 0 {
				m.MaxChildren--
			}
		case "w":
			if m.Wrap == report.WrapTop {
				m.Wrap = report.WrapBottom
			} else {
				m.Wrap = report.WrapTop
			}
		case "l":
			m.Labels = !m.Labels
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 5
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse Tree"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ move  ← parent  +/- radius  [/] max children  w wrap  l labels  q quit"))
	b.WriteString("\n")

	id, ok := m.Selected()
	if !ok {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("  (empty tree)"))
		return b.String()
	}

	lines := strings.Split(strings.TrimSuffix(m.render(id), "\n"), "\n")
	if len(lines) > m.Height {
		lines = append(lines[:m.Height], listDimStyle.Render("  …"))
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")

	limit := "all"
	if m.MaxChildren > 0 {
		limit = fmt.Sprint(m.MaxChildren)
	}
	status := fmt.Sprintf("  [%d/%d] %s · radius %d · max %s · wrap %s",
		m.Cursor+1, len(m.rows), id, m.Radius, limit, m.Wrap)
	b.WriteString(listDimStyle.Render(status))

	return b.String()
}

// render produces the windowed report around id.
func (m BrowseModel) render(id string) string {
	cfg := report.Config[string]{
		MaxChildren: m.MaxChildren,
		Wrap:        m.Wrap,
		Select:      &report.Selection[string]{ID: id, Radius: m.Radius},
		Style: func(nodeID, label string) string {
			if nodeID == id {
				return listSelectedStyle.Render(label)
			}
			return label
		},
	}
	if m.Labels {
		cfg.Label = pipeline.LabelFunc(m.Tree)
	}
	return report.Report(m.Tree, cfg)
}
