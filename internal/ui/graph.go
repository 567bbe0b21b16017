package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gitlanes/gitlanes/internal/graph"
	"github.com/gitlanes/gitlanes/internal/render"
)

// GraphView scrolls the rendered lane graph. The cursor sits on a row
// index; spacer rows scroll past but are never selectable.
type GraphView struct {
	graph  *graph.Graph
	rows   []render.Row
	rowOf  []int // first display row per commit position
	cursor int
	offset int
	height int
	width  int
}

func NewGraphView() *GraphView {
	return &GraphView{}
}

// SetGraph swaps in a freshly rendered graph, keeping the cursor in
// place when it still points at a commit row.
func (g *GraphView) SetGraph(gr *graph.Graph, rows []render.Row) {
	g.graph = gr
	g.rows = rows

	g.rowOf = make([]int, len(gr.Commits))
	for i := range g.rowOf {
		g.rowOf[i] = -1
	}
	for ri, r := range rows {
		if r.Commit >= 0 && g.rowOf[r.Commit] == -1 {
			g.rowOf[r.Commit] = ri
		}
	}

	if g.cursor >= len(rows) {
		g.cursor = 0
		g.offset = 0
	}
	if len(rows) > 0 && rows[g.cursor].Commit < 0 {
		g.cursor = g.nearestCommitRow(g.cursor, 1)
	}
	g.scrollIntoView()
}

func (g *GraphView) Update(msg tea.Msg) (*GraphView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			g.moveCursor(1)

		case "k", "up":
			g.moveCursor(-1)

		case "g":
			g.cursor = g.nearestCommitRow(0, 1)
			g.offset = 0

		case "G":
			g.cursor = g.nearestCommitRow(len(g.rows)-1, -1)
			g.scrollIntoView()
		}

	case tea.WindowSizeMsg:
		g.width = msg.Width
		g.height = msg.Height
		g.scrollIntoView()
	}

	return g, nil
}

// moveCursor steps to the next commit row in the given direction,
// skipping spacers.
func (g *GraphView) moveCursor(dir int) {
	for r := g.cursor + dir; r >= 0 && r < len(g.rows); r += dir {
		if g.rows[r].Commit >= 0 {
			g.cursor = r
			break
		}
	}
	g.scrollIntoView()
}

// nearestCommitRow finds the first commit row at or after from in the
// given direction, falling back to row 0.
func (g *GraphView) nearestCommitRow(from, dir int) int {
	for r := from; r >= 0 && r < len(g.rows); r += dir {
		if g.rows[r].Commit >= 0 {
			return r
		}
	}
	return 0
}

func (g *GraphView) visibleRows() int {
	v := g.height - 4 // header and footer chrome
	if v < 1 {
		v = 1
	}
	return v
}

func (g *GraphView) scrollIntoView() {
	visible := g.visibleRows()
	if g.cursor < g.offset {
		g.offset = g.cursor
	}
	if g.cursor >= g.offset+visible {
		g.offset = g.cursor - visible + 1
	}
	if g.offset < 0 {
		g.offset = 0
	}
}

// JumpTo moves the cursor to the commit with the given hash, if it is
// part of the graph.
func (g *GraphView) JumpTo(hash string) {
	if g.graph == nil {
		return
	}
	idx := g.graph.Index(hash)
	if idx < 0 || idx >= len(g.rowOf) || g.rowOf[idx] == -1 {
		return
	}
	g.cursor = g.rowOf[idx]
	g.scrollIntoView()
}

func (g *GraphView) View() string {
	if len(g.rows) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("Loading graph...")
	}

	selectedStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("238"))

	var b strings.Builder

	start := g.offset
	end := start + g.visibleRows()
	if end > len(g.rows) {
		end = len(g.rows)
	}

	for r := start; r < end; r++ {
		line := g.rows[r].Text
		if r == g.cursor {
			line = selectedStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

// SelectedCommit returns the commit under the cursor, or nil before
// the first load.
func (g *GraphView) SelectedCommit() *graph.Commit {
	if g.graph == nil || g.cursor < 0 || g.cursor >= len(g.rows) {
		return nil
	}
	idx := g.rows[g.cursor].Commit
	if idx < 0 || idx >= len(g.graph.Commits) {
		return nil
	}
	return g.graph.Commits[idx]
}
