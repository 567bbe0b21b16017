package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gitlanes/gitlanes/internal/graph"
)

// BranchView lists the branch records of the computed graph: a color
// swatch, the name, and the layout the engine assigned.
type BranchView struct {
	graph  *graph.Graph
	order  []int // positions into AllBranches, branches before tags
	cursor int
	width  int
	height int
}

func NewBranchView() *BranchView {
	return &BranchView{}
}

func (b *BranchView) SetGraph(g *graph.Graph) {
	b.graph = g
	b.order = append(append([]int{}, g.Branches...), g.Tags...)
	if b.cursor >= len(b.order) {
		b.cursor = 0
	}
}

func (b *BranchView) Update(msg tea.Msg) (*BranchView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if b.cursor < len(b.order)-1 {
				b.cursor++
			}

		case "k", "up":
			if b.cursor > 0 {
				b.cursor--
			}

		case "g":
			b.cursor = 0

		case "G":
			b.cursor = len(b.order) - 1
		}

	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
	}

	return b, nil
}

func (b *BranchView) View() string {
	if b.graph == nil || len(b.order) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("No branches")
	}

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("cyan")).
		Bold(true).
		MarginBottom(1)

	detailStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	selectedStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("238"))

	var out strings.Builder

	header := fmt.Sprintf("Branches (%d branches, %d tags)", len(b.graph.Branches), len(b.graph.Tags))
	out.WriteString(headerStyle.Render(header) + "\n")

	for i, bi := range b.order {
		br := &b.graph.AllBranches[bi]

		nameStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(strconv.Itoa(int(br.Vis.TermColor)))).
			Bold(true)

		line := nameStyle.Render("● "+br.Name) + " " + detailStyle.Render(describeBranch(br))

		if i == b.cursor {
			line = selectedStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}

		out.WriteString(line + "\n")
	}

	return out.String()
}

// describeBranch summarizes the layout of one branch record.
func describeBranch(br *graph.Branch) string {
	var parts []string
	if br.Vis.Column != -1 {
		parts = append(parts, fmt.Sprintf("column %d", br.Vis.Column))
	}
	if br.Range.Empty() {
		parts = append(parts, "no line")
	} else {
		parts = append(parts, fmt.Sprintf("rows %s..%s", bound(br.Range.Start), bound(br.Range.End)))
	}
	if br.IsMerged {
		parts = append(parts, "merged")
	}
	if br.IsRemote {
		parts = append(parts, "remote")
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func bound(v int) string {
	if v == -1 {
		return "open"
	}
	return strconv.Itoa(v)
}

func (b *BranchView) SelectedBranch() *graph.Branch {
	if b.graph == nil || b.cursor < 0 || b.cursor >= len(b.order) {
		return nil
	}
	return &b.graph.AllBranches[b.order[b.cursor]]
}
