package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gitlanes/gitlanes/internal/graph"
	"github.com/gitlanes/gitlanes/internal/render"
)

// CommitView is the read-only details pane for one commit.
type CommitView struct {
	graph  *graph.Graph
	commit *graph.Commit
	width  int
	height int
}

func NewCommitView(g *graph.Graph, c *graph.Commit) *CommitView {
	return &CommitView{graph: g, commit: c}
}

func (c *CommitView) Update(msg tea.Msg) (*CommitView, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		c.width = size.Width
		c.height = size.Height
	}
	return c, nil
}

func (c *CommitView) View() string {
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("cyan")).
		Bold(true).
		Width(8)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("white"))

	hashStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("yellow"))

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	info := c.commit.Info

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + " " + value + "\n")
	}

	row("commit", hashStyle.Render(info.Hash))
	row("author", valueStyle.Render(fmt.Sprintf("%s <%s>", info.Author, info.Email)))
	row("date", valueStyle.Render(info.Date.Format("2006-01-02 15:04:05"))+
		" "+dimStyle.Render("("+render.RelativeTime(info.Date)+")"))

	if c.commit.Owner != -1 {
		owner := &c.graph.AllBranches[c.commit.Owner]
		branchStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(strconv.Itoa(int(owner.Vis.TermColor)))).
			Bold(true)
		row("branch", branchStyle.Render(owner.Name))
	}

	if len(info.Parents) > 0 {
		row("parents", hashStyle.Render(strings.Join(info.Parents, " ")))
	}

	if refs := c.refNames(); len(refs) > 0 {
		row("refs", dimStyle.Render(strings.Join(refs, ", ")))
	}

	b.WriteString("\n" + valueStyle.Render(info.Message) + "\n")

	return b.String()
}

func (c *CommitView) refNames() []string {
	var names []string
	for _, b := range c.commit.Branches {
		names = append(names, c.graph.AllBranches[b].Name)
	}
	for _, t := range c.commit.Tags {
		names = append(names, c.graph.AllBranches[t].Name)
	}
	return names
}
