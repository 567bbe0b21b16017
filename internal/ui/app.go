// Package ui is the interactive graph browser. It is strictly
// read-only: every view renders data the engine already computed and
// no key mutates the repository.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gitlanes/gitlanes/internal/config"
	"github.com/gitlanes/gitlanes/internal/graph"
	"github.com/gitlanes/gitlanes/internal/render"
)

// Loader materializes a fresh graph; the app calls it on start and on
// refresh.
type Loader func() (*graph.Graph, error)

// StatusFunc summarizes the working tree for the header. A nil func
// leaves the header without repository state.
type StatusFunc func() (string, error)

type errMsg struct {
	err error
}

type statusMsg struct {
	status string
}

type graphLoadedMsg struct {
	graph *graph.Graph
	rows  []render.Row
}

type mode int

const (
	modeGraph mode = iota
	modeBranches
	modeDetail
)

type Model struct {
	loader   Loader
	status   StatusFunc
	settings *config.Settings

	width  int
	height int
	mode   mode

	graph      *graph.Graph
	graphView  *GraphView
	branchView *BranchView
	detailView *CommitView

	filter    textinput.Model
	filtering bool

	statusText string
	err        error
}

func NewModel(loader Loader, status StatusFunc, settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = "branch or tag name"
	ti.CharLimit = 100
	ti.Width = 40

	return Model{
		loader:     loader,
		status:     status,
		settings:   settings,
		graphView:  NewGraphView(),
		branchView: NewBranchView(),
		filter:     ti,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadGraph(),
		m.loadStatus(),
	)
}

func (m Model) loadGraph() tea.Cmd {
	return func() tea.Msg {
		g, err := m.loader()
		if err != nil {
			return errMsg{err}
		}
		return graphLoadedMsg{graph: g, rows: render.Text(g, m.settings)}
	}
}

func (m Model) loadStatus() tea.Cmd {
	if m.status == nil {
		return nil
	}
	return func() tea.Msg {
		status, err := m.status()
		if err != nil {
			status = "unknown"
		}
		return statusMsg{status}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.filtering {
		return m.updateFilter(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "r":
			return m, tea.Batch(
				m.loadGraph(),
				m.loadStatus(),
			)

		case "b", "tab":
			if m.mode == modeBranches {
				m.mode = modeGraph
			} else {
				m.mode = modeBranches
			}
			return m, nil

		case "enter":
			switch m.mode {
			case modeGraph:
				if c := m.graphView.SelectedCommit(); c != nil {
					m.detailView = NewCommitView(m.graph, c)
					m.mode = modeDetail
				}
			case modeBranches:
				if b := m.branchView.SelectedBranch(); b != nil {
					m.graphView.JumpTo(b.Target)
					m.mode = modeGraph
				}
			case modeDetail:
				m.mode = modeGraph
			}
			return m, nil

		case "esc":
			if m.mode != modeGraph {
				m.mode = modeGraph
				return m, nil
			}

		case "/":
			if m.mode == modeGraph && m.graph != nil {
				m.filtering = true
				m.filter.SetValue("")
				m.filter.Focus()
				return m, textinput.Blink
			}
		}

	case graphLoadedMsg:
		m.graph = msg.graph
		m.err = nil
		m.graphView.SetGraph(msg.graph, msg.rows)
		m.branchView.SetGraph(msg.graph)

	case statusMsg:
		m.statusText = msg.status

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.graphView, _ = m.graphView.Update(msg)
		m.branchView, _ = m.branchView.Update(msg)
		if m.detailView != nil {
			m.detailView, _ = m.detailView.Update(msg)
		}
		return m, nil
	}

	switch m.mode {
	case modeBranches:
		m.branchView, cmd = m.branchView.Update(msg)
	case modeDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	default:
		m.graphView, cmd = m.graphView.Update(msg)
	}

	return m, cmd
}

func (m Model) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.filtering = false
			m.filter.Blur()
			if target, ok := m.findBranch(m.filter.Value()); ok {
				m.graphView.JumpTo(target)
			}
			return m, nil
		case "esc":
			m.filtering = false
			m.filter.Blur()
			return m, nil
		}
	}

	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

// findBranch resolves a query to the tip hash of the first real branch
// or tag whose name contains it. Exact matches win over substring
// matches.
func (m Model) findBranch(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if m.graph == nil || q == "" {
		return "", false
	}

	partial := ""
	for i := range m.graph.AllBranches {
		b := &m.graph.AllBranches[i]
		if b.IsMerged {
			continue
		}
		name := strings.ToLower(b.Name)
		if name == q {
			return b.Target, true
		}
		if partial == "" && strings.Contains(name, q) {
			partial = b.Target
		}
	}
	return partial, partial != ""
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	header := m.renderHeader()

	var content string
	switch m.mode {
	case modeBranches:
		content = m.branchView.View()
	case modeDetail:
		content = m.detailView.View()
	default:
		content = m.graphView.View()
	}

	footer := m.renderFooter()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		footer,
	)
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("170")).
		MarginRight(2)

	branchStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("green")).
		Bold(true)

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	dividerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238"))

	title := titleStyle.Render("gitlanes")
	info := ""
	if m.graph != nil {
		state := m.settings.Model
		if m.statusText != "" {
			state = m.statusText + ", " + state
		}
		info = branchStyle.Render(m.graph.Head.Name) + " " +
			statusStyle.Render(fmt.Sprintf("(%s, %d commits, %d branches)",
				state, len(m.graph.Commits), len(m.graph.Branches)))
	}

	headerLine := lipgloss.JoinHorizontal(lipgloss.Top, title, info)
	divider := dividerStyle.Render(strings.Repeat("─", m.width))

	return lipgloss.JoinVertical(lipgloss.Left, headerLine, divider)
}

func (m Model) renderFooter() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	promptStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	dividerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238"))

	divider := dividerStyle.Render(strings.Repeat("─", m.width))

	if m.filtering {
		return lipgloss.JoinVertical(lipgloss.Left, divider,
			promptStyle.Render("find: ")+m.filter.View())
	}

	var keys []string
	switch m.mode {
	case modeBranches:
		keys = []string{
			"j/k: navigate",
			"enter: jump to tip",
			"tab: graph",
			"q: quit",
		}
	case modeDetail:
		keys = []string{
			"esc: back",
			"q: quit",
		}
	default:
		keys = []string{
			"j/k: navigate",
			"g/G: top/bottom",
			"enter: details",
			"b: branches",
			"/: find",
			"r: refresh",
			"q: quit",
		}
	}

	helpText := helpStyle.Render(strings.Join(keys, " • "))

	return lipgloss.JoinVertical(lipgloss.Left, divider, helpText)
}
