// Package render draws a computed history graph: colored text lanes
// for terminal output and a standalone SVG document. Rendering is
// read-only over the graph; all layout decisions were made by the
// engine.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/gitlanes/gitlanes/internal/config"
	"github.com/gitlanes/gitlanes/internal/graph"
)

// Row is one rendered line. Commit holds the graph position the line
// belongs to, or -1 for connector-only spacer lines.
type Row struct {
	Text   string
	Commit int
}

const noCommit = -1

// Glyphs for the lane grid. Each branch column occupies two character
// cells; the odd cells carry fork and merge connectors.
const (
	glyphCommit = '●'
	glyphMerge  = '◉'
	laneVert    = '│'
	laneHor     = '─'
	laneCross   = '┼'
	leftDown    = '╮'
	leftUp      = '╯'
	rightDown   = '╭'
	rightUp     = '╰'
	joinLeft    = '┤'
	joinRight   = '├'
)

// Text renders the graph as terminal rows, newest commit first unless
// the settings reverse it.
func Text(g *graph.Graph, settings *config.Settings) []Row {
	tr := newTextRenderer(g, settings)
	blocks := make([][]Row, 0, len(g.Commits))
	last := len(g.Commits) - 1

	for idx, c := range g.Commits {
		block := tr.commitBlock(idx, c)
		blocks = append(blocks, block)
		if !settings.Compact && idx != last {
			blocks = append(blocks, []Row{{Text: tr.rowText(tr.spacerRow(idx), false), Commit: noCommit}})
		}
	}

	if settings.Reverse {
		for i, j := 0, len(blocks)-1; i < j; i, j = i+1, j-1 {
			blocks[i], blocks[j] = blocks[j], blocks[i]
		}
	}

	var rows []Row
	for _, b := range blocks {
		rows = append(rows, b...)
	}
	return rows
}

// Join flattens rendered rows into one printable string.
func Join(rows []Row) string {
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.Text)
	}
	return b.String()
}

// lane is the drawable extent of one branch: its column, the rows its
// line covers, and the visual span stretched to the junction rows
// where connectors bend into it. The span keeps the line unbroken
// between a corner and the nearest owned commit.
type lane struct {
	branch       int
	col          int
	start, end   int
	vStart, vEnd int
	color        uint8
}

type textRenderer struct {
	g        *graph.Graph
	settings *config.Settings
	lanes    []lane
	byBranch map[int]*lane
	// forks lists, per junction row, the branches whose lane curves
	// into the commit on that row.
	forks map[int][]int
	width int
}

func newTextRenderer(g *graph.Graph, settings *config.Settings) *textRenderer {
	tr := &textRenderer{
		g:        g,
		settings: settings,
		byBranch: make(map[int]*lane),
		forks:    make(map[int][]int),
		width:    g.ColumnCount() * 2,
	}

	lastRow := len(g.Commits) - 1
	for i := range g.AllBranches {
		b := &g.AllBranches[i]
		if b.Vis.Column == -1 || b.Range.Empty() {
			continue
		}
		start, end := b.Range.Start, b.Range.End
		if start == -1 {
			start = 0
		}
		if end == -1 {
			end = lastRow
		}
		tr.lanes = append(tr.lanes, lane{
			branch: i,
			col:    b.Vis.Column,
			start:  start,
			end:    end,
			vStart: start,
			vEnd:   end,
			color:  b.Vis.TermColor,
		})
	}
	for i := range tr.lanes {
		tr.byBranch[tr.lanes[i].branch] = &tr.lanes[i]
	}

	// A fork junction sits on the first-parent of a branch's oldest
	// owned commit when another branch owns that parent. Branch order
	// keeps the connector draw order stable.
	oldest := make([]int, len(g.AllBranches))
	for i := range oldest {
		oldest[i] = -1
	}
	for idx, c := range g.Commits {
		if c.Owner != -1 {
			oldest[c.Owner] = idx
		}
	}
	for b, oi := range oldest {
		if oi == -1 {
			continue
		}
		parent := g.Commits[oi].Parents[0]
		if parent == "" {
			continue
		}
		pi := g.Index(parent)
		if pi == -1 || g.Commits[pi].Owner == b {
			continue
		}
		if _, ok := tr.byBranch[b]; ok {
			tr.forks[pi] = append(tr.forks[pi], b)
		}
	}

	for idx, c := range g.Commits {
		if _, other := tr.mergeLanes(c); other != nil && idx < other.vStart {
			other.vStart = idx
		}
	}
	for pi, fbs := range tr.forks {
		for _, fb := range fbs {
			if fl := tr.byBranch[fb]; fl != nil && pi > fl.vEnd {
				fl.vEnd = pi
			}
		}
	}
	return tr
}

// mergeLanes resolves the two lanes a merge row connects: the lane of
// the commit itself and the lane owning its second parent. Either is
// nil when the merge has nothing to bend into.
func (tr *textRenderer) mergeLanes(c *graph.Commit) (own, other *lane) {
	if !c.IsMerge || c.Parents[1] == "" {
		return nil, nil
	}
	own = tr.byBranch[c.Owner]
	if own == nil {
		return nil, nil
	}
	qi := tr.g.Index(c.Parents[1])
	if qi == -1 {
		return nil, nil
	}
	qb := tr.g.Commits[qi].Owner
	if qb == -1 || qb == c.Owner {
		return nil, nil
	}
	other = tr.byBranch[qb]
	if other == nil || other.col == own.col {
		return nil, nil
	}
	return own, other
}

func (tr *textRenderer) commitBlock(idx int, c *graph.Commit) []Row {
	buf := tr.commitRow(idx, c)
	text := tr.describe(c)

	rows := []Row{{Text: tr.rowText(buf, true) + "  " + text[0], Commit: idx}}
	for _, extra := range text[1:] {
		spacer := tr.spacerRow(idx)
		rows = append(rows, Row{Text: tr.rowText(spacer, true) + "  " + extra, Commit: idx})
	}
	return rows
}

// rowText renders the cells, styling runs of equal color together
// when coloring is on. With pad unset, trailing blanks are trimmed.
func (tr *textRenderer) rowText(b *rowBuf, pad bool) string {
	return b.text(pad, tr.settings.Colored, tr.settings.Ascii)
}

// commitRow draws the lane cells for one commit: vertical lanes,
// fork and merge connectors, then the commit glyph on top.
func (tr *textRenderer) commitRow(idx int, c *graph.Commit) *rowBuf {
	buf := newRowBuf(tr.width)
	for _, l := range tr.lanes {
		inRange := l.start <= idx && idx <= l.end
		inSpan := l.vStart < idx && idx < l.vEnd
		if inRange || inSpan {
			buf.set(l.col*2, laneVert, int(l.color))
		}
	}

	ownLane := tr.byBranch[c.Owner]

	if own, other := tr.mergeLanes(c); other != nil {
		tr.drawConnector(buf, own.col, other.col, int(other.color), true)
	}

	for _, fb := range tr.forks[idx] {
		fLane := tr.byBranch[fb]
		if fLane == nil || ownLane == nil || fLane.col == ownLane.col {
			continue
		}
		tr.drawConnector(buf, ownLane.col, fLane.col, int(fLane.color), false)
	}

	if ownLane != nil {
		glyph := glyphCommit
		if c.IsMerge {
			glyph = glyphMerge
		}
		buf.set(ownLane.col*2, glyph, int(ownLane.color))
	}
	return buf
}

// drawConnector draws a horizontal run from the commit's column to the
// joining lane's column, ending in a corner that bends down toward a
// merged lane or up toward a forked one. Reverse rendering flips the
// bend.
func (tr *textRenderer) drawConnector(buf *rowBuf, from, to, color int, down bool) {
	if tr.settings.Reverse {
		down = !down
	}
	lo, hi := from*2, to*2
	if lo > hi {
		lo, hi = hi, lo
	}
	for pos := lo + 1; pos < hi; pos++ {
		if buf.runes[pos] == laneVert {
			buf.set(pos, laneCross, color)
		} else {
			buf.set(pos, laneHor, color)
		}
	}

	corner := cornerRune(to > from, down)
	pos := to * 2
	if buf.runes[pos] == laneVert {
		if to > from {
			corner = joinLeft
		} else {
			corner = joinRight
		}
	}
	buf.set(pos, corner, color)
}

func cornerRune(rightward, down bool) rune {
	switch {
	case rightward && down:
		return leftDown
	case rightward:
		return leftUp
	case down:
		return rightDown
	default:
		return rightUp
	}
}

// spacerRow draws the lanes that pass between row idx and the next.
func (tr *textRenderer) spacerRow(idx int) *rowBuf {
	buf := newRowBuf(tr.width)
	for _, l := range tr.lanes {
		if l.vStart <= idx && idx < l.vEnd {
			buf.set(l.col*2, laneVert, int(l.color))
		}
	}
	return buf
}

// describe builds the text part of a commit row: hash, ref
// decorations, message, and for the short format a second line with
// author and date.
func (tr *textRenderer) describe(c *graph.Commit) []string {
	parts := []string{tr.paint(c.Info.ShortHash, "3")}
	if deco := tr.decorations(c); deco != "" {
		parts = append(parts, deco)
	}
	parts = append(parts, c.Info.Message)

	if tr.settings.Format == config.FormatShort {
		detail := fmt.Sprintf("%s <%s>, %s",
			c.Info.Author, c.Info.Email, c.Info.Date.Format("2006-01-02 15:04"))
		return []string{
			strings.Join(parts, " "),
			tr.paint(detail, "244"),
		}
	}

	parts = append(parts,
		tr.paint("- "+RelativeTime(c.Info.Date), "244"),
		tr.paint("<"+c.Info.Author+">", "6"),
	)
	return []string{strings.Join(parts, " ")}
}

// decorations renders the "(HEAD -> main, origin/main, tags/v1.0)"
// group for refs attached to this commit, each name in its branch
// color.
func (tr *textRenderer) decorations(c *graph.Commit) string {
	headHere := tr.g.Head.Hash == c.Hash

	var names []string
	if headHere && !tr.g.Head.IsBranch {
		names = append(names, tr.paint("HEAD", "6"))
	}
	for _, b := range c.Branches {
		br := tr.g.AllBranches[b]
		name := br.Name
		if headHere && tr.g.Head.IsBranch && !br.IsRemote && name == tr.g.Head.Name {
			name = "HEAD -> " + name
		}
		names = append(names, tr.paintColor(name, br.Vis.TermColor))
	}
	for _, t := range c.Tags {
		br := tr.g.AllBranches[t]
		names = append(names, tr.paintColor(br.Name, br.Vis.TermColor))
	}

	if len(names) == 0 {
		return ""
	}
	return "(" + strings.Join(names, ", ") + ")"
}

func (tr *textRenderer) paint(s, color string) string {
	if !tr.settings.Colored {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(s)
}

func (tr *textRenderer) paintColor(s string, color uint8) string {
	if !tr.settings.Colored {
		return s
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(strconv.Itoa(int(color)))).
		Bold(true).
		Render(s)
}

// rowBuf is one line of lane cells with a color per cell; -1 leaves
// the cell unstyled.
type rowBuf struct {
	runes  []rune
	colors []int
}

func newRowBuf(width int) *rowBuf {
	b := &rowBuf{runes: make([]rune, width), colors: make([]int, width)}
	for i := range b.runes {
		b.runes[i] = ' '
		b.colors[i] = -1
	}
	return b
}

func (b *rowBuf) set(pos int, ch rune, color int) {
	if pos < 0 || pos >= len(b.runes) {
		return
	}
	b.runes[pos] = ch
	b.colors[pos] = color
}

// asciiGlyphs maps the box-drawing cells to their ASCII stand-ins.
// Down-bending corners become dots, up-bending ones apostrophes.
var asciiGlyphs = map[rune]rune{
	glyphCommit: '*',
	glyphMerge:  'o',
	laneVert:    '|',
	laneHor:     '-',
	laneCross:   '+',
	leftDown:    '.',
	rightDown:   '.',
	leftUp:      '\'',
	rightUp:     '\'',
	joinLeft:    '+',
	joinRight:   '+',
}

func (b *rowBuf) text(pad, colored, ascii bool) string {
	runes := b.runes
	if ascii {
		runes = make([]rune, len(b.runes))
		for i, r := range b.runes {
			if a, ok := asciiGlyphs[r]; ok {
				r = a
			}
			runes[i] = r
		}
	}

	end := len(runes)
	if !pad {
		for end > 0 && runes[end-1] == ' ' {
			end--
		}
	}
	if !colored {
		return string(runes[:end])
	}

	var sb strings.Builder
	i := 0
	for i < end {
		j := i + 1
		for j < end && b.colors[j] == b.colors[i] {
			j++
		}
		seg := string(runes[i:j])
		if c := b.colors[i]; c >= 0 {
			seg = lipgloss.NewStyle().
				Foreground(lipgloss.Color(strconv.Itoa(c))).
				Render(seg)
		}
		sb.WriteString(seg)
		i = j
	}
	return sb.String()
}

// RelativeTime renders a timestamp as a coarse "n units ago" phrase.
func RelativeTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%d min ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(diff.Hours()/24))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%d weeks ago", int(diff.Hours()/24/7))
	case diff < 365*24*time.Hour:
		return fmt.Sprintf("%d months ago", int(diff.Hours()/24/30))
	default:
		return fmt.Sprintf("%d years ago", int(diff.Hours()/24/365))
	}
}
