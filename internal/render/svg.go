package render

import (
	"fmt"
	"strings"

	"github.com/gitlanes/gitlanes/internal/config"
	"github.com/gitlanes/gitlanes/internal/graph"
)

// SVG layout constants; one commit per row, one branch column per
// vertical lane.
const (
	svgMargin     = 20
	svgColSpacing = 20
	svgRowHeight  = 26
	svgRowCompact = 16
	svgRadius     = 4
	svgCharWidth  = 7
)

// SVG renders the graph as a standalone SVG document: lane lines,
// fork and merge curves, commit dots and branch labels at the tips.
func SVG(g *graph.Graph, settings *config.Settings) string {
	sr := newSVGRenderer(g, settings)
	var svg strings.Builder

	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="white"/>
`, sr.width, sr.height))

	sr.drawLanes(&svg)
	sr.drawEdges(&svg)
	sr.drawCommits(&svg)
	sr.drawLabels(&svg)

	svg.WriteString("</svg>\n")
	return svg.String()
}

type svgRenderer struct {
	g         *graph.Graph
	settings  *config.Settings
	lanes     []lane
	byBranch  map[int]*lane
	forks     map[int][]int
	rowHeight int
	labelX    int
	width     int
	height    int
}

func newSVGRenderer(g *graph.Graph, settings *config.Settings) *svgRenderer {
	tr := newTextRenderer(g, settings)
	sr := &svgRenderer{
		g:         g,
		settings:  settings,
		lanes:     tr.lanes,
		byBranch:  tr.byBranch,
		forks:     tr.forks,
		rowHeight: svgRowHeight,
	}
	if settings.Compact {
		sr.rowHeight = svgRowCompact
	}

	maxLabel := 0
	for i := range g.AllBranches {
		if n := len(g.AllBranches[i].Name); n > maxLabel {
			maxLabel = n
		}
	}
	cols := g.ColumnCount()
	if cols == 0 {
		cols = 1
	}
	sr.labelX = svgMargin + cols*svgColSpacing
	sr.width = sr.labelX + maxLabel*svgCharWidth + svgMargin
	rows := len(g.Commits)
	if rows == 0 {
		rows = 1
	}
	sr.height = 2*svgMargin + (rows-1)*sr.rowHeight
	return sr
}

func (sr *svgRenderer) x(col int) int { return svgMargin + col*svgColSpacing }

func (sr *svgRenderer) y(idx int) int {
	row := idx
	if sr.settings.Reverse {
		row = len(sr.g.Commits) - 1 - idx
	}
	return svgMargin + row*sr.rowHeight
}

func (sr *svgRenderer) drawLanes(svg *strings.Builder) {
	for _, l := range sr.lanes {
		if l.start == l.end {
			continue
		}
		color := sr.g.AllBranches[l.branch].Vis.SVGColor
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="2"/>`+"\n",
			sr.x(l.col), sr.y(l.start), sr.x(l.col), sr.y(l.end), color))
	}
}

// drawEdges draws the curves that join lanes: one per merge commit
// into the merged lane's first row, one per fork junction from the
// forked lane's last row.
func (sr *svgRenderer) drawEdges(svg *strings.Builder) {
	for idx, c := range sr.g.Commits {
		ownLane := sr.byBranch[c.Owner]
		if ownLane == nil {
			continue
		}
		if c.IsMerge && c.Parents[1] != "" {
			if qi := sr.g.Index(c.Parents[1]); qi != -1 {
				if qLane := sr.byBranch[sr.g.Commits[qi].Owner]; qLane != nil && qLane.col != ownLane.col {
					toRow := qLane.start
					if toRow < idx {
						// the lane passes the merge row; hook into its side
						toRow = idx
					}
					sr.curve(svg, ownLane.col, idx, qLane.col, toRow, sr.g.AllBranches[qLane.branch].Vis.SVGColor)
				}
			}
		}
		for _, fb := range sr.forks[idx] {
			if fLane := sr.byBranch[fb]; fLane != nil && fLane.col != ownLane.col {
				sr.curve(svg, ownLane.col, idx, fLane.col, fLane.end, sr.g.AllBranches[fb].Vis.SVGColor)
			}
		}
	}
}

// curve draws an elbow bezier from a commit point into a lane point,
// bending at the lane's column.
func (sr *svgRenderer) curve(svg *strings.Builder, fromCol, fromRow, toCol, toRow int, color string) {
	x1, y1 := sr.x(fromCol), sr.y(fromRow)
	x2, y2 := sr.x(toCol), sr.y(toRow)
	svg.WriteString(fmt.Sprintf(`<path d="M%d,%d C%d,%d %d,%d %d,%d" stroke="%s" stroke-width="2" fill="none"/>`+"\n",
		x1, y1, x2, y1, x2, y1, x2, y2, color))
}

func (sr *svgRenderer) drawCommits(svg *strings.Builder) {
	for idx, c := range sr.g.Commits {
		ownLane := sr.byBranch[c.Owner]
		if ownLane == nil {
			continue
		}
		color := sr.g.AllBranches[ownLane.branch].Vis.SVGColor
		cx, cy := sr.x(ownLane.col), sr.y(idx)
		if c.IsMerge {
			svg.WriteString(fmt.Sprintf(`<circle cx="%d" cy="%d" r="%d" fill="white" stroke="%s" stroke-width="2"/>`+"\n",
				cx, cy, svgRadius, color))
		} else {
			svg.WriteString(fmt.Sprintf(`<circle cx="%d" cy="%d" r="%d" fill="%s"/>`+"\n",
				cx, cy, svgRadius, color))
		}
	}
}

// drawLabels puts branch and tag names next to the row their tip sits
// on, one text element per row with a colored tspan per name. Only
// real refs and tags are labeled, matching the text decorations.
func (sr *svgRenderer) drawLabels(svg *strings.Builder) {
	for idx, c := range sr.g.Commits {
		attached := append(append([]int{}, c.Branches...), c.Tags...)
		if len(attached) == 0 {
			continue
		}
		var spans strings.Builder
		for k, b := range attached {
			if k > 0 {
				spans.WriteString(`<tspan fill="gray">, </tspan>`)
			}
			br := sr.g.AllBranches[b]
			spans.WriteString(fmt.Sprintf(`<tspan fill="%s">%s</tspan>`, br.Vis.SVGColor, escapeXML(br.Name)))
		}
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-family="monospace" font-size="12">%s</text>`+"\n",
			sr.labelX, sr.y(idx)+svgRadius, spans.String()))
	}
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escapeXML(s string) string { return xmlEscaper.Replace(s) }
