package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitlanes/gitlanes/internal/config"
	"github.com/gitlanes/gitlanes/internal/graph"
	"github.com/gitlanes/gitlanes/internal/models"
	"github.com/gitlanes/gitlanes/internal/render"
)

func TestSVGDocument(t *testing.T) {
	settings := plainSettings(t)
	g := mergedFeature(t)

	svg := render.SVG(g, settings)

	// two columns, longest label "feature/x" (9 chars), five rows
	assert.Contains(t, svg, `<svg width="143" height="144"`)
	assert.Contains(t, svg, `<rect width="100%" height="100%" fill="white"/>`)
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))

	// main runs rows 0..4 in column 0, feature rows 1..3 in column 1
	assert.Contains(t, svg, `<line x1="20" y1="20" x2="20" y2="124" stroke="blue" stroke-width="2"/>`)
	assert.Contains(t, svg, `<line x1="40" y1="46" x2="40" y2="98" stroke="magenta" stroke-width="2"/>`)

	// the merge commit is hollow, regular commits are filled
	assert.Contains(t, svg, `<circle cx="20" cy="20" r="4" fill="white" stroke="blue" stroke-width="2"/>`)
	assert.Contains(t, svg, `<circle cx="40" cy="46" r="4" fill="magenta"/>`)
	assert.Contains(t, svg, `<circle cx="20" cy="124" r="4" fill="blue"/>`)

	assert.Contains(t, svg, `<tspan fill="blue">main</tspan>`)
	assert.Contains(t, svg, `<tspan fill="green">tags/v1.0</tspan>`)
	assert.NotContains(t, svg, `>feature/x</tspan>`, "merge-derived names are not labeled")
}

func TestSVGEdges(t *testing.T) {
	settings := plainSettings(t)
	g := mergedFeature(t)

	svg := render.SVG(g, settings)

	// merge curve bends from the merge commit into the feature lane's
	// first row, the fork curve from the root into its last row
	assert.Contains(t, svg, `<path d="M20,20 C40,20 40,20 40,46" stroke="magenta" stroke-width="2" fill="none"/>`)
	assert.Contains(t, svg, `<path d="M20,124 C40,124 40,124 40,98" stroke="magenta" stroke-width="2" fill="none"/>`)
}

func TestSVGReverse(t *testing.T) {
	settings := plainSettings(t)
	settings.Reverse = true
	g := mergedFeature(t)

	svg := render.SVG(g, settings)

	// row 0 maps to the bottom
	assert.Contains(t, svg, `<circle cx="20" cy="124" r="4" fill="white" stroke="blue" stroke-width="2"/>`)
	assert.Contains(t, svg, `<line x1="20" y1="124" x2="20" y2="20" stroke="blue" stroke-width="2"/>`)
}

func TestSVGCompactRowHeight(t *testing.T) {
	settings := plainSettings(t)
	settings.Compact = true
	g := mergedFeature(t)

	svg := render.SVG(g, settings)
	assert.Contains(t, svg, `height="104"`)
}

func TestSVGEscapesNames(t *testing.T) {
	settings := plainSettings(t)
	commits := []models.Commit{c("r", "begin")}
	refs := []models.Ref{{Name: "refs/heads/a&b", Hash: "r"}}
	head := models.Head{Hash: "r", Name: "a&b", IsBranch: true}

	builder, err := config.Builtin("git-flow")
	require.NoError(t, err)
	g, err := graph.Build(commits, refs, nil, head, builder)
	require.NoError(t, err)

	svg := render.SVG(g, settings)
	assert.Contains(t, svg, `<tspan fill="gray">a&amp;b</tspan>`)
	assert.NotContains(t, svg, `>a&b<`)
}
