package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitlanes/gitlanes/internal/models"
)

// TestConsolidateDropsUnownedCommits filters out a commit no line
// claimed and shifts every position and range bound onto the filtered
// sequence. The dropped commit sits exactly on a range end, which must
// move backward to the nearest surviving commit.
func TestConsolidateDropsUnownedCommits(t *testing.T) {
	commits := []models.Commit{
		c("f1", "new work", "m1"),
		c("o1", "abandoned", "m1"),
		c("m1", "fix typo", "r"),
		c("r", "initial commit"),
	}
	refs := []models.Ref{local("feature/q", "f1"), local("main", "m1")}

	g, err := Build(commits, refs, nil, headAt("main", "m1"), gitFlow(t))
	require.NoError(t, err)

	require.Len(t, g.Commits, 3)
	assert.Equal(t, -1, g.Index("o1"))
	assert.Equal(t, 1, g.Index("m1"))

	main := branchByName(t, g, "main")
	feature := branchByName(t, g, "feature/q")
	assert.Equal(t, Range{Start: 1, End: 2}, main.Range)
	assert.Equal(t, Range{Start: 0, End: 0}, feature.Range, "end moved off the dropped commit")
	assert.Equal(t, []int{1, 0, 0}, owners(g))
}

// TestConsolidateShiftsStartForward drops a commit sitting on a
// merge-derived start hint; the start moves forward instead.
func TestConsolidateShiftsStartForward(t *testing.T) {
	commits := []models.Commit{
		c("M", "Merge branch 'feature/w'", "m0", "f2"),
		c("z", "abandoned", "m0"),
		c("f2", "finish widget", "m0"),
		c("m0", "bump version", "r"),
		c("r", "initial commit"),
	}
	refs := []models.Ref{local("main", "M")}

	g, err := Build(commits, refs, nil, headAt("main", "M"), gitFlow(t))
	require.NoError(t, err)

	require.Len(t, g.Commits, 4)
	assert.Equal(t, -1, g.Index("z"))

	feature := branchByName(t, g, "feature/w")
	assert.Equal(t, Range{Start: 1, End: 1}, feature.Range)
	assert.Equal(t, Range{Start: 0, End: 3}, branchByName(t, g, "main").Range)
	assert.Equal(t, []int{0, 1, 0, 0}, owners(g))
}

// TestConsolidateKeepsEmptyRealBranches keeps an unmerged ref whose
// trace claimed nothing, so its label still renders at the tip.
func TestConsolidateKeepsEmptyRealBranches(t *testing.T) {
	commits := []models.Commit{
		c("m1", "only commit"),
	}
	refs := []models.Ref{local("main", "m1"), local("alias", "m1")}

	g, err := Build(commits, refs, nil, headAt("main", "m1"), gitFlow(t))
	require.NoError(t, err)

	require.Len(t, g.AllBranches, 2)
	alias := branchByName(t, g, "alias")
	assert.True(t, alias.Range.Empty())
	assert.ElementsMatch(t, []int{0, 1}, g.Commits[0].Branches, "both labels survive on the tip")
}

// TestConsolidateDropsUnresolvableTips drops refs pointing outside the
// arena entirely.
func TestConsolidateDropsUnresolvableTips(t *testing.T) {
	commits := []models.Commit{
		c("m1", "only commit"),
	}
	refs := []models.Ref{local("main", "m1"), local("stale", "gone")}

	g, err := Build(commits, refs, nil, headAt("main", "m1"), gitFlow(t))
	require.NoError(t, err)

	require.Len(t, g.AllBranches, 1)
	assert.Equal(t, "main", g.AllBranches[0].Name)
}
