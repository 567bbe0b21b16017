package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitlanes/gitlanes/internal/models"
)

func arena(t *testing.T, commits ...models.Commit) ([]*Commit, map[string]int) {
	t.Helper()
	arena, indices, err := indexCommits(commits)
	require.NoError(t, err)
	require.NoError(t, assignChildren(arena, indices))
	return arena, indices
}

func names(candidates []Branch) []string {
	res := make([]string, len(candidates))
	for i, c := range candidates {
		res[i] = c.Name
	}
	return res
}

// TestCatalogOrder sorts candidates by persistence rank, real branches
// before merge-derived ones at equal rank, tags always last.
func TestCatalogOrder(t *testing.T) {
	commits, indices := arena(t,
		c("M", "Merge branch 'feature/q'", "a", "b"),
		c("a", "root one"),
		c("b", "root two"),
	)
	refs := []models.Ref{
		local("zzz", "b"),
		local("main", "M"),
		local("develop", "a"),
	}
	tags := []models.Tag{annotated("v9", "b")}

	candidates := buildCatalog(commits, indices, refs, tags, gitFlow(t))

	require.Equal(t, []string{"main", "develop", "feature/q", "zzz", "tags/v9"}, names(candidates))
	assert.Equal(t, []uint8{0, 1, 2, 5, 6}, []uint8{
		candidates[0].Persistence,
		candidates[1].Persistence,
		candidates[2].Persistence,
		candidates[3].Persistence,
		candidates[4].Persistence,
	})
	assert.True(t, candidates[2].IsMerged)
	assert.Equal(t, "M", candidates[2].MergeTarget)
	assert.Equal(t, "b", candidates[2].Target, "merge-derived candidate targets the second parent")
	assert.Equal(t, 1, candidates[2].Range.Start, "start hint is one past the merge commit")
	assert.True(t, candidates[4].IsTag)
}

// TestCatalogRealBeforeMergedAtEqualRank pins the tie-break within one
// persistence rank.
func TestCatalogRealBeforeMergedAtEqualRank(t *testing.T) {
	commits, indices := arena(t,
		c("M", "Merge branch 'feature/old'", "a", "b"),
		c("a", "root one"),
		c("b", "root two"),
	)
	refs := []models.Ref{local("feature/new", "a")}

	candidates := buildCatalog(commits, indices, refs, nil, gitFlow(t))

	require.Equal(t, []string{"feature/new", "feature/old"}, names(candidates))
	assert.False(t, candidates[0].IsMerged)
	assert.True(t, candidates[1].IsMerged)
}

// TestCatalogUnknownSummary falls back to a placeholder name when no
// merge pattern captures a branch.
func TestCatalogUnknownSummary(t *testing.T) {
	commits, indices := arena(t,
		c("M", "Update dependencies", "a", "b"),
		c("a", "root one"),
		c("b", "root two"),
	)

	candidates := buildCatalog(commits, indices, nil, nil, gitFlow(t))

	require.Len(t, candidates, 1)
	assert.Equal(t, "unknown", candidates[0].Name)
	assert.True(t, candidates[0].IsMerged)
}

// TestCatalogSkipsMalformedRefs drops refs outside their namespace and
// refs with undecodable names, keeping everything else.
func TestCatalogSkipsMalformedRefs(t *testing.T) {
	commits, indices := arena(t, c("m1", "only commit"))
	refs := []models.Ref{
		{Name: "ok", Hash: "m1"},
		{Name: "refs/heads/ok", Hash: "m1"},
		{Name: "refs/heads/origin/x", Hash: "m1", IsRemote: true},
		{Name: "refs/heads/bad\xff", Hash: "m1"},
	}
	tags := []models.Tag{
		{Name: "v1", Target: "m1"},
		{Name: "refs/tags/v2", Target: "m1"},
		{Name: "refs/tags/v3", Target: "unindexed"},
	}

	candidates := buildCatalog(commits, indices, refs, tags, gitFlow(t))

	assert.Equal(t, []string{"ok", "tags/v2"}, names(candidates))
}

// TestCatalogColorCounter checks that one counter rotates the color
// lists across refs and merge-derived candidates alike, advancing even
// for candidates that resolve to nothing.
func TestCatalogColorCounter(t *testing.T) {
	commits, indices := arena(t,
		c("M", "Merge branch 'feature/c'", "f1", "f2"),
		c("f1", "root one"),
		c("f2", "root two"),
	)

	t.Run("rotation", func(t *testing.T) {
		refs := []models.Ref{local("feature/a", "f1"), local("feature/b", "f2")}
		candidates := buildCatalog(commits, indices, refs, nil, gitFlow(t))

		require.Equal(t, []string{"feature/a", "feature/b", "feature/c"}, names(candidates))
		// git-flow features alternate bright magenta and bright cyan
		assert.Equal(t, uint8(14), candidates[0].Vis.TermColor)
		assert.Equal(t, uint8(13), candidates[1].Vis.TermColor)
		assert.Equal(t, uint8(14), candidates[2].Vis.TermColor)
		assert.Equal(t, "turquoise", candidates[0].Vis.SVGColor)
		assert.Equal(t, "magenta", candidates[1].Vis.SVGColor)
	})

	t.Run("unresolvable tip still advances", func(t *testing.T) {
		refs := []models.Ref{local("feature/a", "missing"), local("feature/b", "f1")}
		candidates := buildCatalog(commits, indices, refs, nil, gitFlow(t))

		require.Len(t, candidates, 3)
		assert.Equal(t, none, candidates[0].Range.Start)
		assert.Equal(t, uint8(13), candidates[1].Vis.TermColor, "second candidate keeps the second color")
	})
}
