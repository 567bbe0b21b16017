package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitlanes/gitlanes/internal/config"
	"github.com/gitlanes/gitlanes/internal/models"
)

func c(hash, message string, parents ...string) models.Commit {
	return models.Commit{
		Hash:      hash,
		ShortHash: hash,
		Author:    "Ada",
		Email:     "ada@example.com",
		Message:   message,
		Parents:   parents,
	}
}

func local(name, hash string) models.Ref {
	return models.Ref{Name: "refs/heads/" + name, Hash: hash}
}

func remote(name, hash string) models.Ref {
	return models.Ref{Name: "refs/remotes/" + name, Hash: hash, IsRemote: true}
}

func annotated(name, target string) models.Tag {
	return models.Tag{Name: "refs/tags/" + name, Target: target, IsAnnotated: true}
}

func headAt(name, hash string) models.Head {
	return models.Head{Hash: hash, Name: name, IsBranch: name != "HEAD"}
}

func gitFlow(t *testing.T) *config.Settings {
	t.Helper()
	s, err := config.Builtin("git-flow")
	require.NoError(t, err)
	return s
}

func owners(g *Graph) []int {
	res := make([]int, len(g.Commits))
	for i, c := range g.Commits {
		res[i] = c.Owner
	}
	return res
}

func branchByName(t *testing.T, g *Graph, name string) *Branch {
	t.Helper()
	for i := range g.AllBranches {
		if g.AllBranches[i].Name == name {
			return &g.AllBranches[i]
		}
	}
	t.Fatalf("no branch named %q", name)
	return nil
}

// TestBuildLinearHistory traces a three commit single-branch history
// end to end.
func TestBuildLinearHistory(t *testing.T) {
	commits := []models.Commit{
		c("c0", "third", "c1"),
		c("c1", "second", "c2"),
		c("c2", "first"),
	}
	refs := []models.Ref{local("main", "c0")}

	g, err := Build(commits, refs, nil, headAt("main", "c0"), gitFlow(t))
	require.NoError(t, err)

	require.Len(t, g.AllBranches, 1)
	main := g.AllBranches[0]
	assert.Equal(t, "main", main.Name)
	assert.Equal(t, Range{Start: 0, End: 2}, main.Range)
	assert.Equal(t, 0, main.Vis.Column)

	assert.Equal(t, []int{0, 0, 0}, owners(g))
	assert.Equal(t, []int{0}, g.Branches)
	assert.Empty(t, g.Tags)
	assert.Equal(t, 2, g.Index("c2"))
	assert.Equal(t, -1, g.Index("missing"))
	assert.Equal(t, "main", g.Head.Name)
}

// TestBuildForkedHistory verifies two branches off a common root end
// up in separate columns with correct ranges.
func TestBuildForkedHistory(t *testing.T) {
	commits := []models.Commit{
		c("f1", "start work", "r"),
		c("m1", "tweak docs", "r"),
		c("r", "initial commit"),
	}
	refs := []models.Ref{local("feature/login", "f1"), local("main", "m1")}

	g, err := Build(commits, refs, nil, headAt("main", "m1"), gitFlow(t))
	require.NoError(t, err)

	require.Len(t, g.AllBranches, 2)
	main := branchByName(t, g, "main")
	feature := branchByName(t, g, "feature/login")

	assert.Equal(t, Range{Start: 1, End: 2}, main.Range)
	assert.Equal(t, Range{Start: 0, End: 1}, feature.Range)

	assert.Equal(t, 0, main.Vis.Column)
	assert.Equal(t, 1, feature.Vis.Column)

	assert.Equal(t, []int{1, 0, 0}, owners(g))
	assert.Equal(t, 0, feature.Vis.SourceGroup, "feature forks from the trunk group")
}

// TestBuildMergedFeature runs the full pipeline over a merged and
// deleted feature branch reconstructed from the merge summary, with a
// tag on the trunk.
func TestBuildMergedFeature(t *testing.T) {
	commits := []models.Commit{
		c("m1", "Merge branch 'feature/x'", "m0", "f2"),
		c("f2", "polish login form", "f1"),
		c("m0", "bump version", "r"),
		c("f1", "start login form", "r"),
		c("r", "initial commit"),
	}
	refs := []models.Ref{local("main", "m1")}
	tags := []models.Tag{annotated("v1.0", "m0")}

	g, err := Build(commits, refs, tags, headAt("main", "m1"), gitFlow(t))
	require.NoError(t, err)

	require.Len(t, g.AllBranches, 3)
	assert.Equal(t, []int{0, 1}, g.Branches)
	assert.Equal(t, []int{2}, g.Tags)

	main := g.AllBranches[0]
	feature := g.AllBranches[1]
	tag := g.AllBranches[2]

	assert.Equal(t, "main", main.Name)
	assert.Equal(t, Range{Start: 0, End: 4}, main.Range)
	assert.Equal(t, 0, main.Vis.Column)
	assert.False(t, main.IsMerged)

	assert.Equal(t, "feature/x", feature.Name)
	assert.True(t, feature.IsMerged)
	assert.Equal(t, "m1", feature.MergeTarget)
	assert.Equal(t, Range{Start: 1, End: 3}, feature.Range)
	assert.Equal(t, 1, feature.Vis.Column)
	assert.Equal(t, 0, feature.Vis.SourceGroup)
	assert.Equal(t, 0, feature.Vis.TargetGroup)

	assert.Equal(t, "tags/v1.0", tag.Name)
	assert.True(t, tag.IsTag)
	assert.True(t, tag.Range.Empty(), "tag on an owned commit claims nothing")
	assert.Equal(t, -1, tag.Vis.Column)

	assert.Equal(t, []int{0, 1, 0, 1, 0}, owners(g))
	assert.Equal(t, []int{0}, g.Commits[0].Branches)
	assert.Equal(t, []int{2}, g.Commits[2].Tags)

	// git-flow colors: trunk blue, feature magenta, tag green
	assert.Equal(t, uint8(12), main.Vis.TermColor)
	assert.Equal(t, "blue", main.Vis.SVGColor)
	assert.Equal(t, uint8(13), feature.Vis.TermColor)
	assert.Equal(t, "magenta", feature.Vis.SVGColor)
	assert.Equal(t, uint8(10), tag.Vis.TermColor)
}

// TestBuildColumnLayout exercises the sibling boundary rule and the
// group offsets over four concurrent lines.
func TestBuildColumnLayout(t *testing.T) {
	g, err := Build(columnFixture())
	require.NoError(t, err)

	require.Len(t, g.AllBranches, 4)
	main := branchByName(t, g, "main")
	develop := branchByName(t, g, "develop")
	feature := branchByName(t, g, "feature/z")
	other := branchByName(t, g, "other")

	assert.Equal(t, Range{Start: 4, End: 5}, main.Range)
	assert.Equal(t, Range{Start: 3, End: 4}, develop.Range)
	// the junction commit is a merge, so the lane extends to the
	// lowest sibling instead of stopping right above the trunk
	assert.Equal(t, Range{Start: 0, End: 2}, feature.Range)
	assert.Equal(t, Range{Start: 2, End: 3}, other.Range)

	assert.Equal(t, 0, main.Vis.Column)
	assert.Equal(t, 1, develop.Vis.Column)
	assert.Equal(t, 2, other.Vis.Column)
	assert.Equal(t, 3, feature.Vis.Column)
	assert.Equal(t, 4, g.ColumnCount())

	assert.True(t, other.IsMerged)
	assert.Equal(t, []int{2, 2, 3, 1, 0, 0}, owners(g))
}

func columnFixture() ([]models.Commit, []models.Ref, []models.Tag, models.Head, *config.Settings) {
	commits := []models.Commit{
		c("f2", "refactor parser", "fm"),
		c("fm", "Merge branch 'other'", "m1", "o1"),
		c("o1", "tweak ci", "m1"),
		c("d1", "draft api docs", "r"),
		c("m1", "fix typo", "r"),
		c("r", "initial commit"),
	}
	refs := []models.Ref{
		local("develop", "d1"),
		local("feature/z", "f2"),
		local("main", "m1"),
	}
	settings, err := config.Builtin("git-flow")
	if err != nil {
		panic(err)
	}
	return commits, refs, nil, headAt("feature/z", "f2"), settings
}

// TestBuildHintedColumnOrder lays a feature forked from and merged
// into develop out with the develop pass, ahead of an unmerged
// feature keyed by its own group.
func TestBuildHintedColumnOrder(t *testing.T) {
	commits := []models.Commit{
		c("d1", "Merge branch 'feature/x' into develop", "d0", "x1"),
		c("y1", "continue y", "y0"),
		c("y0", "start y", "d0"),
		c("x1", "finish x", "x0"),
		c("x0", "start x", "d0"),
		c("d0", "develop work", "m0"),
		c("m0", "initial commit"),
	}
	refs := []models.Ref{
		local("develop", "d1"),
		local("feature/y", "y1"),
		local("main", "m0"),
	}

	g, err := Build(commits, refs, nil, headAt("develop", "d1"), gitFlow(t))
	require.NoError(t, err)

	x := branchByName(t, g, "feature/x")
	y := branchByName(t, g, "feature/y")
	require.Equal(t, 4, x.Vis.OrderGroup)
	require.Equal(t, 3, x.Vis.SourceGroup)
	require.Equal(t, 3, x.Vis.TargetGroup)
	require.Equal(t, none, y.Vis.TargetGroup)

	assert.Equal(t, 0, branchByName(t, g, "main").Vis.Column)
	assert.Equal(t, 1, branchByName(t, g, "develop").Vis.Column)
	assert.Equal(t, 2, x.Vis.Column, "both hints point at develop, so the merged line is keyed there")
	assert.Equal(t, 3, y.Vis.Column)
}

// TestBuildDeterministic builds the same history twice and expects
// bit-identical results.
func TestBuildDeterministic(t *testing.T) {
	g1, err := Build(columnFixture())
	require.NoError(t, err)
	g2, err := Build(columnFixture())
	require.NoError(t, err)

	assert.Equal(t, g1.AllBranches, g2.AllBranches)
	assert.Equal(t, g1.Commits, g2.Commits)
	assert.Equal(t, g1.Indices, g2.Indices)
	assert.Equal(t, g1.Branches, g2.Branches)
	assert.Equal(t, g1.Tags, g2.Tags)
}

func TestBuildStructuralErrors(t *testing.T) {
	t.Run("duplicate commit", func(t *testing.T) {
		commits := []models.Commit{c("a", "one", "b"), c("a", "one again"), c("b", "root")}
		_, err := Build(commits, nil, nil, headAt("HEAD", "a"), gitFlow(t))
		assert.ErrorIs(t, err, ErrStructural)
	})

	t.Run("parent before child", func(t *testing.T) {
		commits := []models.Commit{c("b", "root"), c("a", "child of b", "b")}
		_, err := Build(commits, nil, nil, headAt("HEAD", "a"), gitFlow(t))
		assert.ErrorIs(t, err, ErrStructural)
	})

	t.Run("missing hash", func(t *testing.T) {
		commits := []models.Commit{c("", "anonymous")}
		_, err := Build(commits, nil, nil, headAt("HEAD", "x"), gitFlow(t))
		assert.ErrorIs(t, err, ErrStructural)
	})
}

// TestBuildEmpty allows an empty repository to produce an empty graph.
func TestBuildEmpty(t *testing.T) {
	g, err := Build(nil, nil, nil, models.Head{Name: "HEAD"}, gitFlow(t))
	require.NoError(t, err)
	assert.Empty(t, g.Commits)
	assert.Empty(t, g.AllBranches)
	assert.Equal(t, 0, g.ColumnCount())
}
