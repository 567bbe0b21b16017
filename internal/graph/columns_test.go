package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitlanes/gitlanes/internal/config"
	"github.com/gitlanes/gitlanes/internal/models"
)

func chainArena(t *testing.T, n int) ([]*Commit, map[string]int) {
	t.Helper()
	commits := make([]models.Commit, n)
	for i := 0; i < n; i++ {
		hash := string(rune('a' + i))
		if i < n-1 {
			commits[i] = c(hash, "step", string(rune('a'+i+1)))
		} else {
			commits[i] = c(hash, "root")
		}
	}
	arena, indices, err := indexCommits(commits)
	require.NoError(t, err)
	return arena, indices
}

func plainBranch(name string, start, end int) Branch {
	b := newBranch("", "", name, 0, false, false, false, newVis(0, 7, "gray"), start)
	b.Range = Range{Start: start, End: end}
	return b
}

func noneModel(t *testing.T) *config.Settings {
	t.Helper()
	s, err := config.Builtin("none")
	require.NoError(t, err)
	return s
}

// TestColumnsMergeTargetBlocked keeps a merged line out of the column
// its merge target sits in, even when the occupied intervals alone
// would not collide.
func TestColumnsMergeTargetBlocked(t *testing.T) {
	run := func(t *testing.T, mergeTarget string) []int {
		commits, indices := chainArena(t, 6)
		branches := []Branch{
			plainBranch("a", 4, 5),
			plainBranch("b", 0, 1),
			plainBranch("c", 2, 3),
		}
		branches[1].IsMerged = true
		branches[1].MergeTarget = mergeTarget
		commits[4].Owner = 0
		commits[5].Owner = 0
		commits[0].Owner = 1
		commits[1].Owner = 1
		commits[2].Owner = 2
		commits[3].Owner = 2

		assignColumns(commits, indices, branches, noneModel(t))

		cols := make([]int, len(branches))
		for i := range branches {
			cols[i] = branches[i].Vis.Column
		}
		return cols
	}

	t.Run("blocked at the merge point", func(t *testing.T) {
		// e is commit 4, owned by branch a
		cols := run(t, "e")
		assert.Equal(t, []int{0, 1, 0}, cols)
	})

	t.Run("free without a merge target", func(t *testing.T) {
		cols := run(t, "")
		assert.Equal(t, []int{0, 0, 0}, cols)
	})
}

// TestColumnsOrderDirections flips the length sort direction and
// expects a different packing.
func TestColumnsOrderDirections(t *testing.T) {
	build := func(t *testing.T, shortestFirst bool) (long, s1, s2 int) {
		commits, indices := chainArena(t, 8)
		branches := []Branch{
			plainBranch("long", 0, 5),
			plainBranch("s1", 0, 1),
			plainBranch("s2", 3, 4),
		}
		settings := noneModel(t)
		settings.Order.ShortestFirst = shortestFirst

		assignColumns(commits, indices, branches, settings)
		return branches[0].Vis.Column, branches[1].Vis.Column, branches[2].Vis.Column
	}

	t.Run("shortest first packs short lanes inward", func(t *testing.T) {
		long, s1, s2 := build(t, true)
		assert.Equal(t, 1, long)
		assert.Equal(t, 0, s1)
		assert.Equal(t, 0, s2)
	})

	t.Run("longest first gives the long lane the inner column", func(t *testing.T) {
		long, s1, s2 := build(t, false)
		assert.Equal(t, 0, long)
		assert.Equal(t, 1, s1)
		assert.Equal(t, 1, s2)
	})
}

// TestColumnsGroupOffsets lays out one branch per group and expects
// globally unique columns in group order.
func TestColumnsGroupOffsets(t *testing.T) {
	commits, indices := chainArena(t, 6)
	branches := []Branch{
		plainBranch("outer", 0, 1),
		plainBranch("inner", 2, 3),
		plainBranch("outer2", 4, 5),
	}
	branches[0].Vis.OrderGroup = 0
	branches[1].Vis.OrderGroup = 2
	branches[2].Vis.OrderGroup = 0

	settings := gitFlow(t)
	assignColumns(commits, indices, branches, settings)

	assert.Equal(t, 0, branches[0].Vis.Column)
	assert.Equal(t, 0, branches[2].Vis.Column, "disjoint ranges share the group column")
	assert.Equal(t, 1, branches[1].Vis.Column, "later group offsets past earlier ones")
}

// TestColumnsGroupHintFallback keys a branch by its source and target
// groups; the own group stands in only when a hint is unset. A line
// forked from and merged into an outer group is placed with that
// group's pass and claims its column before lines keyed by their own
// group.
func TestColumnsGroupHintFallback(t *testing.T) {
	commits, indices := chainArena(t, 7)
	branches := []Branch{
		plainBranch("develop", 0, 6),
		plainBranch("feature/x", 2, 4),
		plainBranch("feature/y", 1, 2),
	}
	branches[0].Vis.OrderGroup = 3
	branches[1].Vis.OrderGroup = 4
	branches[1].Vis.SourceGroup = 3
	branches[1].Vis.TargetGroup = 3
	branches[2].Vis.OrderGroup = 4

	assignColumns(commits, indices, branches, gitFlow(t))

	assert.Equal(t, 0, branches[0].Vis.Column)
	assert.Equal(t, 1, branches[1].Vis.Column, "hinted line takes the inner feature column")
	assert.Equal(t, 2, branches[2].Vis.Column)
}
