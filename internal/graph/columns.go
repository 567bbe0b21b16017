package graph

import (
	"sort"

	"github.com/gitlanes/gitlanes/internal/config"
)

type interval struct {
	start, end int
}

func (iv interval) overlaps(start, end int) bool {
	return start <= iv.end && end >= iv.start
}

// assignColumns places every branch with a non-empty range into a
// column of its position group so that no two branches overlap, then
// offsets the groups into one global column index space.
//
// Branches are processed by (group hint, range length, range start);
// the latter two directions follow the order settings. The hint is
// the larger of the source and target groups, the branch's own group
// standing in for an unset hint. Columns stay local to the own group:
// the hint only schedules placement, so a line forked from and merged
// into an outer group claims its column before lines keyed by their
// own group.
func assignColumns(commits []*Commit, indices map[string]int, branches []Branch, settings *config.Settings) {
	// group -> columns -> occupied intervals
	occupied := make([][][]interval, settings.Branches.GroupCount())

	lengthFactor := 1
	if !settings.Order.ShortestFirst {
		lengthFactor = -1
	}
	startFactor := 1
	if !settings.Order.Forward {
		startFactor = -1
	}
	defaultEnd := len(commits) - 1
	if defaultEnd < 0 {
		defaultEnd = 0
	}

	type entry struct {
		branch     int
		start, end int
		groupHint  int
		lengthKey  int
		startKey   int
	}
	entries := make([]entry, 0, len(branches))
	for i := range branches {
		if branches[i].Range.Empty() {
			continue
		}
		start := branches[i].Range.Start
		if start == none {
			start = 0
		}
		end := branches[i].Range.End
		if end == none {
			end = defaultEnd
		}
		own := branches[i].Vis.OrderGroup
		src, tgt := own, own
		if g := branches[i].Vis.SourceGroup; g != none {
			src = g
		}
		if g := branches[i].Vis.TargetGroup; g != none {
			tgt = g
		}
		hint := src
		if tgt > hint {
			hint = tgt
		}
		entries = append(entries, entry{
			branch:    i,
			start:     start,
			end:       end,
			groupHint: hint,
			lengthKey: (end - start) * lengthFactor,
			startKey:  start * startFactor,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.groupHint != b.groupHint {
			return a.groupHint < b.groupHint
		}
		if a.lengthKey != b.lengthKey {
			return a.lengthKey < b.lengthKey
		}
		return a.startKey < b.startKey
	})

	for _, e := range entries {
		group := branches[e.branch].Vis.OrderGroup
		blocked := mergeTargetColumn(commits, indices, branches, e.branch, group)

		selected := none
		for i, col := range occupied[group] {
			conflict := i == blocked
			for _, iv := range col {
				if conflict {
					break
				}
				conflict = iv.overlaps(e.start, e.end)
			}
			if !conflict {
				selected = i
				break
			}
		}
		if selected == none {
			occupied[group] = append(occupied[group], nil)
			selected = len(occupied[group]) - 1
		}
		occupied[group][selected] = append(occupied[group][selected], interval{e.start, e.end})
		branches[e.branch].Vis.Column = selected
	}

	// Prefix sums over group column counts turn group-local columns
	// into globally unique ones, groups rendered left to right.
	offset := 0
	offsets := make([]int, len(occupied))
	for g := range occupied {
		offset += len(occupied[g])
		offsets[g] = offset
	}
	for i := range branches {
		if branches[i].Vis.Column == none {
			continue
		}
		if g := branches[i].Vis.OrderGroup; g > 0 {
			branches[i].Vis.Column += offsets[g-1]
		}
	}
}

// mergeTargetColumn returns the group-local column currently held by
// the branch owning this branch's merge-target commit, when that owner
// sits in the same group. Sharing that column would collide exactly at
// the merge point even though the ranges alone may be disjoint.
func mergeTargetColumn(commits []*Commit, indices map[string]int, branches []Branch, branch, group int) int {
	target := branches[branch].MergeTarget
	if target == "" {
		return none
	}
	ti, ok := indices[target]
	if !ok {
		return none
	}
	owner := commits[ti].Owner
	if owner == none {
		return none
	}
	if branches[owner].Vis.OrderGroup != group {
		return none
	}
	return branches[owner].Vis.Column
}
