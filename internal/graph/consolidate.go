package graph

// consolidate drops candidates that ended up owning nothing, filters
// the commit sequence to owned commits and re-expresses every index
// against the filtered sequence.
//
// A candidate survives when its tip resolved and it either owns at
// least one commit or is not merge-derived: real branches and tags are
// kept for their reference even with an empty range. Range bounds that
// land on a dropped commit move to the nearest surviving one, starts
// forward and ends backward.
func consolidate(commits []*Commit, indices map[string]int, candidates []Branch) ([]*Commit, map[string]int, []Branch) {
	counts := make([]int, len(candidates))
	for _, c := range commits {
		if c.Owner != none {
			counts[c.Owner]++
		}
	}

	branchMap := make([]int, len(candidates))
	kept := 0
	for i := range candidates {
		_, tipResolved := indices[candidates[i].Target]
		if tipResolved && (counts[i] > 0 || !candidates[i].IsMerged) {
			branchMap[i] = kept
			kept++
		} else {
			branchMap[i] = none
		}
	}

	branches := make([]Branch, 0, kept)
	for i := range candidates {
		if branchMap[i] != none {
			branches = append(branches, candidates[i])
		}
	}

	// Filter commits to owned ones, remapping the ownership and tip
	// annotations as we go. Attached branches and tags always survive,
	// as does every owner.
	filtered := make([]*Commit, 0, len(commits))
	newIndices := make(map[string]int, len(commits))
	oldToNew := make([]int, len(commits))
	for idx, c := range commits {
		if c.Owner == none {
			oldToNew[idx] = none
			continue
		}
		c.Owner = branchMap[c.Owner]
		for k, b := range c.Branches {
			c.Branches[k] = branchMap[b]
		}
		for k, t := range c.Tags {
			c.Tags[k] = branchMap[t]
		}
		oldToNew[idx] = len(filtered)
		newIndices[c.Hash] = len(filtered)
		filtered = append(filtered, c)
	}

	for i := range branches {
		b := &branches[i]
		if b.Range.Start != none {
			start := b.Range.Start
			for start < len(oldToNew) && oldToNew[start] == none {
				start++
			}
			if start < len(oldToNew) {
				b.Range.Start = oldToNew[start]
			} else {
				b.Range.Start = none
			}
		}
		if b.Range.End != none {
			end := b.Range.End
			for end >= 0 && oldToNew[end] == none {
				end--
			}
			if end >= 0 {
				b.Range.End = oldToNew[end]
			} else {
				b.Range.End = none
			}
		}
	}

	return filtered, newIndices, branches
}
