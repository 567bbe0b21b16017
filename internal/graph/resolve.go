package graph

// resolveSourcesTargets computes per branch the position group it
// visually forks from and the one it merges into. Both are layout
// hints; column allocation falls back to the branch's own group when a
// hint is unset.
func resolveSourcesTargets(commits []*Commit, indices map[string]int, branches []Branch) {
	owned := make([][]int, len(branches))
	for idx, c := range commits {
		if c.Owner != none {
			owned[c.Owner] = append(owned[c.Owner], idx)
		}
	}

	for i := range branches {
		// The fork sits at the old end: scan owned commits oldest
		// first for a parent held by another branch.
		src := none
		for k := len(owned[i]) - 1; k >= 0 && src == none; k-- {
			c := commits[owned[i][k]]
			for _, parent := range c.Parents {
				if parent == "" {
					continue
				}
				pi, ok := indices[parent]
				if !ok {
					continue
				}
				if po := commits[pi].Owner; po != none && po != i {
					src = branches[po].Vis.OrderGroup
					break
				}
			}
		}

		// The merge sits at the new end: prefer the recorded merge
		// target's owner, else the first foreign child of the newest
		// owned commit.
		tgt := none
		if branches[i].MergeTarget != "" {
			if mi, ok := indices[branches[i].MergeTarget]; ok {
				if mo := commits[mi].Owner; mo != none && mo != i {
					tgt = branches[mo].Vis.OrderGroup
				}
			}
		}
		if tgt == none && len(owned[i]) > 0 {
			for _, child := range commits[owned[i][0]].Children {
				ci, ok := indices[child]
				if !ok {
					continue
				}
				if co := commits[ci].Owner; co != none && co != i {
					tgt = branches[co].Vis.OrderGroup
					break
				}
			}
		}

		branches[i].Vis.SourceGroup = src
		branches[i].Vis.TargetGroup = tgt
	}
}
