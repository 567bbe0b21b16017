package graph

import (
	"strings"

	"github.com/gitlanes/gitlanes/internal/config"
)

// traceAll runs one trace per candidate in catalog order. Real
// branches and tags are attached to their tip commit before tracing so
// the labels survive even when the candidate ends up owning nothing.
func traceAll(commits []*Commit, indices map[string]int, candidates []Branch) {
	for i := range candidates {
		tip, ok := indices[candidates[i].Target]
		if !ok {
			continue
		}
		switch {
		case candidates[i].IsTag:
			commits[tip].Tags = append(commits[tip].Tags, i)
		case !candidates[i].IsMerged:
			commits[tip].Branches = append(commits[tip].Branches, i)
		}
		traceBranch(commits, indices, candidates, i)
	}
}

// traceBranch walks first-parent links backward from the candidate's
// target, claiming unowned commits. The walk stops at a root commit,
// at the cutoff edge of the arena, or at the first commit owned by an
// earlier trace. Reports whether any commit was claimed.
//
// Hitting an owned commit with the same name means the same logical
// line was reached further back: the owner's start is moved to this
// position (or its range voided when the position lies past its
// recorded end) and the walk ends without a boundary. Hitting a
// different line sets the boundary one position before it; when the
// last claimed commit was a merge, the boundary instead extends to the
// highest-positioned child of the junction commit so the lane is not
// cut short where it visually passes a sibling.
func traceBranch(commits []*Commit, indices map[string]int, candidates []Branch, branchIdx int) bool {
	cur := candidates[branchIdx].Target
	prev := none
	boundary, hasBoundary := 0, false
	claimed := false

	for {
		idx, ok := indices[cur]
		if !ok {
			// walked past the arena cutoff; the range stays open
			break
		}
		c := commits[idx]
		if c.Owner != none {
			owner := &candidates[c.Owner]
			cand := &candidates[branchIdx]
			ownerStart := owner.Range.Start
			if ownerStart == none {
				ownerStart = 0
			}
			hint := cand.Range.Start
			if hint == none {
				hint = 0
			}
			if cand.Name == owner.Name && hint <= ownerStart {
				if owner.Range.End != none && idx > owner.Range.End {
					owner.Range = openRange()
				} else {
					owner.Range.Start = idx
				}
			} else {
				if rest, found := strings.CutPrefix(cand.Name, config.RemotePrefix); found && rest == owner.Name {
					cand.Vis.TermColor = owner.Vis.TermColor
					cand.Vis.SVGColor = owner.Vis.SVGColor
				}
				if prev != none && commits[prev].IsMerge {
					b := prev
					for _, child := range c.Children {
						if ci, ok := indices[child]; ok && ci > b {
							b = ci
						}
					}
					boundary, hasBoundary = b, true
				} else {
					boundary, hasBoundary = idx-1, true
				}
			}
			break
		}

		c.Owner = branchIdx
		claimed = true

		if c.Parents[0] == "" {
			boundary, hasBoundary = idx, true
			break
		}
		prev = idx
		cur = c.Parents[0]
	}

	// Reconcile the range against the start hint: a boundary before
	// the hint means the candidate owns nothing of its own.
	branch := &candidates[branchIdx]
	if branch.Range.Start != none {
		if hasBoundary {
			if boundary < branch.Range.Start {
				branch.Range = openRange()
			} else {
				branch.Range.End = boundary
			}
		}
	} else if hasBoundary {
		branch.Range.End = boundary
	}
	return claimed
}
