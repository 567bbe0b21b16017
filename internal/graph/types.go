// Package graph turns a flat, topologically ordered commit sequence
// plus raw branch and tag references into a multi-lane history graph:
// an owning branch per commit, a persistence-ordered branch list with
// validity ranges, and a collision-free display column per branch.
//
// Position 0 is the newest commit; parents always sit at higher
// positions than their children. A branch range runs from Start (most
// recent) to End (oldest), so Start <= End when both are set.
package graph

import "github.com/gitlanes/gitlanes/internal/models"

// none marks an unset position, owner, column or group.
const none = -1

// Commit is one slot of the commit arena. Children, terminating branch
// and tag lists and the owner are filled in by the pipeline; the rest
// is fixed at indexing time.
type Commit struct {
	Hash    string
	Info    models.Commit
	IsMerge bool
	// Parents keeps at most two parent hashes; an empty string means
	// the slot is unused. Only the first parent defines the branch
	// line.
	Parents  [2]string
	Children []string
	// Branches and Tags list the catalog indices of candidates whose
	// tip is this commit.
	Branches []int
	Tags     []int
	// Owner is the branch that produced this commit. Written once
	// during tracing, renumbered during consolidation.
	Owner int
}

func newCommit(info models.Commit) *Commit {
	c := &Commit{
		Hash:    info.Hash,
		Info:    info,
		IsMerge: len(info.Parents) > 1,
		Owner:   none,
	}
	if len(info.Parents) > 0 {
		c.Parents[0] = info.Parents[0]
	}
	if len(info.Parents) > 1 {
		c.Parents[1] = info.Parents[1]
	}
	return c
}

// Range is a branch's validity span in commit positions. An unset
// bound leaves the range open toward that end of history.
type Range struct {
	Start int
	End   int
}

func openRange() Range { return Range{Start: none, End: none} }

// Empty reports whether both bounds are unset, i.e. the branch has no
// visual extent at all.
func (r Range) Empty() bool { return r.Start == none && r.End == none }

// BranchVis carries the layout properties of a branch.
type BranchVis struct {
	// OrderGroup is the position group from the settings order table.
	OrderGroup int
	// SourceGroup and TargetGroup are layout hints: the groups this
	// branch forks from and merges into. Unset hints fall back to
	// OrderGroup during column allocation.
	SourceGroup int
	TargetGroup int
	TermColor   uint8
	SVGColor    string
	// Column is the display column, unique within the order group and
	// globally unique after group offsetting.
	Column int
}

// Branch is a candidate branch line: a real ref, a line reconstructed
// from a merge commit summary, or a tag.
type Branch struct {
	// Target is the hash the branch points at: the ref tip, or the
	// second parent of the merge commit for merge-derived candidates.
	Target string
	// MergeTarget is the merge commit a merge-derived candidate was
	// reconstructed from; empty otherwise.
	MergeTarget string
	Name        string
	// Persistence ranks candidates for tracing; lower claims first.
	Persistence uint8
	IsRemote    bool
	IsMerged    bool
	IsTag       bool
	Vis         BranchVis
	Range       Range
}

func newBranch(target, mergeTarget, name string, persistence uint8, isRemote, isMerged, isTag bool, vis BranchVis, start int) Branch {
	return Branch{
		Target:      target,
		MergeTarget: mergeTarget,
		Name:        name,
		Persistence: persistence,
		IsRemote:    isRemote,
		IsMerged:    isMerged,
		IsTag:       isTag,
		Vis:         vis,
		Range:       Range{Start: start, End: none},
	}
}

func newVis(orderGroup int, termColor uint8, svgColor string) BranchVis {
	return BranchVis{
		OrderGroup:  orderGroup,
		SourceGroup: none,
		TargetGroup: none,
		TermColor:   termColor,
		SVGColor:    svgColor,
		Column:      none,
	}
}

// Graph is the final result: the commit sequence filtered to owned
// commits, all surviving branch records, and index lists separating
// branches from tags.
type Graph struct {
	Commits     []*Commit
	Indices     map[string]int
	AllBranches []Branch
	Branches    []int
	Tags        []int
	Head        models.Head
}

// Index returns the position of a commit hash, or -1 when the commit
// is not part of the graph.
func (g *Graph) Index(hash string) int {
	if idx, ok := g.Indices[hash]; ok {
		return idx
	}
	return none
}

// ColumnCount returns the number of display columns in use.
func (g *Graph) ColumnCount() int {
	max := 0
	for i := range g.AllBranches {
		if col := g.AllBranches[i].Vis.Column; col != none && col+1 > max {
			max = col + 1
		}
	}
	return max
}
