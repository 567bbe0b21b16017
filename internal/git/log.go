package git

import (
	"bytes"
	"container/heap"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/gitlanes/gitlanes/internal/graph"
	"github.com/gitlanes/gitlanes/internal/models"
)

// Commits retrieves the commit history reachable from any branch, tag
// or HEAD, ordered newest first with every child placed before its
// parents. Ties are broken by committer time, then hash, so the order
// is stable across runs. A positive maxCount truncates the result
// after ordering.
//
// Stash refs are not walked; their helper commits would only clutter
// the graph.
func (r *Repository) Commits(maxCount int) ([]models.Commit, error) {
	tips, err := r.tips()
	if err != nil {
		return nil, err
	}

	reached := make(map[plumbing.Hash]*object.Commit)
	queue := tips
	for len(queue) > 0 {
		h := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if _, ok := reached[h]; ok {
			continue
		}
		commit, err := r.repo.CommitObject(h)
		if err != nil {
			return nil, fmt.Errorf("failed to read commit %s: %w: %v", h, graph.ErrStructural, err)
		}
		reached[h] = commit
		queue = append(queue, commit.ParentHashes...)
	}

	ordered := topoOrder(reached)
	if maxCount > 0 && len(ordered) > maxCount {
		ordered = ordered[:maxCount]
	}

	commits := make([]models.Commit, 0, len(ordered))
	for _, c := range ordered {
		commits = append(commits, toModel(c))
	}
	return commits, nil
}

// tips collects the hashes commit discovery starts from: local and
// remote branches, tag targets and HEAD. Symbolic refs and the stash
// are skipped.
func (r *Repository) tips() ([]plumbing.Hash, error) {
	var tips []plumbing.Hash

	iter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference || ref.Hash().IsZero() {
			return nil
		}
		name := ref.Name()
		if name == "refs/stash" {
			return nil
		}
		switch {
		case name.IsBranch(), name.IsRemote():
			tips = append(tips, ref.Hash())
		case name.IsTag():
			tips = append(tips, r.derefTag(ref.Hash()))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk references: %w", err)
	}

	if head, err := r.repo.Head(); err == nil && !head.Hash().IsZero() {
		tips = append(tips, head.Hash())
	}
	return tips, nil
}

// derefTag resolves an annotated tag object to its target commit hash.
// Lightweight tags already point at the commit.
func (r *Repository) derefTag(h plumbing.Hash) plumbing.Hash {
	tag, err := r.repo.TagObject(h)
	if err != nil {
		return h
	}
	return tag.Target
}

// topoOrder sorts commits newest first so that every commit precedes
// its parents. Among commits whose children are all emitted, the one
// with the latest committer time leaves first; the hash tie-break
// makes the order total, so the result does not depend on map
// iteration order.
func topoOrder(commits map[plumbing.Hash]*object.Commit) []*object.Commit {
	pending := make(map[plumbing.Hash]int, len(commits))
	for _, c := range commits {
		for _, p := range c.ParentHashes {
			if _, ok := commits[p]; ok {
				pending[p]++
			}
		}
	}

	ready := &commitHeap{}
	for h, c := range commits {
		if pending[h] == 0 {
			heap.Push(ready, c)
		}
	}

	ordered := make([]*object.Commit, 0, len(commits))
	for ready.Len() > 0 {
		c := heap.Pop(ready).(*object.Commit)
		ordered = append(ordered, c)
		for _, p := range c.ParentHashes {
			if pc, ok := commits[p]; ok {
				pending[p]--
				if pending[p] == 0 {
					heap.Push(ready, pc)
				}
			}
		}
	}
	return ordered
}

// commitHeap pops the newest ready commit first.
type commitHeap []*object.Commit

func (h commitHeap) Len() int { return len(h) }

func (h commitHeap) Less(i, j int) bool {
	ti, tj := h[i].Committer.When, h[j].Committer.When
	if !ti.Equal(tj) {
		return ti.After(tj)
	}
	return bytes.Compare(h[i].Hash[:], h[j].Hash[:]) > 0
}

func (h commitHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *commitHeap) Push(x any) { *h = append(*h, x.(*object.Commit)) }

func (h *commitHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func toModel(c *object.Commit) models.Commit {
	hash := c.Hash.String()
	summary, _, _ := strings.Cut(c.Message, "\n")
	parents := make([]string, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}
	return models.Commit{
		Hash:      hash,
		ShortHash: hash[:7],
		Author:    c.Author.Name,
		Email:     c.Author.Email,
		Date:      c.Author.When,
		Message:   strings.TrimRight(summary, "\r"),
		Parents:   parents,
	}
}
