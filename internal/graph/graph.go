package graph

import (
	"fmt"

	"github.com/gitlanes/gitlanes/internal/config"
	"github.com/gitlanes/gitlanes/internal/models"
)

// Build constructs the history graph from fully materialized inputs:
// a topologically ordered commit sequence (newest first, children
// before parents), raw branch and tag references and the HEAD
// snapshot. The settings object must be validated; see config.
//
// The build is synchronous and deterministic: identical inputs yield
// identical ownership, ranges and columns. On a structural
// inconsistency in the inputs there is no partial result.
func Build(commits []models.Commit, refs []models.Ref, tags []models.Tag, head models.Head, settings *config.Settings) (*Graph, error) {
	arena, indices, err := indexCommits(commits)
	if err != nil {
		return nil, err
	}
	if err := assignChildren(arena, indices); err != nil {
		return nil, err
	}

	candidates := buildCatalog(arena, indices, refs, tags, settings)
	traceAll(arena, indices, candidates)

	filtered, filteredIndices, branches := consolidate(arena, indices, candidates)
	resolveSourcesTargets(filtered, filteredIndices, branches)
	assignColumns(filtered, filteredIndices, branches, settings)

	g := &Graph{
		Commits:     filtered,
		Indices:     filteredIndices,
		AllBranches: branches,
		Head:        head,
	}
	for i := range branches {
		if branches[i].IsTag {
			g.Tags = append(g.Tags, i)
		} else {
			g.Branches = append(g.Branches, i)
		}
	}
	return g, nil
}

func indexCommits(infos []models.Commit) ([]*Commit, map[string]int, error) {
	arena := make([]*Commit, 0, len(infos))
	indices := make(map[string]int, len(infos))
	for idx, info := range infos {
		if info.Hash == "" {
			return nil, nil, fmt.Errorf("commit at position %d has no hash: %w", idx, ErrStructural)
		}
		if prev, ok := indices[info.Hash]; ok {
			return nil, nil, fmt.Errorf("commit %s appears at positions %d and %d: %w", info.Hash, prev, idx, ErrStructural)
		}
		arena = append(arena, newCommit(info))
		indices[info.Hash] = idx
	}
	return arena, indices, nil
}

// assignChildren fills the child back-links in one pass. A parent
// placed before its child breaks the topological-order contract and
// aborts the build.
func assignChildren(commits []*Commit, indices map[string]int) error {
	for idx, c := range commits {
		for _, parent := range c.Parents {
			if parent == "" {
				continue
			}
			pi, ok := indices[parent]
			if !ok {
				// parent beyond the cutoff
				continue
			}
			if pi <= idx {
				return fmt.Errorf("commit %s precedes its child %s: %w", parent, c.Hash, ErrStructural)
			}
			commits[pi].Children = append(commits[pi].Children, c.Hash)
		}
	}
	return nil
}
