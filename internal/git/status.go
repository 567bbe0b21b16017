package git

import (
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// WorktreeSummary counts the uncommitted changes in the working tree.
type WorktreeSummary struct {
	Staged    int
	Modified  int
	Untracked int
}

// Clean reports whether the working tree has no uncommitted changes.
func (s WorktreeSummary) Clean() bool {
	return s.Staged == 0 && s.Modified == 0 && s.Untracked == 0
}

func (s WorktreeSummary) String() string {
	if s.Clean() {
		return "clean"
	}
	var parts []string
	if s.Staged > 0 {
		parts = append(parts, fmt.Sprintf("%d staged", s.Staged))
	}
	if s.Modified > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", s.Modified))
	}
	if s.Untracked > 0 {
		parts = append(parts, fmt.Sprintf("%d untracked", s.Untracked))
	}
	return strings.Join(parts, ", ")
}

// Status summarizes the working tree. Bare repositories report as
// clean.
func (r *Repository) Status() (WorktreeSummary, error) {
	wt, err := r.repo.Worktree()
	if errors.Is(err, gogit.ErrIsBareRepository) {
		return WorktreeSummary{}, nil
	}
	if err != nil {
		return WorktreeSummary{}, fmt.Errorf("failed to open the working tree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return WorktreeSummary{}, fmt.Errorf("failed to read the working tree status: %w", err)
	}

	var sum WorktreeSummary
	for _, fs := range status {
		if fs.Worktree == gogit.Untracked {
			sum.Untracked++
			continue
		}
		if fs.Staging != gogit.Unmodified {
			sum.Staged++
		}
		if fs.Worktree != gogit.Unmodified {
			sum.Modified++
		}
	}
	return sum, nil
}
