// Package git materializes repository data for the graph engine: the
// commit sequence in topological order, branch and tag refs and the
// HEAD snapshot. All reads go through go-git; nothing shells out.
package git

import (
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// Repository wraps an opened git repository.
type Repository struct {
	repo *gogit.Repository
}

// Open opens the repository containing path, walking up to find the
// .git directory like the git CLI does.
func Open(path string) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}
	return &Repository{repo: repo}, nil
}

// Name returns the base name of the worktree directory, or an empty
// string for a bare repository.
func (r *Repository) Name() string {
	wt, err := r.repo.Worktree()
	if err != nil {
		return ""
	}
	return filepath.Base(wt.Filesystem.Root())
}
