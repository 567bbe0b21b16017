package git

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/gitlanes/gitlanes/internal/graph"
	"github.com/gitlanes/gitlanes/internal/models"
)

// BranchRefs returns all local branch refs, plus remote branch refs
// when includeRemote is set, sorted by full ref name so locals come
// first. Symbolic refs like origin/HEAD are skipped.
func (r *Repository) BranchRefs(includeRemote bool) ([]models.Ref, error) {
	iter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}

	var refs []models.Ref
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference || ref.Hash().IsZero() {
			return nil
		}
		name := ref.Name()
		switch {
		case name.IsBranch():
			refs = append(refs, models.Ref{Name: string(name), Hash: ref.Hash().String()})
		case includeRemote && name.IsRemote():
			refs = append(refs, models.Ref{Name: string(name), Hash: ref.Hash().String(), IsRemote: true})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk references: %w", err)
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// TagRefs returns all tag refs sorted by name. Annotated tags are
// dereferenced one level to the commit they annotate; lightweight tags
// pass through as-is.
func (r *Repository) TagRefs() ([]models.Tag, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	var tags []models.Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Hash().IsZero() {
			return nil
		}
		tag := models.Tag{Name: string(ref.Name()), Target: ref.Hash().String()}
		if obj, err := r.repo.TagObject(ref.Hash()); err == nil {
			tag.Target = obj.Target.String()
			tag.IsAnnotated = true
		}
		tags = append(tags, tag)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk tags: %w", err)
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

// Head returns the current HEAD snapshot. A detached HEAD keeps the
// name "HEAD"; an empty repository is an error because there is
// nothing to graph.
func (r *Repository) Head() (models.Head, error) {
	ref, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return models.Head{}, fmt.Errorf("repository has no commits: %w", graph.ErrNoHead)
		}
		return models.Head{}, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	head := models.Head{Hash: ref.Hash().String(), Name: "HEAD"}
	if ref.Name().IsBranch() {
		head.Name = ref.Name().Short()
		head.IsBranch = true
	}
	return head, nil
}
