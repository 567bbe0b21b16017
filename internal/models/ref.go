package models

// Ref is a branch reference as read from the repository, before any
// namespace stripping.
type Ref struct {
	Name     string // full name, e.g. "refs/heads/main"
	Hash     string
	IsRemote bool
}

// Tag points at its target commit, with annotated tags already
// dereferenced one level.
type Tag struct {
	Name        string // full name, e.g. "refs/tags/v1.0"
	Target      string
	IsAnnotated bool
}

type Head struct {
	Hash     string
	Name     string // short branch name, or "HEAD" when detached
	IsBranch bool
}
