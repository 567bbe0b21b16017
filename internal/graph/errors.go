package graph

import "errors"

var (
	// ErrStructural marks failures to resolve commits or references
	// that should exist. Builds abort on it; there is no partial
	// result.
	ErrStructural = errors.New("structural access failure")

	// ErrNoHead is returned when the repository has no resolvable
	// HEAD, e.g. before the first commit.
	ErrNoHead = errors.New("no resolvable HEAD")
)
