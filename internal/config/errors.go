package config

import "errors"

var (
	// ErrUnknownModel is returned when a branching model name has no
	// built-in definition.
	ErrUnknownModel = errors.New("unknown branching model")

	// ErrUnknownFormat is returned for a commit format other than
	// oneline or short.
	ErrUnknownFormat = errors.New("unknown commit format")

	// ErrNoFallbackColors is returned when a color table has no
	// fallback list for unmatched branch names.
	ErrNoFallbackColors = errors.New("fallback color list must not be empty")
)
