// Package config holds the branching-model settings consumed by the
// graph engine and the renderers. Settings are compiled and validated
// at load time so downstream lookups cannot fail.
package config

import (
	"regexp"
	"strings"
)

// RemotePrefix marks remote-tracking branch names after namespace
// stripping, e.g. "origin/main".
const RemotePrefix = "origin/"

// CommitFormat selects how much of a commit the text renderer prints.
type CommitFormat int

const (
	FormatOneline CommitFormat = iota
	FormatShort
)

// BranchOrder carries the two switches that steer column allocation.
type BranchOrder struct {
	// ShortestFirst processes short-lived branches before long-lived
	// ones, packing them into inner columns.
	ShortestFirst bool
	// Forward processes branches in history order rather than from the
	// most recent end.
	Forward bool
}

// ColorList assigns a rotation of terminal colors to branch names
// matching a pattern.
type ColorList struct {
	Pattern *regexp.Regexp
	Colors  []uint8
}

// SVGColorList is the SVG counterpart of ColorList; colors are CSS
// color strings passed through to the output.
type SVGColorList struct {
	Pattern *regexp.Regexp
	Colors  []string
}

// BranchSettings are the per-branch-name rule tables. All tables share
// one matching rule: a name matches a pattern if the pattern matches it
// directly, or the name starts with RemotePrefix and the pattern
// matches the remainder. The first match in table order wins.
type BranchSettings struct {
	Persistence       []*regexp.Regexp
	Order             []*regexp.Regexp
	TermColors        []ColorList
	TermColorsUnknown []uint8
	SVGColors         []SVGColorList
	SVGColorsUnknown  []string
}

// Settings is the validated runtime configuration.
type Settings struct {
	Model         string
	Branches      BranchSettings
	MergePatterns []*regexp.Regexp
	Order         BranchOrder

	IncludeRemote bool
	Reverse       bool
	Compact       bool
	Colored       bool
	// Ascii swaps the box-drawing lane glyphs for plain ASCII, for
	// terminals without a box-drawing font.
	Ascii  bool
	Format CommitFormat
}

func matchesPrefixed(re *regexp.Regexp, name string) bool {
	if strings.HasPrefix(name, RemotePrefix) && re.MatchString(name[len(RemotePrefix):]) {
		return true
	}
	return re.MatchString(name)
}

// PersistenceRank returns the position of the first persistence pattern
// matching name, or the table length when none matches.
func (b *BranchSettings) PersistenceRank(name string) uint8 {
	for i, re := range b.Persistence {
		if matchesPrefixed(re, name) {
			return uint8(i)
		}
	}
	return uint8(len(b.Persistence))
}

// TagRank is the persistence rank assigned to tags; it sorts after
// every branch rank.
func (b *BranchSettings) TagRank() uint8 {
	return uint8(len(b.Persistence)) + 1
}

// OrderGroup returns the position group of name: the position of the
// first order pattern matching it, or the group past the table for
// unmatched names.
func (b *BranchSettings) OrderGroup(name string) int {
	for i, re := range b.Order {
		if matchesPrefixed(re, name) {
			return i
		}
	}
	return len(b.Order)
}

// GroupCount is the number of position groups including the trailing
// group for unmatched names.
func (b *BranchSettings) GroupCount() int {
	return len(b.Order) + 1
}

// TermColor picks the terminal color for name. The counter rotates
// through the matched list; unmatched names draw from the unknown list
// with the same counter.
func (b *BranchSettings) TermColor(name string, counter int) uint8 {
	for _, cl := range b.TermColors {
		if matchesPrefixed(cl.Pattern, name) {
			return cl.Colors[counter%len(cl.Colors)]
		}
	}
	return b.TermColorsUnknown[counter%len(b.TermColorsUnknown)]
}

// SVGColor picks the SVG color for name, mirroring TermColor.
func (b *BranchSettings) SVGColor(name string, counter int) string {
	for _, cl := range b.SVGColors {
		if matchesPrefixed(cl.Pattern, name) {
			return cl.Colors[counter%len(cl.Colors)]
		}
	}
	return b.SVGColorsUnknown[counter%len(b.SVGColorsUnknown)]
}

// MergeSummaryBranch extracts the merged-in branch name from a merge
// commit summary. A pattern counts only when it matches, carries
// exactly one capture group and that group takes part in the match;
// the captured text itself may be empty. Returns false when no
// pattern applies.
func (s *Settings) MergeSummaryBranch(summary string) (string, bool) {
	for _, re := range s.MergePatterns {
		m := re.FindStringSubmatchIndex(summary)
		if len(m) == 4 && m[2] >= 0 {
			return summary[m[2]:m[3]], true
		}
	}
	return "", false
}
