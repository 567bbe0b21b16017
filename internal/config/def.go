package config

import (
	"fmt"
	"regexp"

	"github.com/gitlanes/gitlanes/internal/palette"
)

// SettingsDef is the YAML form of Settings. Patterns are regex strings
// and terminal colors are palette names; Compile turns the definition
// into a validated Settings.
type SettingsDef struct {
	Model         string            `yaml:"model"`
	Branches      BranchSettingsDef `yaml:"branches"`
	MergePatterns []string          `yaml:"merge_patterns"`
	Order         OrderDef          `yaml:"order"`

	IncludeRemote bool   `yaml:"include_remote"`
	Reverse       bool   `yaml:"reverse"`
	Compact       bool   `yaml:"compact"`
	Colored       bool   `yaml:"colored"`
	Ascii         bool   `yaml:"ascii"`
	Format        string `yaml:"format"`
}

type BranchSettingsDef struct {
	Persistence []string  `yaml:"persistence"`
	Order       []string  `yaml:"order"`
	TermColors  ColorsDef `yaml:"terminal_colors"`
	SVGColors   ColorsDef `yaml:"svg_colors"`
}

type ColorsDef struct {
	Matches []ColorMatchDef `yaml:"matches"`
	Unknown []string        `yaml:"unknown"`
}

type ColorMatchDef struct {
	Pattern string   `yaml:"pattern"`
	Colors  []string `yaml:"colors"`
}

type OrderDef struct {
	ShortestFirst bool `yaml:"shortest_first"`
	Forward       bool `yaml:"forward"`
}

// Compile validates the definition and resolves patterns and color
// names. Any bad regex, unknown color name or empty fallback color
// list is an error here, never later.
func (d *SettingsDef) Compile() (*Settings, error) {
	s := &Settings{
		Model: d.Model,
		Order: BranchOrder{
			ShortestFirst: d.Order.ShortestFirst,
			Forward:       d.Order.Forward,
		},
		IncludeRemote: d.IncludeRemote,
		Reverse:       d.Reverse,
		Compact:       d.Compact,
		Colored:       d.Colored,
		Ascii:         d.Ascii,
	}

	var err error
	if s.Format, err = parseFormat(d.Format); err != nil {
		return nil, err
	}
	if s.Branches.Persistence, err = compileAll(d.Branches.Persistence, "branches.persistence"); err != nil {
		return nil, err
	}
	if s.Branches.Order, err = compileAll(d.Branches.Order, "branches.order"); err != nil {
		return nil, err
	}
	if s.MergePatterns, err = compileAll(d.MergePatterns, "merge_patterns"); err != nil {
		return nil, err
	}

	for _, m := range d.Branches.TermColors.Matches {
		re, err := regexp.Compile(m.Pattern)
		if err != nil {
			return nil, fmt.Errorf("branches.terminal_colors pattern %q: %w", m.Pattern, err)
		}
		colors, err := lookupAll(m.Colors)
		if err != nil {
			return nil, fmt.Errorf("branches.terminal_colors %q: %w", m.Pattern, err)
		}
		s.Branches.TermColors = append(s.Branches.TermColors, ColorList{Pattern: re, Colors: colors})
	}
	if s.Branches.TermColorsUnknown, err = lookupAll(d.Branches.TermColors.Unknown); err != nil {
		return nil, fmt.Errorf("branches.terminal_colors unknown: %w", err)
	}
	if len(s.Branches.TermColorsUnknown) == 0 {
		return nil, fmt.Errorf("branches.terminal_colors: %w", ErrNoFallbackColors)
	}

	for _, m := range d.Branches.SVGColors.Matches {
		re, err := regexp.Compile(m.Pattern)
		if err != nil {
			return nil, fmt.Errorf("branches.svg_colors pattern %q: %w", m.Pattern, err)
		}
		s.Branches.SVGColors = append(s.Branches.SVGColors, SVGColorList{Pattern: re, Colors: m.Colors})
	}
	s.Branches.SVGColorsUnknown = d.Branches.SVGColors.Unknown
	if len(s.Branches.SVGColorsUnknown) == 0 {
		return nil, fmt.Errorf("branches.svg_colors: %w", ErrNoFallbackColors)
	}

	return s, nil
}

func parseFormat(name string) (CommitFormat, error) {
	switch name {
	case "", "oneline":
		return FormatOneline, nil
	case "short":
		return FormatShort, nil
	}
	return 0, fmt.Errorf("format %q: %w", name, ErrUnknownFormat)
}

func compileAll(patterns []string, section string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%s pattern %q: %w", section, p, err)
		}
		res = append(res, re)
	}
	return res, nil
}

func lookupAll(names []string) ([]uint8, error) {
	colors := make([]uint8, 0, len(names))
	for _, n := range names {
		idx, err := palette.Lookup(n)
		if err != nil {
			return nil, err
		}
		colors = append(colors, idx)
	}
	return colors, nil
}
