package config

import "fmt"

// defaultMergePatterns recognize the merge commit summaries written by
// git itself, GitHub, GitLab and Bitbucket. Each pattern captures the
// merged-in branch name as its only group.
var defaultMergePatterns = []string{
	`^Merge branch '(.+)' into '.+'$`,
	`^Merge branch '(.+)' into .+$`,
	`^Merge branch '(.+)'$`,
	`^Merge remote-tracking branch '(.+)' into .+$`,
	`^Merge remote-tracking branch '(.+)'$`,
	`^Merge pull request #[0-9]+ from [^/]+/(.+)$`,
	`^Merge branch '(.+)' of .+$`,
	`^Merged in (.+) \(pull request #[0-9]+\)$`,
}

// Models returns the names of the built-in branching models.
func Models() []string {
	return []string{"git-flow", "simple", "none"}
}

// BuiltinDef returns the definition of a built-in branching model.
func BuiltinDef(name string) (*SettingsDef, error) {
	switch name {
	case "git-flow":
		return gitFlowDef(), nil
	case "simple":
		return simpleDef(), nil
	case "none":
		return noneDef(), nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownModel)
}

// Builtin returns a built-in branching model, compiled.
func Builtin(name string) (*Settings, error) {
	def, err := BuiltinDef(name)
	if err != nil {
		return nil, err
	}
	return def.Compile()
}

// gitFlowDef models trunk, develop and the short-lived feature,
// release, hotfix and bugfix lines.
func gitFlowDef() *SettingsDef {
	return &SettingsDef{
		Model: "git-flow",
		Branches: BranchSettingsDef{
			Persistence: []string{
				`^(master|main)$`,
				`^(develop|dev)$`,
				`^feature/.+$`,
				`^release/.+$`,
				`^(hotfix|bugfix)/.+$`,
			},
			Order: []string{
				`^(master|main)$`,
				`^(hotfix|bugfix)/.+$`,
				`^release/.+$`,
				`^(develop|dev)$`,
			},
			TermColors: ColorsDef{
				Matches: []ColorMatchDef{
					{Pattern: `^(master|main)$`, Colors: []string{"bright_blue"}},
					{Pattern: `^(develop|dev)$`, Colors: []string{"bright_yellow"}},
					{Pattern: `^feature/.+$`, Colors: []string{"bright_magenta", "bright_cyan"}},
					{Pattern: `^release/.+$`, Colors: []string{"bright_green"}},
					{Pattern: `^(hotfix|bugfix)/.+$`, Colors: []string{"bright_red"}},
					{Pattern: `^tags/.+$`, Colors: []string{"bright_green"}},
				},
				Unknown: []string{"white"},
			},
			SVGColors: ColorsDef{
				Matches: []ColorMatchDef{
					{Pattern: `^(master|main)$`, Colors: []string{"blue"}},
					{Pattern: `^(develop|dev)$`, Colors: []string{"orange"}},
					{Pattern: `^feature/.+$`, Colors: []string{"magenta", "turquoise"}},
					{Pattern: `^release/.+$`, Colors: []string{"green"}},
					{Pattern: `^(hotfix|bugfix)/.+$`, Colors: []string{"red"}},
					{Pattern: `^tags/.+$`, Colors: []string{"green"}},
				},
				Unknown: []string{"gray"},
			},
		},
		MergePatterns: defaultMergePatterns,
		Order:         OrderDef{ShortestFirst: true, Forward: false},
		IncludeRemote: true,
		Colored:       true,
	}
}

// simpleDef knows only the trunk; every other branch rotates through
// the fallback colors.
func simpleDef() *SettingsDef {
	return &SettingsDef{
		Model: "simple",
		Branches: BranchSettingsDef{
			Persistence: []string{`^(master|main)$`},
			Order:       []string{`^(master|main)$`},
			TermColors: ColorsDef{
				Matches: []ColorMatchDef{
					{Pattern: `^(master|main)$`, Colors: []string{"bright_blue"}},
				},
				Unknown: []string{
					"bright_yellow", "bright_green", "bright_red",
					"bright_magenta", "bright_cyan",
				},
			},
			SVGColors: ColorsDef{
				Matches: []ColorMatchDef{
					{Pattern: `^(master|main)$`, Colors: []string{"blue"}},
				},
				Unknown: []string{"orange", "green", "red", "magenta", "turquoise"},
			},
		},
		MergePatterns: defaultMergePatterns,
		Order:         OrderDef{ShortestFirst: true, Forward: false},
		IncludeRemote: true,
		Colored:       true,
	}
}

// noneDef applies no branch rules at all; branches keep insertion
// order and rotate through the fallback colors.
func noneDef() *SettingsDef {
	return &SettingsDef{
		Model: "none",
		Branches: BranchSettingsDef{
			TermColors: ColorsDef{
				Unknown: []string{
					"bright_blue", "bright_yellow", "bright_green",
					"bright_red", "bright_magenta", "bright_cyan",
				},
			},
			SVGColors: ColorsDef{
				Unknown: []string{"blue", "orange", "green", "red", "magenta", "turquoise"},
			},
		},
		MergePatterns: defaultMergePatterns,
		Order:         OrderDef{ShortestFirst: true, Forward: false},
		IncludeRemote: true,
		Colored:       true,
	}
}
