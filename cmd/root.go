// Package cmd wires the command line to the pipeline: open the
// repository, load settings, build the graph, then hand off to the
// TUI or one of the direct output modes.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gitlanes/gitlanes/internal/config"
	"github.com/gitlanes/gitlanes/internal/export"
	"github.com/gitlanes/gitlanes/internal/git"
	"github.com/gitlanes/gitlanes/internal/graph"
	"github.com/gitlanes/gitlanes/internal/render"
	"github.com/gitlanes/gitlanes/internal/ui"
)

var (
	flagMaxCount int
	flagModel    string
	flagLocal    bool
	flagReverse  bool
	flagNoColor  bool
	flagCompact  bool
	flagAscii    bool
	flagFormat   string
	flagSVG      string
	flagJSON     string
	flagPrint    bool
	flagDebug    bool
)

var rootCmd = &cobra.Command{
	Use:   "gitlanes [path]",
	Short: "Branch-aware commit graph for the terminal",
	Long: `gitlanes draws the commit history of a repository as colored branch
lanes, assigning every commit to the branch that created it. It runs
as an interactive viewer by default; --print, --svg and --json render
the graph directly and exit.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if flagDebug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}

		repo, err := git.Open(path)
		if err != nil {
			return err
		}

		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		loader := func() (*graph.Graph, error) {
			return materialize(repo, settings, flagMaxCount)
		}

		if flagSVG != "" || flagJSON != "" || flagPrint {
			g, err := loader()
			if err != nil {
				return err
			}
			return writeOutputs(g, settings, repo.Name())
		}

		status := func() (string, error) {
			summary, err := repo.Status()
			if err != nil {
				return "", err
			}
			return summary.String(), nil
		}

		p := tea.NewProgram(ui.NewModel(loader, status, settings), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to run the app: %w", err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.Flags()
	flags.IntVarP(&flagMaxCount, "max-count", "n", 0, "limit the number of commits (0 = no limit)")
	flags.StringVar(&flagModel, "model", "",
		fmt.Sprintf("branching model: %s (default from the settings file)", strings.Join(config.Models(), ", ")))
	flags.BoolVarP(&flagLocal, "local", "l", false, "skip remote-tracking branches")
	flags.BoolVarP(&flagReverse, "reverse", "r", false, "oldest commit first")
	flags.BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&flagCompact, "compact", "c", false, "no spacer rows between commits")
	flags.BoolVar(&flagAscii, "ascii", false, "draw the lanes with ASCII characters only")
	flags.StringVar(&flagFormat, "format", "oneline", "commit format: oneline or short")
	flags.StringVar(&flagSVG, "svg", "", "write the graph as SVG to `FILE` and exit")
	flags.StringVar(&flagJSON, "json", "", "write the graph as JSON to `FILE` and exit")
	flags.BoolVarP(&flagPrint, "print", "p", false, "print the graph and exit instead of starting the viewer")
	flags.BoolVar(&flagDebug, "debug", false, "verbose logging")
}

// loadSettings picks the branching model and applies flag overrides.
// --model replaces the settings file with a built-in model.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	var (
		settings *config.Settings
		err      error
	)
	if flagModel != "" {
		settings, err = config.Builtin(flagModel)
	} else {
		settings, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("local") {
		settings.IncludeRemote = !flagLocal
	}
	if flags.Changed("reverse") {
		settings.Reverse = flagReverse
	}
	if flags.Changed("compact") {
		settings.Compact = flagCompact
	}
	if flags.Changed("no-color") {
		settings.Colored = !flagNoColor
	}
	if flags.Changed("ascii") {
		settings.Ascii = flagAscii
	}
	if flags.Changed("format") {
		switch flagFormat {
		case "oneline":
			settings.Format = config.FormatOneline
		case "short":
			settings.Format = config.FormatShort
		default:
			return nil, fmt.Errorf("unknown format %q (expected oneline or short)", flagFormat)
		}
	}
	return settings, nil
}

// materialize reads the repository and builds the graph.
func materialize(repo *git.Repository, settings *config.Settings, maxCount int) (*graph.Graph, error) {
	commits, err := repo.Commits(maxCount)
	if err != nil {
		return nil, err
	}
	refs, err := repo.BranchRefs(settings.IncludeRemote)
	if err != nil {
		return nil, err
	}
	tags, err := repo.TagRefs()
	if err != nil {
		return nil, err
	}
	head, err := repo.Head()
	if err != nil {
		return nil, err
	}
	return graph.Build(commits, refs, tags, head, settings)
}

// writeOutputs runs the direct output modes. "-" sends a document to
// stdout instead of a file.
func writeOutputs(g *graph.Graph, settings *config.Settings, repoName string) error {
	if flagSVG != "" {
		doc := render.SVG(g, settings)
		if err := writeFile(flagSVG, []byte(doc)); err != nil {
			return fmt.Errorf("failed to write the SVG file: %w", err)
		}
	}
	if flagJSON != "" {
		data, err := export.JSON(g, repoName)
		if err != nil {
			return err
		}
		if err := writeFile(flagJSON, append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write the JSON file: %w", err)
		}
	}
	if flagPrint {
		fmt.Println(render.Join(render.Text(g, settings)))
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
