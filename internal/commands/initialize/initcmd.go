package initialize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/indaco/relfiles/internal/config"
	"github.com/indaco/relfiles/internal/core"
	"github.com/indaco/relfiles/internal/discovery"
	"github.com/indaco/relfiles/internal/logging"
	"github.com/indaco/relfiles/internal/printer"
	"github.com/indaco/relfiles/internal/tui"
	"github.com/urfave/cli/v3"
)

// ErrNotInteractive is returned when candidates would have to be chosen
// interactively but no terminal is available.
var ErrNotInteractive = errors.New("not running in an interactive terminal, re-run with --yes to include every discovered file")

// Options wires the dependencies of the init command.
type Options struct {
	FS       core.FileSystem
	Prompter Prompter
	Saver    *config.ConfigSaver

	// Interactive reports whether prompts can be shown. Defaults to tui.IsInteractive.
	Interactive func() bool
}

// Run returns the "init" command.
func Run(opts Options) *cli.Command {
	if opts.Prompter == nil {
		opts.Prompter = NewPrompter()
	}
	if opts.Saver == nil {
		opts.Saver = config.NewConfigSaver(nil, nil, nil)
	}
	if opts.Interactive == nil {
		opts.Interactive = tui.IsInteractive
	}

	return &cli.Command{
		Name:      "init",
		Usage:     "Create a configuration from the version-bearing files found in the project",
		UsageText: "relfiles init [--dir path] [--exclude pattern] [--yes] [--force]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Directory to scan; the configuration is written there",
				Value: ".",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Glob pattern of paths to leave out of the scan (repeatable)",
			},
			&cli.IntFlag{
				Name:  "depth",
				Usage: "Maximum directory depth to scan",
				Value: core.MaxDiscoveryDepth,
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Include every discovered file without prompting",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInitCmd(ctx, cmd, opts)
		},
	}
}

func runInitCmd(ctx context.Context, cmd *cli.Command, opts Options) error {
	logger := logging.GetLogger("init")
	done := logging.LogOperationStart(logger, "init")
	defer done()

	out := cmd.Root().Writer
	dir := cmd.String("dir")
	target := cmd.String("config")
	if target == "" {
		target = filepath.Join(dir, config.DefaultConfigFile)
	}

	if !cmd.Bool("force") {
		if _, err := opts.FS.Stat(ctx, target); err == nil {
			return fmt.Errorf("configuration file %q already exists, use --force to overwrite it", target)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check %q: %w", target, err)
		}
	}

	svc := discovery.NewService(opts.FS, cmd.StringSlice("exclude"), int(cmd.Int("depth")))
	result, err := svc.Discover(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to scan %q: %w", dir, err)
	}
	if result.IsEmpty() {
		return fmt.Errorf("no version-bearing files found in %q", dir)
	}
	logger.Debug().Int("candidates", len(result.Candidates)).Msg("Discovery finished")

	printCandidates(out, result)

	selected, err := selectCandidates(cmd, opts, result)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		printer.FprintWarning(out, "No files selected, nothing written.")
		return nil
	}

	cfg := (&discovery.Result{Candidates: selected}).Config()
	if err := opts.Saver.SaveTo(cfg, target); err != nil {
		return err
	}

	printer.FprintSuccess(out, fmt.Sprintf("Wrote %s with %d file rule(s)", target, len(cfg.Files)))
	printer.FprintFaint(out, "Run 'relfiles verify' to check the configuration.")
	return nil
}

func printCandidates(out io.Writer, result *discovery.Result) {
	fmt.Fprintf(out, "Found %d version-bearing file(s):\n", len(result.Candidates))
	for _, c := range result.Candidates {
		line := fmt.Sprintf("  %-14s %s", c.Type, c.Path)
		if c.Version != "" {
			line += " " + printer.Faint("("+c.Version+")")
		}
		fmt.Fprintln(out, line)
	}

	if result.HasMismatches() {
		versions := strings.Join(discovery.UniqueVersions(result), ", ")
		printer.FprintWarning(out, fmt.Sprintf("Files disagree on the current version (%s):", versions))
		for _, m := range result.Mismatches {
			printer.FprintWarning(out, "  "+m.String())
		}
	}
}

// selectCandidates returns every candidate with --yes, otherwise asks the user.
func selectCandidates(cmd *cli.Command, opts Options, result *discovery.Result) ([]discovery.Candidate, error) {
	if cmd.Bool("yes") {
		return result.Candidates, nil
	}
	if !opts.Interactive() {
		return nil, ErrNotInteractive
	}

	options, defaults := buildFileOptions(result.Candidates)
	paths, err := opts.Prompter.MultiSelect(
		"Files to keep in sync",
		"Select the files relfiles should rewrite on release",
		options,
		defaults,
	)
	if err != nil {
		return nil, fmt.Errorf("file selection failed: %w", err)
	}
	selected := filterCandidatesByPaths(result.Candidates, paths)
	if len(selected) == 0 {
		return nil, nil
	}

	ok, err := opts.Prompter.Confirm(
		fmt.Sprintf("Write %d file rule(s)?", len(selected)),
		"The configuration can be edited by hand afterwards",
	)
	if err != nil {
		return nil, fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return selected, nil
}

// buildFileOptions creates huh options and default selections from candidates.
func buildFileOptions(candidates []discovery.Candidate) ([]huh.Option[string], []string) {
	options := make([]huh.Option[string], len(candidates))
	defaults := make([]string, len(candidates))

	for i, c := range candidates {
		options[i] = huh.NewOption(c.Description(), c.Path)
		defaults[i] = c.Path
	}

	return options, defaults
}

// filterCandidatesByPaths returns candidates whose paths are in the selected list.
func filterCandidatesByPaths(candidates []discovery.Candidate, selectedPaths []string) []discovery.Candidate {
	selected := make([]discovery.Candidate, 0, len(selectedPaths))
	for _, path := range selectedPaths {
		for _, c := range candidates {
			if c.Path == path {
				selected = append(selected, c)
				break
			}
		}
	}
	return selected
}
