package cli

import (
	"context"
	"fmt"

	"github.com/indaco/relfiles/internal/commands/initialize"
	"github.com/indaco/relfiles/internal/commands/prepare"
	"github.com/indaco/relfiles/internal/commands/verify"
	"github.com/indaco/relfiles/internal/core"
	"github.com/indaco/relfiles/internal/git"
	"github.com/indaco/relfiles/internal/logging"
	"github.com/indaco/relfiles/internal/printer"
	"github.com/indaco/relfiles/internal/tui"
	"github.com/indaco/relfiles/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

func init() {
	// -v is taken by --verbose.
	urfavecli.VersionFlag = &urfavecli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

// Deps are the collaborators shared by the commands. Zero values select the
// production implementations.
type Deps struct {
	FS   core.FileSystem
	Git  core.GitContextReader
	Init initialize.Options
}

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the relfiles cli.
func New(deps Deps) *urfavecli.Command {
	if deps.FS == nil {
		deps.FS = core.NewOSFileSystem()
	}
	if deps.Git == nil {
		deps.Git = git.NewReader("")
	}
	if deps.Init.FS == nil {
		deps.Init.FS = deps.FS
	}

	return &urfavecli.Command{
		Name:                  "relfiles",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Keep version references in deployment and project files in step with releases",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to the configuration file",
				DefaultText: ".relfiles.yaml",
				Sources:     urfavecli.EnvVars("RELFILES_CONFIG"),
			},
			&urfavecli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&urfavecli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Increase diagnostic output (repeat for more)",
			},
			&urfavecli.StringFlag{
				Name:  "theme",
				Usage: "Theme for interactive prompts",
				Value: "relfiles",
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			noColor := cmd.Bool("no-color")
			printer.SetNoColor(noColor)
			logging.Setup(cmd.Count("verbose"), cmd.ErrWriter, noColor)

			if theme := cmd.String("theme"); !tui.IsValidTheme(theme) {
				return ctx, fmt.Errorf("unknown theme %q, valid themes: %v", theme, tui.ValidThemes)
			}
			tui.SetTheme(cmd.String("theme"))
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			verify.Run(deps.FS),
			prepare.Run(deps.FS, deps.Git),
			initialize.Run(deps.Init),
		},
	}
}
