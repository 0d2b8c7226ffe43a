package prepare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/indaco/relfiles/internal/config"
	"github.com/indaco/relfiles/internal/core"
	"github.com/indaco/relfiles/internal/git"
	"github.com/indaco/relfiles/internal/logging"
	"github.com/indaco/relfiles/internal/operations"
	"github.com/indaco/relfiles/internal/printer"
	"github.com/indaco/relfiles/internal/release"
	"github.com/indaco/relfiles/internal/semver"
	"github.com/urfave/cli/v3"
)

// Run returns the "prepare" command.
func Run(fs core.FileSystem, gitReader core.GitContextReader) *cli.Command {
	return &cli.Command{
		Name:      "prepare",
		Usage:     "Rewrite the version references in every configured file",
		UsageText: "relfiles prepare --last-version <v> --next-version <v> [--branch name] [--dry-run]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "last-version",
				Usage:   "Version of the last release",
				Sources: cli.EnvVars("RELFILES_LAST_VERSION"),
			},
			&cli.StringFlag{
				Name:    "next-version",
				Usage:   "Version of the release being prepared",
				Sources: cli.EnvVars("RELFILES_NEXT_VERSION"),
			},
			&cli.StringFlag{
				Name:    "branch",
				Usage:   "Branch the release runs on",
				Sources: cli.EnvVars("RELFILES_BRANCH"),
			},
			&cli.StringFlag{
				Name:  "commit",
				Usage: "Commit of the next release (nextRelease.gitHead)",
			},
			&cli.StringFlag{
				Name:  "tag",
				Usage: "Tag of the next release (nextRelease.gitTag)",
			},
			&cli.StringFlag{
				Name:  "channel",
				Usage: "Distribution channel of the next release",
			},
			&cli.StringFlag{
				Name:  "context-file",
				Usage: "JSON release context to read before applying flags",
			},
			&cli.BoolFlag{
				Name:  "from-git",
				Usage: "Fill a missing branch, commit or last version from the local git repository",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Report the rewrites without writing any file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runPrepareCmd(ctx, cmd, fs, gitReader)
		},
	}
}

func runPrepareCmd(ctx context.Context, cmd *cli.Command, fs core.FileSystem, gitReader core.GitContextReader) error {
	logger := logging.GetLogger("prepare")
	done := logging.LogOperationStart(logger, "prepare")
	defer done()

	cfg, path, err := config.Load(ctx, fs, cmd.String("config"))
	if err != nil {
		return err
	}
	logger.Debug().Str("config", path).Int("files", len(cfg.Files)).Msg("Configuration loaded")

	stderr := cmd.Root().ErrWriter
	rc, err := buildContext(ctx, cmd, fs, gitReader, stderr)
	if err != nil {
		return err
	}
	rc.Logger = &release.ConsoleLogger{
		Out:   cmd.Root().Writer,
		Err:   stderr,
		Trace: logging.GetLogger("release"),
	}

	if rc.HasReleaseInfo() {
		if err := semver.CheckProgression(rc.LastRelease.Version, rc.NextRelease.Version); err != nil {
			printer.FprintWarning(stderr, err.Error())
		}
	}

	return operations.NewPreparer(fs, cfg.DryRun || cmd.Bool("dry-run")).Prepare(ctx, cfg, rc)
}

// buildContext assembles the release context: the context file first, then
// explicit flags, then git for whatever is still missing.
func buildContext(ctx context.Context, cmd *cli.Command, fs core.FileSystem, gitReader core.GitContextReader, warn io.Writer) (*release.Context, error) {
	rc := &release.Context{}
	if file := cmd.String("context-file"); file != "" {
		data, err := fs.ReadFile(ctx, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read release context %q: %w", file, err)
		}
		if rc, err = release.FromJSON(string(data)); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	}
	if rc.Env == nil {
		rc.Env = environ()
	}

	if v := cmd.String("last-version"); v != "" {
		lastRelease(rc).Version = v
	}
	if v := cmd.String("next-version"); v != "" {
		nextRelease(rc).Version = v
	}
	if v := cmd.String("commit"); v != "" {
		nextRelease(rc).GitHead = v
	}
	if v := cmd.String("tag"); v != "" {
		nextRelease(rc).GitTag = v
	}
	if v := cmd.String("channel"); v != "" {
		nextRelease(rc).Channel = v
	}
	if v := cmd.String("branch"); v != "" {
		rc.Branch = &release.Branch{Name: v}
	}

	if cmd.Bool("from-git") && gitReader != nil {
		fillFromGit(ctx, rc, gitReader, warn)
	}

	if rc.LastRelease != nil {
		rc.LastRelease.Version = semver.Normalize(rc.LastRelease.Version)
	}
	if rc.NextRelease != nil {
		rc.NextRelease.Version = semver.Normalize(rc.NextRelease.Version)
	}
	return rc, nil
}

// fillFromGit never fails the run: git problems become warnings and the
// missing value stays missing.
func fillFromGit(ctx context.Context, rc *release.Context, gitReader core.GitContextReader, warn io.Writer) {
	if rc.BranchName() == "" {
		branch, err := gitReader.CurrentBranch(ctx)
		switch {
		case errors.Is(err, git.ErrDetachedHead):
			printer.FprintWarning(warn, "HEAD is detached, branch filters cannot be applied without --branch")
		case err != nil:
			printer.FprintWarning(warn, fmt.Sprintf("unable to read the current branch: %v", err))
		default:
			rc.Branch = &release.Branch{Name: branch}
		}
	}

	if rc.NextRelease == nil || rc.NextRelease.GitHead == "" {
		if head, err := gitReader.HeadCommit(ctx); err != nil {
			printer.FprintWarning(warn, fmt.Sprintf("unable to read the HEAD commit: %v", err))
		} else {
			nextRelease(rc).GitHead = head
		}
	}

	if rc.LastRelease == nil || rc.LastRelease.Version == "" {
		tag, err := gitReader.LatestTag(ctx)
		if err != nil {
			printer.FprintWarning(warn, fmt.Sprintf("unable to read the latest tag: %v", err))
			return
		}
		last := lastRelease(rc)
		last.Version = tag
		last.GitTag = tag
	}
}

func lastRelease(rc *release.Context) *release.Release {
	if rc.LastRelease == nil {
		rc.LastRelease = &release.Release{}
	}
	return rc.LastRelease
}

func nextRelease(rc *release.Context) *release.Release {
	if rc.NextRelease == nil {
		rc.NextRelease = &release.Release{}
	}
	return rc.NextRelease
}

func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok && key != "" {
			env[key] = value
		}
	}
	return env
}
