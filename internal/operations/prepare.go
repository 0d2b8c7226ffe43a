package operations

import (
	"context"
	"fmt"
	"strings"

	"github.com/indaco/relfiles/internal/config"
	"github.com/indaco/relfiles/internal/core"
	"github.com/indaco/relfiles/internal/logging"
	"github.com/indaco/relfiles/internal/release"
	"github.com/indaco/relfiles/internal/render"
	"github.com/indaco/relfiles/internal/rewriter"
	"github.com/rs/zerolog"
)

// Preparer rewrites the configured files for one release.
type Preparer struct {
	fs     core.FileSystem
	dryRun bool
	trace  zerolog.Logger
}

// NewPreparer creates a Preparer. With dryRun set, rewrites are computed and
// reported but never written, regardless of the configuration.
func NewPreparer(fs core.FileSystem, dryRun bool) *Preparer {
	return &Preparer{
		fs:     fs,
		dryRun: dryRun,
		trace:  logging.GetLogger("prepare"),
	}
}

// Prepare applies every file rule of cfg in declaration order. It aborts with
// release.ErrNoReleaseInfo before touching any file when a version is
// missing, with release.ErrNoBranchInfo when a branch filter cannot be
// evaluated, and on the first hard rewrite or I/O error.
func (p *Preparer) Prepare(ctx context.Context, cfg *config.Config, rc *release.Context) error {
	if !rc.HasReleaseInfo() {
		return release.ErrNoReleaseInfo
	}
	done := logging.LogOperationStart(p.trace, "prepare")
	defer done()

	vars, err := rc.Variables()
	if err != nil {
		return fmt.Errorf("failed to build template variables: %w", err)
	}

	// A missing branch fails the run before any rule is applied.
	branch := rc.BranchName()
	if branch == "" && hasBranchFilter(cfg.Files) {
		return release.ErrNoBranchInfo
	}

	dryRun := p.dryRun || cfg.DryRun
	logger := rc.Log()

	for _, file := range cfg.Files {
		if len(file.Branches) > 0 && !branchAllowed(file.Branches, branch) {
			logger.Log("Skipping file %s because it should not run in the branch %s", strings.Join(file.Path, ","), branch)
			continue
		}

		paths, err := config.ExpandPaths(ctx, p.fs, file.Path)
		if err != nil {
			return err
		}

		for _, path := range paths {
			logger.Log("Replacing %s with version %s in %s", rc.LastRelease.Version, rc.NextRelease.Version, path)
			if err := p.prepareFile(ctx, file, path, rc, vars, dryRun); err != nil {
				return err
			}
		}
	}

	return nil
}

func (p *Preparer) prepareFile(ctx context.Context, file config.FileSpec, path string, rc *release.Context, vars render.Variables, dryRun bool) error {
	data, err := p.fs.ReadFile(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	original := string(data)

	content, err := rewrite(original, file, rc, vars)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	changed := content != original
	p.trace.Debug().
		Str("path", path).
		Str("type", string(file.Type)).
		Bool("changed", changed).
		Bool("dry_run", dryRun).
		Msg("rewrote file")

	if dryRun {
		if changed {
			rc.Log().Log("Dry run: %s would be updated", path)
		} else {
			rc.Log().Log("Dry run: %s would be left unchanged", path)
		}
		return nil
	}

	mode := core.PermDefault
	if info, err := p.fs.Stat(ctx, path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := p.fs.WriteFile(ctx, path, []byte(content), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// rewrite dispatches content to the rewriter for the file's type.
func rewrite(content string, file config.FileSpec, rc *release.Context, vars render.Variables) (string, error) {
	lastVersion := rc.LastRelease.Version
	nextVersion := rc.NextRelease.Version

	switch file.Type {
	case config.TypeK8s:
		oldVersion := ""
		if file.ExactMatch {
			oldVersion = lastVersion
		}
		var err error
		for _, image := range file.Image {
			if content, err = rewriter.UpdateManifestImage(content, image, nextVersion, oldVersion); err != nil {
				return "", err
			}
		}
		return content, nil

	case config.TypeXML:
		replacements := make([]rewriter.Replacement, len(file.Replacements))
		for i, r := range file.Replacements {
			replacements[i] = rewriter.Replacement{Key: r.Key, Value: r.Value}
		}
		return rewriter.UpdateTags(content, replacements, vars, file.EscapeKeys, rc.Log()), nil

	case config.TypeFlutter:
		return rewriter.UpdatePubspecVersion(content, lastVersion, nextVersion)

	case config.TypeContainerfile:
		return rewriter.UpdateLabel(content, file.Label, nextVersion, rc.Log()), nil

	default:
		return "", fmt.Errorf("unsupported file type %q", file.Type)
	}
}
