// Package release models the release information handed to relfiles by the
// release orchestrator: the previous and next release, the current branch,
// environment variables and the logging sink.
package release

import (
	"errors"
	"maps"
	"slices"

	"github.com/indaco/relfiles/internal/render"
)

var (
	// ErrNoReleaseInfo is returned when the previous or next version is unknown.
	ErrNoReleaseInfo = errors.New("unable to update file contents because the release context has no release information")

	// ErrNoBranchInfo is returned when a branch filter is configured but the
	// current branch is unknown.
	ErrNoBranchInfo = errors.New("unable to check branch because the release context has no branch information")
)

// Release describes one release (the last published one or the next one).
type Release struct {
	Version string
	GitHead string
	GitTag  string
	Notes   string
	Type    string
	Channel string
}

// Branch is the branch the release runs on.
type Branch struct {
	Name string
}

// Context is the release context for one prepare run.
type Context struct {
	LastRelease *Release
	NextRelease *Release
	Branch      *Branch
	Env         map[string]string
	Logger      Logger

	// Extra is an optional JSON document (typically the orchestrator's own
	// context) used as the base of the template variables.
	Extra string
}

// HasReleaseInfo reports whether both the previous and next version are known.
func (c *Context) HasReleaseInfo() bool {
	return c != nil &&
		c.LastRelease != nil && c.LastRelease.Version != "" &&
		c.NextRelease != nil && c.NextRelease.Version != ""
}

// BranchName returns the current branch name, or "" when unknown.
func (c *Context) BranchName() string {
	if c == nil || c.Branch == nil {
		return ""
	}
	return c.Branch.Name
}

// Log returns the configured logger, or a no-op logger.
func (c *Context) Log() Logger {
	if c == nil || c.Logger == nil {
		return NopLogger{}
	}
	return c.Logger
}

// Variables builds the template variables: the context fields merged with the
// environment at the top level. Environment values win on name collisions.
func (c *Context) Variables() (render.Variables, error) {
	vars := render.NewVariables(c.Extra)

	type field struct {
		path  string
		value string
	}
	var fields []field
	addRelease := func(prefix string, r *Release) {
		if r == nil {
			return
		}
		fields = append(fields,
			field{prefix + ".version", r.Version},
			field{prefix + ".gitHead", r.GitHead},
			field{prefix + ".gitTag", r.GitTag},
			field{prefix + ".notes", r.Notes},
			field{prefix + ".type", r.Type},
			field{prefix + ".channel", r.Channel},
		)
	}
	addRelease("lastRelease", c.LastRelease)
	addRelease("nextRelease", c.NextRelease)
	if c.Branch != nil {
		fields = append(fields, field{"branch.name", c.Branch.Name})
	}

	var err error
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if vars, err = vars.With(f.path, f.value); err != nil {
			return vars, err
		}
	}

	for _, key := range slices.Sorted(maps.Keys(c.Env)) {
		if vars, err = vars.WithKey(key, c.Env[key]); err != nil {
			return vars, err
		}
	}

	return vars, nil
}
