// Package git reads release context (branch, HEAD commit, latest tag) from
// the local repository for standalone prepare runs.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/indaco/relfiles/internal/core"
)

// ErrDetachedHead is returned by CurrentBranch when HEAD is not on a branch.
var ErrDetachedHead = errors.New("HEAD is detached")

// Reader implements core.GitContextReader using the git binary.
type Reader struct {
	dir         string
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewReader creates a Reader running git in dir ("" means the working directory).
func NewReader(dir string) *Reader {
	return &Reader{
		dir:         dir,
		execCommand: exec.CommandContext,
	}
}

var _ core.GitContextReader = (*Reader)(nil)

func (r *Reader) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, core.TimeoutGit)
	defer cancel()

	cmd := r.execCommand(ctx, "git", args...)
	if r.dir != "" {
		cmd.Dir = r.dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("git %s: %w", args[0], ctxErr)
		}
		stderrMsg := strings.TrimSpace(stderr.String())
		if stderrMsg != "" {
			return "", fmt.Errorf("%s: %w", stderrMsg, err)
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// CurrentBranch returns the checked-out branch name.
func (r *Reader) CurrentBranch(ctx context.Context) (string, error) {
	branch, err := r.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	if branch == "HEAD" || branch == "" {
		return "", ErrDetachedHead
	}
	return branch, nil
}

// HeadCommit returns the full hash of HEAD.
func (r *Reader) HeadCommit(ctx context.Context) (string, error) {
	return r.run(ctx, "rev-parse", "HEAD")
}

// LatestTag returns the most recent tag reachable from HEAD.
func (r *Reader) LatestTag(ctx context.Context) (string, error) {
	tag, err := r.run(ctx, "describe", "--tags", "--abbrev=0")
	if err != nil {
		return "", err
	}
	if tag == "" {
		return "", fmt.Errorf("no tags found")
	}
	return tag, nil
}
