// Package operations implements the two release phases: verify checks the
// configuration and the files it names, prepare rewrites those files.
package operations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/indaco/relfiles/internal/config"
	"github.com/indaco/relfiles/internal/core"
	"github.com/indaco/relfiles/internal/logging"
)

// VerifyError aggregates every configuration problem found by Verify.
type VerifyError struct {
	Problems []string
}

func (e *VerifyError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid configuration (%d problem(s))", len(e.Problems))
	for _, p := range e.Problems {
		sb.WriteString("\n  - ")
		sb.WriteString(p)
	}
	return sb.String()
}

// Unwrap exposes each problem as its own error.
func (e *VerifyError) Unwrap() []error {
	errs := make([]error, len(e.Problems))
	for i, p := range e.Problems {
		errs[i] = errors.New(p)
	}
	return errs
}

// Verify checks cfg and the accessibility of every configured file. It
// returns nil, a *VerifyError listing every problem, or the context error.
func Verify(ctx context.Context, fs core.FileSystem, cfg *config.Config) error {
	logger := logging.GetLogger("verify")
	done := logging.LogOperationStart(logger, "verify")
	defer done()

	results, err := config.NewValidator(fs, cfg).Validate(ctx)
	if err != nil {
		return err
	}

	for _, r := range results {
		logger.Debug().Str("category", r.Category).Bool("passed", r.Passed).Msg(r.Message)
	}

	if problems := config.Failures(results); len(problems) > 0 {
		return &VerifyError{Problems: problems}
	}
	return nil
}
