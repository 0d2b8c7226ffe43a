// Package core holds the small interfaces and constants shared across
// relfiles packages: file-system access, git context reading and the
// permission and timeout defaults used by the commands.
package core

import (
	"context"
	"os"
	"time"
)

// FileSystem abstracts file operations for testability.
// All methods honor context cancellation before touching the disk.
type FileSystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error
	Stat(ctx context.Context, path string) (os.FileInfo, error)
	ReadDir(ctx context.Context, path string) ([]os.DirEntry, error)

	// Access reports an error if path cannot be opened for both reading and writing.
	Access(ctx context.Context, path string) error

	// Glob expands a doublestar pattern ("deploy/**/*.yaml") into matching file paths.
	Glob(ctx context.Context, pattern string) ([]string, error)
}

// GitContextReader reads release context from the local git repository.
type GitContextReader interface {
	CurrentBranch(ctx context.Context) (string, error)
	HeadCommit(ctx context.Context) (string, error)
	LatestTag(ctx context.Context) (string, error)
}

// Marshaler abstracts config serialization.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}

const (
	// PermOwnerRW is used for files relfiles creates itself (config files).
	PermOwnerRW os.FileMode = 0o600

	// PermDefault is used when the mode of an existing file cannot be determined.
	PermDefault os.FileMode = 0o644
)

const (
	// TimeoutGit bounds a single git invocation.
	TimeoutGit = 10 * time.Second

	// MaxDiscoveryDepth is the default directory depth scanned by discovery.
	MaxDiscoveryDepth = 4
)
