package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/indaco/relfiles/internal/core"
)

// HasGlobMeta reports whether path contains doublestar pattern syntax.
func HasGlobMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

// ExpandPaths resolves the configured paths of a file spec in order.
// Literal paths are returned as given; patterns are expanded through fs
// and contribute their matches in lexical order. Duplicates are dropped.
func ExpandPaths(ctx context.Context, fs core.FileSystem, paths []string) ([]string, error) {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, p := range paths {
		if !HasGlobMeta(p) {
			add(p)
			continue
		}
		matches, err := fs.Glob(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("invalid path pattern %q: %w", p, err)
		}
		for _, m := range matches {
			add(m)
		}
	}

	return out, nil
}
