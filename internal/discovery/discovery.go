package discovery

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/indaco/relfiles/internal/core"
)

// skipDirs are never descended into.
var skipDirs = []string{"node_modules", "vendor", ".git", "__pycache__", "target", "dist", "build", "bin", "obj"}

// Service provides candidate file discovery.
type Service struct {
	fs       core.FileSystem
	excludes []string
	maxDepth int
}

// NewService creates a discovery Service. Excludes are doublestar patterns
// matched against both the entry name and its path relative to the root. A
// negative maxDepth selects core.MaxDiscoveryDepth.
func NewService(fs core.FileSystem, excludes []string, maxDepth int) *Service {
	if maxDepth < 0 {
		maxDepth = core.MaxDiscoveryDepth
	}
	return &Service{fs: fs, excludes: excludes, maxDepth: maxDepth}
}

// Discover scans root and returns every candidate file found.
func (s *Service) Discover(ctx context.Context, root string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Candidates: make([]Candidate, 0)}
	err := s.walkDirectory(ctx, root, root, 0, func(path, rel string) error {
		fileType := classify(filepath.Base(path))
		if fileType == "" {
			return nil
		}
		data, err := s.fs.ReadFile(ctx, path)
		if err != nil {
			// Skip files we can't read
			return nil
		}
		candidate, ok := inspect(fileType, string(data))
		if !ok {
			return nil
		}
		candidate.Path = rel
		result.Candidates = append(result.Candidates, candidate)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Mismatches = DetectMismatches(result)
	return result, nil
}

// walkDirectory walks the directory tree calling fn for every regular file.
func (s *Service) walkDirectory(ctx context.Context, root, dir string, depth int, fn func(path, rel string) error) error {
	if depth > s.maxDepth {
		return nil
	}

	// Check for context cancellation
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := s.fs.ReadDir(ctx, dir)
	if err != nil {
		// Skip directories we can't read
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if s.shouldExclude(name, rel, entry.IsDir()) {
			continue
		}

		if entry.IsDir() {
			if err := s.walkDirectory(ctx, root, path, depth+1, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(path, rel); err != nil {
			return err
		}
	}

	return nil
}

// shouldExclude checks if an entry should be skipped.
func (s *Service) shouldExclude(name, rel string, isDir bool) bool {
	if isDir && (strings.HasPrefix(name, ".") || slices.Contains(skipDirs, name)) {
		return true
	}

	for _, pattern := range s.excludes {
		if matched, _ := doublestar.Match(pattern, name); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}

	return false
}
