package discovery

import (
	"sort"
)

// DetectMismatches analyzes discovery results and identifies version inconsistencies.
// It uses the primary version as the expected version and flags any sources that differ.
func DetectMismatches(result *Result) []Mismatch {
	if result == nil {
		return nil
	}

	expectedVersion := result.PrimaryVersion()
	if expectedVersion == "" {
		return nil
	}

	var mismatches []Mismatch
	for _, c := range result.Candidates {
		if c.Version != "" && c.Version != expectedVersion {
			mismatches = append(mismatches, Mismatch{
				Source:          c.Path,
				ExpectedVersion: expectedVersion,
				ActualVersion:   c.Version,
			})
		}
	}

	// Sort mismatches by source path for consistent output
	sort.Slice(mismatches, func(i, j int) bool {
		return mismatches[i].Source < mismatches[j].Source
	})

	return mismatches
}

// UniqueVersions returns the distinct versions found, in first-seen order.
func UniqueVersions(result *Result) []string {
	if result == nil {
		return nil
	}
	seen := make(map[string]bool)
	var versions []string
	for _, c := range result.Candidates {
		if c.Version != "" && !seen[c.Version] {
			seen[c.Version] = true
			versions = append(versions, c.Version)
		}
	}
	return versions
}
