package operations

import (
	"regexp"
	"slices"

	"github.com/indaco/relfiles/internal/config"
)

var escapedWildcard = regexp.MustCompile(`\\\*`)

// matchBranchPattern reports whether branch matches pattern, where * matches
// any run of characters (including "/").
func matchBranchPattern(pattern, branch string) bool {
	regexPattern := "^" + regexp.QuoteMeta(pattern) + "$"
	regexPattern = escapedWildcard.ReplaceAllString(regexPattern, ".*")

	re, err := regexp.Compile(regexPattern)
	if err != nil {
		return false
	}
	return re.MatchString(branch)
}

// branchAllowed reports whether branch is named, or matched, by one of the filters.
func branchAllowed(filters []string, branch string) bool {
	if slices.Contains(filters, branch) {
		return true
	}
	return slices.ContainsFunc(filters, func(pattern string) bool {
		return matchBranchPattern(pattern, branch)
	})
}

func hasBranchFilter(files []config.FileSpec) bool {
	for _, file := range files {
		if len(file.Branches) > 0 {
			return true
		}
	}
	return false
}
