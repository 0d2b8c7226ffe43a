package rewriter

import (
	"regexp"
)

// labelPattern builds the grammar for a `LABEL <name>="v?<value>"` line.
func labelPattern(name string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?m)^LABEL\s+` + EscapeRegExp(name) + `="v?(.*)"\r?$`)
}

// findLabel returns the first matching LABEL directive.
func findLabel(re *regexp.Regexp, content string) (Match, bool) {
	loc, ok := findFrom(re, content, 0)
	if !ok {
		return Match{}, false
	}
	return Match{Whole: group(loc, 0), Value: group(loc, 1)}, true
}

// UpdateLabel sets the value of a LABEL directive in a Containerfile to
// newVersion, keeping a literal "v" prefix. A missing label is logged and
// the content is returned unchanged.
func UpdateLabel(content, label, newVersion string, logger Logger) string {
	re, err := labelPattern(label)
	if err != nil {
		logger.Error("Unable to match label %s in containerfile", label)
		return content
	}

	m, ok := findLabel(re, content)
	if !ok {
		logger.Error("Unable to match label %s in containerfile", label)
		return content
	}

	return splice(content, m.Value, newVersion)
}
