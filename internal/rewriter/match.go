package rewriter

import (
	"errors"
	"regexp"
)

// ErrNotFound is returned when a mandatory version token cannot be located.
var ErrNotFound = errors.New("version token not found")

// Logger is the sink used by the rewriters that fail softly.
type Logger interface {
	Log(format string, args ...any)
	Error(format string, args ...any)
}

// Span is a half-open byte range [Start, End) in the searched content.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Match is the located position of a version token.
type Match struct {
	// Whole covers the full text matched by the grammar.
	Whole Span

	// Value covers the part that gets replaced.
	Value Span

	// Build is the build-number suffix, set by the property grammar only.
	Build string
}

// splice replaces the bytes covered by span with repl.
func splice(content string, span Span, repl string) string {
	return content[:span.Start] + repl + content[span.End:]
}

// EscapeRegExp escapes text so it can be embedded literally in a pattern.
func EscapeRegExp(value string) string {
	return regexp.QuoteMeta(value)
}

// findFrom runs re against content[from:] and translates the submatch
// indexes back to absolute offsets. The ok result is false when nothing
// matched, which is different from a match with an empty value group.
func findFrom(re *regexp.Regexp, content string, from int) ([]int, bool) {
	if from > len(content) {
		return nil, false
	}
	loc := re.FindStringSubmatchIndex(content[from:])
	if loc == nil {
		return nil, false
	}
	for i := range loc {
		if loc[i] >= 0 {
			loc[i] += from
		}
	}
	return loc, true
}

// group returns the span of submatch n from an index slice.
func group(loc []int, n int) Span {
	return Span{Start: loc[2*n], End: loc[2*n+1]}
}
