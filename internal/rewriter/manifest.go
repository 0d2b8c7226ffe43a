package rewriter

import (
	"fmt"
	"regexp"
)

// imagePattern builds the grammar for "image: <name>:v?<version>".
// An empty oldVersion matches any version up to the end of the line.
func imagePattern(image, oldVersion string) (*regexp.Regexp, error) {
	version := ".*"
	if oldVersion != "" {
		version = EscapeRegExp(oldVersion)
	}
	return regexp.Compile(`(?m)image:\s+` + EscapeRegExp(image) + `:v?(` + version + `)`)
}

// findImage returns the next image reference at or after offset from.
func findImage(re *regexp.Regexp, content string, from int) (Match, bool) {
	loc, ok := findFrom(re, content, from)
	if !ok {
		return Match{}, false
	}
	return Match{Whole: group(loc, 0), Value: group(loc, 1)}, true
}

// UpdateManifestImage replaces the version tag of every reference to image in a
// Kubernetes manifest. A literal "v" prefix and, when oldVersion is given, any
// suffix after the version ("-alpine") are preserved.
func UpdateManifestImage(content, image, newVersion, oldVersion string) (string, error) {
	re, err := imagePattern(image, oldVersion)
	if err != nil {
		return "", fmt.Errorf("invalid image pattern for %q: %w", image, err)
	}

	m, ok := findImage(re, content, 0)
	if !ok {
		return "", fmt.Errorf("unable to match image and old version in yaml file: %w", ErrNotFound)
	}

	result := content
	for ok {
		result = splice(result, m.Value, newVersion)
		// Resume after the inserted version; it always lies past the match start.
		m, ok = findImage(re, result, m.Value.Start+len(newVersion))
	}

	return result, nil
}
