package rewriter

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/indaco/relfiles/internal/semver"
)

// propertyPattern builds the grammar for a root-level "<name>: <semver>" line:
// MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD].
func propertyPattern(name string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?m)^(?P<prop>` + EscapeRegExp(name) + `):\s` +
		`(?P<version>(?P<main>(\d+)\.(\d+)\.(\d+)-?([a-zA-Z\d.\-]*))\+?(?P<build>[a-zA-Z\d.\-]*))\r?$`)
}

// findProperty returns the first property line in content.
func findProperty(re *regexp.Regexp, content string) (Match, bool) {
	loc, ok := findFrom(re, content, 0)
	if !ok {
		return Match{}, false
	}
	m := Match{
		Whole: group(loc, 0),
		Value: group(loc, re.SubexpIndex("version")),
	}
	build := group(loc, re.SubexpIndex("build"))
	m.Build = content[build.Start:build.End]
	return m, true
}

// nextBuild returns the build number that follows the one carried by
// version, or false when there is none. The property grammar is looser than
// semver ("1.0.0beta+3"), so the raw build group is used when version does
// not parse.
func nextBuild(version, build string) (int, bool) {
	v, err := semver.ParseVersion(version)
	if err != nil {
		v = semver.SemVersion{Build: build}
	}
	n, ok := v.BuildNumber()
	if !ok {
		return 0, false
	}
	return n + 1, true
}

// UpdateVersionProperty replaces the semantic version value of a root-level
// property. When the current value carries a positive integer build number
// ("0.9.0+1") the new value gets that number incremented ("1.0.0+2");
// otherwise no build suffix is written.
func UpdateVersionProperty(content, property, newVersion string) (string, error) {
	re, err := propertyPattern(property)
	if err != nil {
		return "", fmt.Errorf("invalid property pattern for %q: %w", property, err)
	}

	m, ok := findProperty(re, content)
	if !ok {
		return "", fmt.Errorf("unable to match property %s in yaml file: %w", property, ErrNotFound)
	}

	value := newVersion
	if n, ok := nextBuild(content[m.Value.Start:m.Value.End], m.Build); ok {
		value = newVersion + "+" + strconv.Itoa(n)
	}

	return splice(content, m.Value, value), nil
}

// UpdatePubspecVersion updates the version of a Flutter pubspec.yaml.
// oldVersion is not used for matching: the file may have been edited by hand
// or already carry an incremented build number, so whatever version is
// present gets replaced. oldVersion only shows up in the error message.
func UpdatePubspecVersion(content, oldVersion, newVersion string) (string, error) {
	result, err := UpdateVersionProperty(content, "version", newVersion)
	if err != nil && oldVersion != "" {
		return "", fmt.Errorf("pubspec.yaml (previous release %s): %w", oldVersion, err)
	}
	return result, err
}
