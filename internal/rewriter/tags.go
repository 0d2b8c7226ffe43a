package rewriter

import (
	"regexp"

	"github.com/indaco/relfiles/internal/render"
)

// Replacement sets the inner text of one tag to a rendered template.
type Replacement struct {
	Key   string
	Value string
}

// tagPattern builds the grammar for "<key>inner</key>". The key is used
// verbatim unless escape is set, so a key containing regex metacharacters
// behaves as a pattern.
func tagPattern(key string, escape bool) (*regexp.Regexp, error) {
	if escape {
		key = EscapeRegExp(key)
	}
	return regexp.Compile(`<` + key + `>(.*?)</` + key + `>`)
}

// findTag returns the first tag in content.
func findTag(re *regexp.Regexp, content string) (Match, bool) {
	loc, ok := findFrom(re, content, 0)
	if !ok {
		return Match{}, false
	}
	return Match{Whole: group(loc, 0), Value: group(loc, 1)}, true
}

// UpdateTags applies replacements in order, each one seeing the output of
// the previous one. A missing tag is logged as an error and a value that
// renders empty is logged as skipped; neither stops the remaining keys.
func UpdateTags(content string, replacements []Replacement, vars render.Variables, escapeKeys bool, logger Logger) string {
	result := content
	for _, rp := range replacements {
		re, err := tagPattern(rp.Key, escapeKeys)
		if err != nil {
			logger.Error("Unable to match %s in xml file.", rp.Key)
			continue
		}

		m, ok := findTag(re, result)
		if !ok {
			logger.Error("Unable to match %s in xml file.", rp.Key)
			continue
		}

		value := render.Render(rp.Value, vars)
		if value == "" {
			logger.Log("Skipping replacement of key %s in xml file because value would be empty.", rp.Key)
			continue
		}

		result = splice(result, m.Whole, "<"+rp.Key+">"+value+"</"+rp.Key+">")
	}

	return result
}
