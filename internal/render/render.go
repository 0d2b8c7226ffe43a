// Package render expands ${path} placeholders in replacement values.
//
// Variables are held as a JSON document; a placeholder path uses gjson dot
// notation, so "${nextRelease.version}" reads {"nextRelease":{"version":...}}.
// Paths that do not resolve render as an empty string.
package render

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var placeholderRegex = regexp.MustCompile(`\$\{\s*([^{}]+?)\s*\}`)

// Variables is an immutable bag of template values backed by a JSON document.
type Variables struct {
	doc string
}

// NewVariables wraps a JSON object. An empty or invalid document yields an
// empty bag.
func NewVariables(doc string) Variables {
	if !gjson.Valid(doc) || !gjson.Parse(doc).IsObject() {
		return Variables{doc: "{}"}
	}
	return Variables{doc: doc}
}

// JSON returns the underlying document.
func (v Variables) JSON() string {
	if v.doc == "" {
		return "{}"
	}
	return v.doc
}

// With returns a copy of v with value stored at the given dot path.
func (v Variables) With(path, value string) (Variables, error) {
	doc, err := sjson.Set(v.JSON(), path, value)
	if err != nil {
		return v, err
	}
	return Variables{doc: doc}, nil
}

// WithKey is like With but treats key as a single literal key, so names
// containing dots or wildcards are stored at the top level.
func (v Variables) WithKey(key, value string) (Variables, error) {
	return v.With(EscapeKey(key), value)
}

// Lookup resolves a dot path. The boolean is false when nothing exists at
// path or the value is null.
func (v Variables) Lookup(path string) (string, bool) {
	res := gjson.Get(v.JSON(), path)
	if !res.Exists() || res.Type == gjson.Null {
		return "", false
	}
	return res.String(), true
}

// Render replaces every ${path} placeholder in tmpl with its value.
func Render(tmpl string, vars Variables) string {
	if !strings.Contains(tmpl, "${") {
		return tmpl
	}
	return placeholderRegex.ReplaceAllStringFunc(tmpl, func(ph string) string {
		path := placeholderRegex.FindStringSubmatch(ph)[1]
		value, _ := vars.Lookup(path)
		return value
	})
}

// EscapeKey escapes the characters gjson and sjson treat as path syntax.
func EscapeKey(key string) string {
	var sb strings.Builder
	sb.Grow(len(key))
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
