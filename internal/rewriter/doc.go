// Package rewriter locates version tokens inside semi-structured text and
// rewrites them in place.
//
// Each supported file kind has its own micro-grammar, expressed as a regular
// expression and isolated behind a find function that returns a Match (the
// whole span plus the captured value span). The Update* functions are pure:
// they take the file content as a string and return the new content.
//
// Failure handling differs per format on purpose:
//   - UpdateManifestImage and UpdateVersionProperty return an error wrapping
//     ErrNotFound when the version token is missing.
//   - UpdateTags and UpdateLabel log through a Logger and leave the affected
//     field (or file) untouched.
package rewriter
