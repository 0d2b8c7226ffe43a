package config

import (
	"context"
	"fmt"

	"github.com/indaco/relfiles/internal/core"
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "Files", "File 2").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// Validator validates a configuration and the files it points at.
type Validator struct {
	fs          core.FileSystem
	cfg         *Config
	validations []ValidationResult
}

// NewValidator creates a new configuration validator.
func NewValidator(fs core.FileSystem, cfg *Config) *Validator {
	return &Validator{
		fs:          fs,
		cfg:         cfg,
		validations: make([]ValidationResult, 0),
	}
}

// Validate runs every check and returns all results. Problems never stop the
// run early, so the caller sees every misconfiguration at once. The returned
// error is only set when ctx is cancelled.
func (v *Validator) Validate(ctx context.Context) ([]ValidationResult, error) {
	v.validations = make([]ValidationResult, 0)

	if v.cfg == nil || len(v.cfg.Files) == 0 {
		v.addValidation("Files", false, "No files given, please configure at least one file to update.", false)
		return v.validations, nil
	}

	for index, file := range v.cfg.Files {
		if err := ctx.Err(); err != nil {
			return v.validations, err
		}
		v.validateFile(ctx, index, file)
	}

	if !HasErrors(v.validations) {
		v.addValidation("Files", true, fmt.Sprintf("%d file rule(s) are valid", len(v.cfg.Files)), false)
	}
	return v.validations, nil
}

func (v *Validator) validateFile(ctx context.Context, index int, file FileSpec) {
	category := fmt.Sprintf("File %d", index)

	if file.Type == "" {
		v.fail(category, "Invalid config, no type for file at index %d is set!", index)
	} else if !file.Type.IsSupported() {
		v.fail(category, "Invalid config, type %q for file at index %d is not supported!", string(file.Type), index)
	}

	switch file.Type {
	case TypeK8s:
		if len(file.Image) == 0 {
			v.fail(category, "File at index %d has type %s but no image name is set.", index, TypeK8s)
		}
	case TypeXML:
		v.validateReplacements(category, file.Replacements)
	case TypeContainerfile:
		if file.Label == "" {
			v.fail(category, "Containerfiles need a label to be replaced.")
		}
	}

	if len(file.Path) == 0 {
		v.fail(category, "Invalid config, no path for file at index %d is set!", index)
		return
	}

	for _, p := range file.Path {
		v.validatePath(ctx, category, p)
	}
}

func (v *Validator) validateReplacements(category string, replacements ReplacementList) {
	if len(replacements) == 0 {
		v.fail(category, "XML files must be given replacements!")
		return
	}
	for _, rp := range replacements {
		if !rp.Complete() {
			v.fail(category, "Each XML file replacement must have a key and a value set!")
			return
		}
	}
}

func (v *Validator) validatePath(ctx context.Context, category, p string) {
	paths, err := ExpandPaths(ctx, v.fs, []string{p})
	if err != nil {
		v.fail(category, "%v", err)
		return
	}
	if len(paths) == 0 {
		v.fail(category, "No file matches the pattern %q.", p)
		return
	}
	for _, resolved := range paths {
		if err := v.fs.Access(ctx, resolved); err != nil {
			v.fail(category, "No write access to the file %q.", resolved)
		}
	}
}

func (v *Validator) fail(category, format string, args ...any) {
	v.addValidation(category, false, fmt.Sprintf(format, args...), false)
}

// addValidation adds a validation result to the list.
func (v *Validator) addValidation(category string, passed bool, message string, warning bool) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Message:  message,
		Warning:  warning,
	})
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	return ErrorCount(results) > 0
}

// ErrorCount returns the number of failed validations.
func ErrorCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if !r.Passed && !r.Warning {
			count++
		}
	}
	return count
}

// Failures returns the messages of failed validations in order.
func Failures(results []ValidationResult) []string {
	var out []string
	for _, r := range results {
		if !r.Passed && !r.Warning {
			out = append(out, r.Message)
		}
	}
	return out
}
