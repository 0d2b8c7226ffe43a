package discovery

import (
	"github.com/indaco/relfiles/internal/config"
)

// Candidate is a file that can be added to the configuration.
type Candidate struct {
	// Type is the rewriter kind the file needs.
	Type config.FileType

	// Path is the path relative to the discovery root, in slash form.
	Path string

	// Version is the first version found in the file.
	Version string

	// Images lists the image names referenced with a version (k8s only).
	Images []string

	// Keys lists the version-bearing XML tags (xml only).
	Keys []string

	// Label is the LABEL name holding the version (containerfile only).
	Label string
}

// Description returns a short human-readable summary used in prompts.
func (c Candidate) Description() string {
	switch c.Type {
	case config.TypeK8s:
		return "Kubernetes manifest (" + c.Path + ")"
	case config.TypeXML:
		return "XML project file (" + c.Path + ")"
	case config.TypeFlutter:
		return "Dart/Flutter (" + c.Path + ")"
	case config.TypeContainerfile:
		return "Container build file (" + c.Path + ")"
	default:
		return c.Path
	}
}

// ToFileSpec converts the candidate into a configuration entry. XML keys are
// bound to the next release version.
func (c Candidate) ToFileSpec() config.FileSpec {
	spec := config.FileSpec{
		Type: c.Type,
		Path: config.StringList{c.Path},
	}
	switch c.Type {
	case config.TypeK8s:
		spec.Image = append(config.StringList(nil), c.Images...)
	case config.TypeXML:
		for _, key := range c.Keys {
			spec.Replacements = append(spec.Replacements, config.Replacement{Key: key, Value: "${nextRelease.version}"})
		}
	case config.TypeContainerfile:
		spec.Label = c.Label
	}
	return spec
}

// Result represents the complete discovery result for a project.
type Result struct {
	// Candidates are the discovered files in walk order.
	Candidates []Candidate

	// Mismatches contains detected version mismatches.
	Mismatches []Mismatch
}

// IsEmpty returns true if no candidate was found.
func (r *Result) IsEmpty() bool {
	return len(r.Candidates) == 0
}

// HasMismatches returns true if version mismatches were detected.
func (r *Result) HasMismatches() bool {
	return len(r.Mismatches) > 0
}

// PrimaryVersion returns the version of the first candidate, or "".
func (r *Result) PrimaryVersion() string {
	for _, c := range r.Candidates {
		if c.Version != "" {
			return c.Version
		}
	}
	return ""
}

// Config builds a configuration covering every candidate.
func (r *Result) Config() *config.Config {
	cfg := &config.Config{}
	for _, c := range r.Candidates {
		cfg.Files = append(cfg.Files, c.ToFileSpec())
	}
	return cfg
}

// Mismatch represents a version mismatch between sources.
type Mismatch struct {
	// Source is the path of the file with the mismatched version.
	Source string

	// ExpectedVersion is what the version should be.
	ExpectedVersion string

	// ActualVersion is the version found in the file.
	ActualVersion string
}

func (m Mismatch) String() string {
	return m.Source + ": " + m.ActualVersion + " (expected " + m.ExpectedVersion + ")"
}
