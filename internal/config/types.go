package config

import (
	"errors"
	"fmt"
	"slices"
)

// FileType selects the rewriter applied to a file.
type FileType string

const (
	// TypeK8s is a Kubernetes manifest (image references).
	TypeK8s FileType = "k8s"
	// TypeXML is an XML document such as a .csproj (tag contents).
	TypeXML FileType = "xml"
	// TypeFlutter is a pubspec.yaml (root version property).
	TypeFlutter FileType = "flutter"
	// TypeContainerfile is a Dockerfile or Containerfile (LABEL directive).
	TypeContainerfile FileType = "containerfile"
)

// SupportedFileTypes lists every FileType the rewriters handle.
var SupportedFileTypes = []FileType{TypeFlutter, TypeK8s, TypeXML, TypeContainerfile}

// IsSupported reports whether t is one of SupportedFileTypes.
func (t FileType) IsSupported() bool {
	return slices.Contains(SupportedFileTypes, t)
}

// StringList is a list of strings that may be written as a single scalar.
type StringList []string

func (l *StringList) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*l = nil
	case string:
		*l = StringList{v}
	case []any:
		list := make(StringList, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("expected a list of strings, got element %v", item)
			}
			list = append(list, s)
		}
		*l = list
	default:
		return fmt.Errorf("expected a string or a list of strings, got %v", v)
	}
	return nil
}

// MarshalYAML writes single-element lists as a scalar.
func (l StringList) MarshalYAML() (any, error) {
	if len(l) == 1 {
		return l[0], nil
	}
	return []string(l), nil
}

// Replacement is one XML tag whose content is replaced by a rendered template.
type Replacement struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`

	keySet   bool
	valueSet bool
}

// Complete reports whether both key and value were given. An explicitly
// empty value counts as given.
func (r Replacement) Complete() bool {
	return (r.Key != "" || r.keySet) && (r.Value != "" || r.valueSet)
}

func (r *Replacement) UnmarshalYAML(unmarshal func(any) error) error {
	var raw map[string]any
	if err := unmarshal(&raw); err != nil {
		return errors.New("each XML file replacement must be a mapping with a key and a value")
	}
	for field, v := range raw {
		var s string
		if v != nil {
			s = fmt.Sprint(v)
		}
		switch field {
		case "key":
			r.Key, r.keySet = s, true
		case "value":
			r.Value, r.valueSet = s, true
		default:
			return fmt.Errorf("unknown replacement field %q", field)
		}
	}
	return nil
}

// ReplacementList is the replacements of an XML file.
type ReplacementList []Replacement

func (l *ReplacementList) UnmarshalYAML(unmarshal func(any) error) error {
	var items []Replacement
	if err := unmarshal(&items); err != nil {
		var raw any
		if rawErr := unmarshal(&raw); rawErr == nil {
			if _, isList := raw.([]any); !isList {
				return errors.New("XML file replacements must be an array!")
			}
		}
		return err
	}
	*l = items
	return nil
}

// FileSpec configures the rewrite of one or more files of the same type.
type FileSpec struct {
	Type         FileType        `yaml:"type"`
	Path         StringList      `yaml:"path"`
	Branches     StringList      `yaml:"branches,omitempty"`
	Image        StringList      `yaml:"image,omitempty"`
	ExactMatch   bool            `yaml:"exactMatch,omitempty"`
	Replacements ReplacementList `yaml:"replacements,omitempty"`
	EscapeKeys   bool            `yaml:"escapeKeys,omitempty"`
	Label        string          `yaml:"label,omitempty"`
}

// Config is the relfiles configuration.
type Config struct {
	DryRun bool       `yaml:"dryRun,omitempty"`
	Files  []FileSpec `yaml:"files"`
}
