package discovery

import (
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/relfiles/internal/config"
	"github.com/indaco/relfiles/internal/semver"
)

var (
	imageRefPattern = regexp.MustCompile(`(?m)^[\s-]*image:\s+["']?([^\s"'@]+):v?(\d+\.\d+\.\d+[0-9A-Za-z.+\-]*)["']?\s*$`)
	labelPattern    = regexp.MustCompile(`(?m)^LABEL\s+([A-Za-z0-9._\-]+)="v?(\d+\.\d+\.\d+[^"]*)"\s*$`)
	xmlTagPattern   = regexp.MustCompile(`<([A-Za-z]*Version[A-Za-z]*)>\s*v?(\d+\.\d+\.\d+[^<\s]*)\s*</([A-Za-z]*Version[A-Za-z]*)>`)
)

// ignoredXMLKeys carry toolchain versions, not the project version.
var ignoredXMLKeys = []string{"TargetFrameworkVersion", "RuntimeFrameworkVersion", "LangVersion", "ToolsVersion"}

// xmlExtensions are the MSBuild project and property files scanned for version tags.
var xmlExtensions = []string{".csproj", ".fsproj", ".vbproj", ".props", ".targets"}

// classify returns the file type suggested by a file name, or "" to skip it.
func classify(name string) config.FileType {
	lower := strings.ToLower(name)
	switch {
	case lower == "pubspec.yaml":
		return config.TypeFlutter
	case lower == "dockerfile", lower == "containerfile",
		strings.HasPrefix(lower, "dockerfile."), strings.HasPrefix(lower, "containerfile."),
		strings.HasSuffix(lower, ".dockerfile"), strings.HasSuffix(lower, ".containerfile"):
		return config.TypeContainerfile
	case slices.Contains(xmlExtensions, path.Ext(lower)):
		return config.TypeXML
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return config.TypeK8s
	default:
		return ""
	}
}

// inspect extracts the version details of a file already classified as
// fileType. It reports false when the file carries no usable version.
func inspect(fileType config.FileType, content string) (Candidate, bool) {
	c := Candidate{Type: fileType}

	switch fileType {
	case config.TypeFlutter:
		var pubspec struct {
			Version string `yaml:"version"`
		}
		if err := yaml.Unmarshal([]byte(content), &pubspec); err != nil {
			return c, false
		}
		c.Version = coreVersion(pubspec.Version)

	case config.TypeContainerfile:
		m := labelPattern.FindStringSubmatch(content)
		if m == nil {
			return c, false
		}
		c.Label = m[1]
		c.Version = coreVersion(m[2])

	case config.TypeXML:
		for _, m := range xmlTagPattern.FindAllStringSubmatch(content, -1) {
			if m[1] != m[3] || slices.Contains(c.Keys, m[1]) || slices.Contains(ignoredXMLKeys, m[1]) {
				continue
			}
			if v := coreVersion(m[2]); v != "" {
				c.Keys = append(c.Keys, m[1])
				if c.Version == "" {
					c.Version = v
				}
			}
		}

	case config.TypeK8s:
		for _, m := range imageRefPattern.FindAllStringSubmatch(content, -1) {
			v := coreVersion(m[2])
			if v == "" || slices.Contains(c.Images, m[1]) {
				continue
			}
			c.Images = append(c.Images, m[1])
			if c.Version == "" {
				c.Version = v
			}
		}
	}

	return c, c.Version != ""
}

// coreVersion validates v as a semantic version and drops its build
// metadata, or returns "" when v is not a version.
func coreVersion(v string) string {
	parsed, err := semver.ParseVersion(semver.Normalize(v))
	if err != nil {
		return ""
	}
	parsed.Build = ""
	return parsed.String()
}
