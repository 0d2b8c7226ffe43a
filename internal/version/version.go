// Package version reports the relfiles build version.
package version

import "runtime/debug"

// version is set at build time with -ldflags "-X github.com/indaco/relfiles/internal/version.version=1.2.3".
var version = ""

// GetVersion returns the build version without a leading "v". Builds
// without ldflags fall back to the module version, then to "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return trimV(v)
		}
	}
	return "dev"
}

func trimV(v string) string {
	if len(v) > 1 && v[0] == 'v' {
		return v[1:]
	}
	return v
}
