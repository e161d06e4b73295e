// Package version reports the build version of lazyview.
package version

import "runtime/debug"

// version is set at build time with -ldflags "-X github.com/rshade/lazyview/pkg/version.version=v1.2.3".
var version = "" //nolint:gochecknoglobals // Set by the linker.

// GetVersion returns the linker-provided version, then the module version recorded in the
// binary, then "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
