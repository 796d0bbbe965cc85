package main

import "runtime/debug"

// version is set at build time via -ldflags.
var version = "dev"

// buildVersionString returns the release version, falling back to the module
// version embedded by `go install`.
func buildVersionString() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}
