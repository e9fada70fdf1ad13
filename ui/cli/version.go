// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"runtime/debug"

	"github.com/toeirei/ircloner/buildvars"
)

const modulePath = "github.com/toeirei/ircloner"

// resolveBuildVersion returns version, commit and build date. Link-time
// values in buildvars win; otherwise module and VCS build info is used.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault("dev")
	resolvedCommit := buildvars.CommitOrDefault("dev")
	resolvedDate := buildvars.BuildDate

	if info == nil {
		if infoLocal, found := debug.ReadBuildInfo(); found {
			info = infoLocal
		}
	}
	if info == nil {
		return resolvedVersion, resolvedCommit, resolvedDate
	}

	if resolvedVersion == "dev" {
		if info.Main.Path == modulePath && info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		for _, dep := range info.Deps {
			if resolvedVersion == "dev" && dep.Path == modulePath && dep.Version != "" {
				resolvedVersion = dep.Version
			}
		}
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if s.Value != "" && resolvedCommit == "dev" {
				resolvedCommit = s.Value
			}
		case "vcs.time":
			if s.Value != "" && resolvedDate == "" {
				resolvedDate = s.Value
			}
		}
	}
	return resolvedVersion, resolvedCommit, resolvedDate
}

// versionString formats the composite version shown by --version.
func versionString(info *debug.BuildInfo) string {
	v, c, d := resolveBuildVersion(info)
	out := v
	if c != "" && c != "dev" {
		out += " (" + c + ")"
	}
	if d != "" {
		out += " built: " + d
	}
	return out
}
