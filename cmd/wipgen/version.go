package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version reports the module version for `go install ...@version` builds,
// otherwise "devel-<VERSION>" with the short VCS revision appended when the
// build recorded one.
func Version() string {
	base := strings.TrimSpace(embeddedVersion)
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return base
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	if rev := shortRevision(info.Settings); rev != "" {
		return "devel-" + base + "+" + rev
	}
	return "devel-" + base
}

func shortRevision(settings []debug.BuildSetting) string {
	for _, s := range settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
