// Package compileinfo reports which source a binary was built from.
package compileinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

// Version is set at build time, e.g.
// go build -ldflags "-X github.com/Integrative-Transcriptomics/MUSIAL-sub002/compileinfo.Version=v2.3.0"
var Version = "dev"

type CompileInfo struct {
	Package    string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	mod := ""
	if c.Modified {
		mod = " (modified after that commit)"
	}

	if c.Commit == "" {
		return fmt.Sprintf("%s %s, built with %s", c.Package, c.Version, c.GoVersion)
	}
	return fmt.Sprintf("%s %s, built with %s at commit %s from %s%s", c.Package, c.Version, c.GoVersion, c.Commit, c.CommitTime, mod)
}

func Get() CompileInfo {
	out := CompileInfo{Version: Version}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Package = z.Path
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func PrintToStdErr() {
	fmt.Fprintln(os.Stderr, Get())
}
