// Package version reports the build version of wcagcheck.
package version

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

// InstallMethod represents how the binary was installed.
type InstallMethod string

const (
	InstallMethodGo     InstallMethod = "go"
	InstallMethodBinary InstallMethod = "binary"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Effective returns v, falling back to module or VCS build info.
func Effective(v string) string {
	if v != "" {
		return v
	}

	info, ok := readBuildInfo()
	if !ok {
		return "unknown"
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	// Fall back to VCS info
	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if revision != "" {
		ver := "devel+" + shortRevision(revision)
		if dirty {
			ver += "+dirty"
		}
		return ver
	}

	return "devel"
}

// shortRevision returns the first 12 chars of a revision.
func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// DetectInstallMethod reports whether the running binary lives in a Go bin
// directory.
func DetectInstallMethod() InstallMethod {
	exe, err := os.Executable()
	if err != nil {
		return InstallMethodBinary
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	if isGoBin(filepath.Dir(exe), os.Getenv("GOBIN"), os.Getenv("GOPATH")) {
		return InstallMethodGo
	}
	return InstallMethodBinary
}

func isGoBin(dir, gobin, gopath string) bool {
	if gobin != "" && dir == gobin {
		return true
	}
	if gopath != "" && dir == filepath.Join(gopath, "bin") {
		return true
	}
	if home, err := os.UserHomeDir(); err == nil && dir == filepath.Join(home, "go", "bin") {
		return true
	}
	sep := string(filepath.Separator)
	return strings.Contains(dir+sep, sep+"go"+sep+"bin"+sep)
}
