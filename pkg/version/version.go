// Package version reports the pagewin build, as stamped by the linker or read
// from the module's VCS build settings.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the release tag, set with -ldflags "-X ...version.Version=v1.2.3".
	Version   string
	Branch    string
	BuildUser string
	BuildDate string

	// Revision is the short VCS commit, suffixed with "-dirty" for modified
	// trees, or "unknown" outside a VCS build.
	Revision  = readRevision()
	GoVersion = runtime.Version()
	GoOS      = runtime.GOOS
	GoArch    = runtime.GOARCH
)

// GetVersion returns [Version] when the build was stamped, else [Revision].
func GetVersion() string {
	if Version != "" {
		return Version
	}

	return Revision
}

// Info returns a one-line build summary for logs and bug reports.
func Info() string {
	return fmt.Sprintf("pagewin %s (revision %s, %s %s/%s)", GetVersion(), Revision, GoVersion, GoOS, GoArch)
}

func readRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	return revisionFrom(info.Settings)
}

func revisionFrom(settings []debug.BuildSetting) string {
	rev := "unknown"
	dirty := false

	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value[:min(len(s.Value), 7)]
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if dirty {
		return rev + "-dirty"
	}

	return rev
}
