// Package version exposes build metadata of the proclog binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// Branch is the git branch, set via ldflags.
	Branch string
	// BuildUser is the user who built the binary, set via ldflags.
	BuildUser string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = revision(readSettings())
	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
	// GoOS is the operating system target.
	GoOS = runtime.GOOS
	// GoArch is the architecture target.
	GoArch = runtime.GOARCH
)

// Info is a snapshot of the build metadata.
type Info struct {
	Version   string
	Revision  string
	Branch    string
	BuildUser string
	BuildDate string
	GoVersion string
	Platform  string
}

// Get returns the build metadata of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Revision:  Revision,
		Branch:    Branch,
		BuildUser: BuildUser,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  GoOS + "/" + GoArch,
	}
}

// Summary returns the version followed by the revision, e.g.
// "v1.2.0 (abc123)". An unset version reads "devel".
func Summary() string {
	return Get().Summary()
}

// String returns a multi-line description of the build.
func String() string {
	return Get().String()
}

// Summary returns the one-line form of i.
func (i Info) Summary() string {
	v := i.Version
	if v == "" {
		v = "devel"
	}

	return fmt.Sprintf("%s (%s)", v, i.Revision)
}

// String returns i as "key: value" lines, omitting unset fields.
func (i Info) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "proclog %s", i.Summary())

	for _, kv := range [][2]string{
		{"branch", i.Branch},
		{"build user", i.BuildUser},
		{"build date", i.BuildDate},
		{"go version", i.GoVersion},
		{"platform", i.Platform},
	} {
		if kv[1] != "" {
			fmt.Fprintf(&sb, "\n  %s: %s", kv[0], kv[1])
		}
	}

	return sb.String()
}

func readSettings() []debug.BuildSetting {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	return buildInfo.Settings
}

// revision returns the VCS revision recorded in settings, with a "-dirty"
// suffix for modified trees.
func revision(settings []debug.BuildSetting) string {
	rev := "unknown"
	modified := false

	for _, v := range settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			modified = v.Value == "true"
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
