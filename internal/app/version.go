package app

import "runtime/debug"

// Set at build time:
//
//	go build -ldflags "-X github.com/heartmarshall/chartboard/internal/app.Version=1.2.0"
var (
	Version = "dev"
	Commit  = ""
)

// BuildVersion reports Version and the commit it was built from. Without a
// Commit from ldflags the revision recorded by the go tool is used.
func BuildVersion() string {
	commit := Commit
	if commit == "" {
		commit = vcsRevision()
	}
	return formatVersion(Version, commit)
}

func formatVersion(version, commit string) string {
	if commit == "" {
		return version
	}
	return version + "+" + commit
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if rev != "" && dirty {
		rev += "-dirty"
	}
	return rev
}
