// Where: internal/version/version.go
// What: Version information retrieval.
// Why: Surface build-time VCS information through the CLI.
package version

import (
	"fmt"
	"runtime/debug"
)

// GetVersion returns the version string derived from embedded build info.
// Falls back to "dev" when the binary was built without VCS stamping.
func GetVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}

	revision := ""
	dirty := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = shortRevision(setting.Value)
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if revision == "" {
		return "dev"
	}
	if dirty {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}

func shortRevision(revision string) string {
	if len(revision) > 7 {
		return revision[:7]
	}
	return revision
}
