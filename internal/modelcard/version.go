package modelcard

import "runtime/debug"

var (
	// Set these at build time with -ldflags "-X 'github.com/mlops-grupo21/ratingdash/internal/modelcard.Version=...'"
	Version = ""
	Commit  = ""
)

var readBuildInfo = debug.ReadBuildInfo

// ToolVersion reports the ratingdash version recorded in generated BOMs.
func ToolVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if info, ok := readBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	if Commit != "" {
		return "commit-" + Commit
	}
	return "devel"
}
