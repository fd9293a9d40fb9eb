package version

// Build metadata injected via ldflags
var (
	// Version is set via -ldflags "-X savecart/version.Version=x.x.x"
	Version = "0.1.0"

	// CommitHash is set via -ldflags "-X savecart/version.CommitHash=xxx"
	CommitHash = "unknown"

	// BuildTime is set via -ldflags "-X savecart/version.BuildTime=xxx"
	BuildTime = "unknown"
)

// GetVersion returns the version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns the version including the short commit hash
func GetFullVersion() string {
	if CommitHash == "unknown" || len(CommitHash) < 7 {
		return Version
	}
	return Version + " (" + CommitHash[:7] + ")"
}

// GetBuildInfo returns build metadata for --version
func GetBuildInfo() string {
	return "savecart " + Version + "\nCommit: " + CommitHash + "\nBuild Time: " + BuildTime
}
