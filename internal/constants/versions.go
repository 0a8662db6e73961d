package constants

// Version information (injected at build time via -ldflags).
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// GetVersion returns the application version.
func GetVersion() string {
	return Version
}

// GetFullVersion returns version, commit and build time in one string.
func GetFullVersion() string {
	return Version + " (" + GitCommit + ") built at " + BuildTime
}
