package utils

// Build-time variables, set through -ldflags.
var (
	// Tag is the tagged release version.
	Tag string
	// GitHash is the commit hash the binary was built from.
	GitHash string
	// BuildStamp is the UTC build timestamp.
	BuildStamp string
)
