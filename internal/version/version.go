// Package version exposes the binary's build stamp.
package version

//nolint:revive // Stamped by the release pipeline via -ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
