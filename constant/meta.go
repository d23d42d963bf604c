// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Melodeck is the canonical application identifier used for filesystem paths and CLI branding.
	Melodeck = "melodeck"

	// Version is the current application semantic version string.
	Version = "0.1.0"
)

// Build metadata, set through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// UserAgent is sent with every outgoing HTTP request.
func UserAgent() string {
	return Melodeck + "/" + Version
}
