// Package version holds the build identity shared by the version command and
// the MCP server handshake.
package version

// Set at build time with -ldflags "-X tableflip.dev/weiwei/pkg/version.Version=...".
var (
	Name    = "weiwei"
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
