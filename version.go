// Package usdamcp provides the version information for usda-mcp.
package usdamcp

// Version is the current version of usda-mcp.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
