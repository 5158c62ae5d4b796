// Package version holds the build version, overridable via -ldflags "-X syntaxsheet/pkg/version.Version=...".
package version

// Version is the application version.
var Version = "v0.3.0"
