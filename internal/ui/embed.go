// Package ui holds the single page shown by the desktop window and the browser server.
package ui

import "embed"

// DistFS contains the built page under dist/.
//
//go:embed dist
var DistFS embed.FS
