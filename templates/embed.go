// Package templates holds the server-rendered pages.
package templates

import "embed"

//go:embed layouts/*.html pages/*.html
var FS embed.FS
