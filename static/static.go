// Package static embeds the HTML views.
package static

import "embed"

//go:embed views/*.html
var Views embed.FS
