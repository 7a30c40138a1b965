package templates

import "embed"

// Static holds the embedded stylesheet served under /static/.
//
//go:embed static/app.css
var Static embed.FS
