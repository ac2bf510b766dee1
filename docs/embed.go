package docs

import "embed"

// FS holds the long-form guides bundled with the cor binary.
//
//go:embed guide
var FS embed.FS
