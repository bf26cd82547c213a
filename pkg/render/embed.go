package render

import (
	"embed"
	"io/fs"
)

//go:embed templates/*/*.tpl
var embeddedTemplates embed.FS

// EmbeddedTemplates returns the bundled template sets, one directory per
// bundle.
func EmbeddedTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}
