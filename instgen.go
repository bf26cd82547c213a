// Package instgen generates one source file per combination of a fixed set of
// configuration axes, each instantiating the same generic kernel template,
// and reports the generated paths for inclusion in a build file list.
package instgen

import (
	"io/fs"

	"github.com/goliatone/go-instgen/pkg/emit"
	"github.com/goliatone/go-instgen/pkg/generator"
	"github.com/goliatone/go-instgen/pkg/profile"
	"github.com/goliatone/go-instgen/pkg/render"
)

// Manifest aliases emit.Manifest for callers that only import the root
// package.
type Manifest = emit.Manifest

// Profile aliases profile.Profile.
type Profile = profile.Profile

// NewGenerator exposes the generator constructor from the top-level module.
func NewGenerator(options ...generator.Option) *generator.Generator {
	return generator.New(options...)
}

// Generate runs the default profile, or the one selected through options,
// and returns the manifest of written files.
func Generate(options ...generator.Option) (*Manifest, error) {
	return NewGenerator(options...).Run()
}

// DefaultProfile returns the bundled profile the CLI generates.
func DefaultProfile() (Profile, error) {
	return profile.Default()
}

// EmbeddedTemplates exposes the bundled template sets so callers can reuse or
// extend them without importing the render package directly.
func EmbeddedTemplates() fs.FS {
	return render.EmbeddedTemplates()
}

// EmbeddedProfiles exposes the bundled profile documents.
func EmbeddedProfiles() fs.FS {
	return profile.EmbeddedFS()
}
