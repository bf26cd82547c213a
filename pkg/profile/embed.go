package profile

import (
	"embed"
	"io/fs"
)

// DefaultName is the profile the CLI generates.
const DefaultName = "cagra_q_search"

//go:embed profiles/*.yaml
var embeddedProfiles embed.FS

// EmbeddedFS returns the bundled profile documents.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedProfiles, "profiles")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Embedded loads the bundled profiles.
func Embedded() (*Registry, error) {
	return LoadFS(EmbeddedFS())
}

// Default returns the bundled DefaultName profile.
func Default() (Profile, error) {
	reg, err := Embedded()
	if err != nil {
		return Profile{}, err
	}
	return reg.Get(DefaultName)
}
