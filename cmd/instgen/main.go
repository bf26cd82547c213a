// Command instgen writes the kernel instantiation sources of the bundled
// cagra_q_search profile into the working directory and prints one
// build-list line per generated file on stdout.
//
// Usage:
//
//	cd src/neighbors/detail/cagra && go run github.com/goliatone/go-instgen/cmd/instgen
//
// Diagnostics go to stderr; stdout carries only the manifest so it can be
// pasted into, or piped to, the build configuration.
package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-instgen/pkg/generator"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()

	gen := generator.New(
		generator.WithOutputDir("."),
		generator.WithManifestWriter(os.Stdout),
		generator.WithLogger(logger),
	)

	if _, err := gen.Run(); err != nil {
		logger.Error().Err(err).Msg("generation failed")
		os.Exit(1)
	}
}
