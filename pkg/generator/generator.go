package generator

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-instgen/pkg/axis"
	"github.com/goliatone/go-instgen/pkg/combinator"
	"github.com/goliatone/go-instgen/pkg/emit"
	"github.com/goliatone/go-instgen/pkg/profile"
	"github.com/goliatone/go-instgen/pkg/render"
)

// ErrNameCollision reports two combinations that would be written to the same
// path. It is detected before any file is written.
var ErrNameCollision = errors.New("generator: file name collision")

// Option customises the generator configuration.
type Option func(*Generator)

// WithProfile selects the profile to generate. Without it the bundled
// default profile is used.
func WithProfile(p profile.Profile) Option {
	return func(g *Generator) {
		g.profile = &p
	}
}

// WithRegistry replaces the profile's axes, typically with a small synthetic
// set in tests.
func WithRegistry(reg *axis.Registry) Option {
	return func(g *Generator) {
		g.registry = reg
	}
}

// WithTemplates supplies the filesystem holding template bundles. Defaults to
// render.EmbeddedTemplates().
func WithTemplates(fsys fs.FS) Option {
	return func(g *Generator) {
		g.templates = fsys
	}
}

// WithOutputDir sets the directory generated files are written into.
func WithOutputDir(dir string) Option {
	return func(g *Generator) {
		g.outputDir = dir
	}
}

// WithManifestWriter streams manifest lines to w as files are written.
func WithManifestWriter(w io.Writer) Option {
	return func(g *Generator) {
		g.manifestOut = w
	}
}

// WithFileSystem injects the filesystem used by the emitter.
func WithFileSystem(fsys emit.FileSystem) Option {
	return func(g *Generator) {
		g.fs = fsys
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// Generator runs one profile end to end.
type Generator struct {
	profile     *profile.Profile
	registry    *axis.Registry
	templates   fs.FS
	outputDir   string
	manifestOut io.Writer
	fs          emit.FileSystem
	logger      zerolog.Logger

	renderer *render.Renderer
	emitter  *emit.Emitter
	initErr  error
}

// New constructs a Generator applying any provided options. Missing pieces
// fall back to the bundled profile and templates and the local filesystem.
func New(options ...Option) *Generator {
	g := &Generator{
		outputDir: ".",
		logger:    zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	g.initErr = g.applyDefaults()
	return g
}

func (g *Generator) applyDefaults() error {
	if g.profile == nil {
		p, err := profile.Default()
		if err != nil {
			return fmt.Errorf("generator: load default profile: %w", err)
		}
		g.profile = &p
	}
	if g.registry == nil {
		g.registry = g.profile.Axes
	}
	if g.registry == nil {
		g.registry = axis.MustRegistry()
	}
	if g.templates == nil {
		g.templates = render.EmbeddedTemplates()
	}

	naming := render.Naming{Prefix: g.profile.Prefix, Extension: g.profile.Extension}
	r, err := render.New(
		g.templates,
		render.BundleTemplate(g.profile.Template),
		naming,
		render.WithGlobals(g.profile.Globals()),
	)
	if err != nil {
		return fmt.Errorf("generator: profile %s: %w", g.profile.Name, err)
	}
	g.renderer = r
	g.emitter = emit.NewEmitter(g.outputDir, g.fs)
	return nil
}

// Profile returns the profile the generator runs.
func (g *Generator) Profile() profile.Profile {
	if g.profile == nil {
		return profile.Profile{}
	}
	return *g.profile
}

// Plan returns the paths a run would produce, in generation order, without
// touching the filesystem. It fails on template/axis mismatches and name
// collisions exactly like Run.
func (g *Generator) Plan() ([]string, error) {
	if g.initErr != nil {
		return nil, g.initErr
	}
	// Empty axes bind no params, so there is nothing to check them against.
	if g.registry.Size() == 0 {
		return nil, nil
	}
	if err := g.renderer.Check(g.registry); err != nil {
		return nil, err
	}

	naming := g.renderer.Naming()
	seen := make(map[string][]string, g.registry.Size())
	paths := make([]string, 0, g.registry.Size())
	for c := range combinator.Product(g.registry) {
		p := naming.Path(c)
		if prev, dup := seen[p]; dup {
			return nil, fmt.Errorf("%w: %v and %v both map to %s", ErrNameCollision, prev, c.Tokens(), p)
		}
		seen[p] = c.Tokens()
		paths = append(paths, p)
	}
	return paths, nil
}

// Run renders and writes every combination, reporting each path to the
// manifest after its file is in place. The returned manifest holds every path
// written so far, also when an error stops the run.
func (g *Generator) Run() (*emit.Manifest, error) {
	manifest := emit.NewManifest(g.Profile().SourceRoot, g.manifestOut)

	planned, err := g.Plan()
	if err != nil {
		return manifest, err
	}

	log := g.logger.With().
		Str("profile", g.profile.Name).
		Str("output", g.emitter.Root()).
		Logger()
	log.Info().Int("files", len(planned)).Ints("axes", g.registry.Sizes()).Msg("generation started")

	for c := range combinator.Product(g.registry) {
		file, err := g.renderer.Render(c)
		if err != nil {
			return manifest, err
		}
		if err := g.emitter.Write(file); err != nil {
			log.Error().Err(err).Str("path", file.Path).Msg("write failed")
			return manifest, err
		}
		if err := manifest.Append(file.Path); err != nil {
			return manifest, err
		}
		log.Debug().Int("index", c.Index).Str("path", file.Path).Msg("file written")
	}

	log.Info().Int("files", manifest.Len()).Msg("generation finished")
	return manifest, nil
}
