package render

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/goliatone/go-instgen/pkg/axis"
	"github.com/goliatone/go-instgen/pkg/combinator"
	"github.com/goliatone/go-instgen/pkg/render/template"
	"github.com/goliatone/go-instgen/pkg/render/template/gotemplate"
)

const templateExtension = ".tpl"

// Template names the three parts of a bundle, as paths without extension
// inside the template filesystem.
type Template struct {
	Header        string
	Instantiation string
	Trailer       string
}

// BundleTemplate returns the conventional layout of a bundle directory:
// <bundle>/header.tpl, <bundle>/instantiation.tpl and <bundle>/trailer.tpl.
func BundleTemplate(bundle string) Template {
	bundle = strings.Trim(bundle, "/")
	return Template{
		Header:        bundle + "/header",
		Instantiation: bundle + "/instantiation",
		Trailer:       bundle + "/trailer",
	}
}

// RenderedFile is the output derived from exactly one combination.
type RenderedFile struct {
	Path    string
	Content []byte
	// Index is the enumeration position of the source combination.
	Index int
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithGlobals supplies values visible to every template part, such as the
// generator name or the fixed filter type.
func WithGlobals(globals map[string]string) Option {
	return func(r *Renderer) {
		for k, v := range globals {
			r.globals[strings.TrimSpace(k)] = v
		}
	}
}

// WithEngine injects a template engine instead of the pongo2 default.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		r.engine = engine
	}
}

// Renderer turns combinations into rendered files.
type Renderer struct {
	tmpl    Template
	naming  Naming
	engine  template.TemplateRenderer
	globals map[string]string

	header        []string
	instantiation []string
	trailer       []string
	instCounts    map[string]int
}

// New reads and inspects the template sources held in fsys and prepares an
// engine over the same filesystem.
func New(fsys fs.FS, tmpl Template, naming Naming, options ...Option) (*Renderer, error) {
	if fsys == nil {
		return nil, errors.New("render: template filesystem is required")
	}

	r := &Renderer{
		tmpl:    tmpl,
		naming:  naming,
		globals: make(map[string]string),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	parts := []struct {
		name string
		dest *[]string
	}{
		{tmpl.Header, &r.header},
		{tmpl.Instantiation, &r.instantiation},
		{tmpl.Trailer, &r.trailer},
	}
	for _, part := range parts {
		path := part.name + templateExtension
		source, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("render: read template %s: %w", path, err)
		}
		names, err := placeholders(path, string(source))
		if err != nil {
			return nil, err
		}
		*part.dest = names
	}
	r.instCounts = countNames(r.instantiation)

	if r.engine == nil {
		globals := make(map[string]any, len(r.globals))
		for k, v := range r.globals {
			globals[k] = v
		}
		engine, err := gotemplate.New(
			gotemplate.WithFS(fsys),
			gotemplate.WithExtension(templateExtension),
			gotemplate.WithGlobalData(globals),
		)
		if err != nil {
			return nil, fmt.Errorf("render: create engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// Naming returns the naming scheme used by the renderer.
func (r *Renderer) Naming() Naming {
	return r.naming
}

// Check verifies the templates against every param the registry can bind.
// Running it before enumeration turns a template/axis mismatch into a failure
// before any file is written.
func (r *Renderer) Check(reg *axis.Registry) error {
	return r.verify(reg.ParamNames())
}

func (r *Renderer) verify(params []string) error {
	for _, part := range []struct {
		name  string
		names []string
	}{
		{r.tmpl.Header, r.header},
		{r.tmpl.Trailer, r.trailer},
	} {
		for _, n := range part.names {
			if _, ok := r.globals[n]; !ok {
				return fmt.Errorf("%w: %s references %q, which is not a global", ErrTemplateMismatch, part.name, n)
			}
		}
	}

	bound := make(map[string]struct{}, len(params))
	for _, p := range params {
		if _, clash := r.globals[p]; clash {
			return fmt.Errorf("%w: param %q shadows a global", ErrTemplateMismatch, p)
		}
		if got := r.instCounts[p]; got != 1 {
			return fmt.Errorf("%w: %s substitutes %q %d times, want exactly once", ErrTemplateMismatch, r.tmpl.Instantiation, p, got)
		}
		bound[p] = struct{}{}
	}

	substitutions := 0
	for _, n := range r.instantiation {
		if _, ok := r.globals[n]; ok {
			continue
		}
		if _, ok := bound[n]; !ok {
			return fmt.Errorf("%w: %s references %q, which no axis binds", ErrTemplateMismatch, r.tmpl.Instantiation, n)
		}
		substitutions++
	}
	if substitutions != len(params) {
		return fmt.Errorf("%w: %s expects %d substitutions, axes bind %d", ErrTemplateMismatch, r.tmpl.Instantiation, substitutions, len(params))
	}
	return nil
}

// Render produces the file for c.
func (r *Renderer) Render(c combinator.Combination) (RenderedFile, error) {
	params := c.Params()
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	if err := r.verify(names); err != nil {
		return RenderedFile{}, err
	}

	var content strings.Builder
	for _, part := range []string{r.tmpl.Header, r.tmpl.Instantiation, r.tmpl.Trailer} {
		rendered, err := r.engine.RenderTemplate(part, params)
		if err != nil {
			return RenderedFile{}, fmt.Errorf("render: %s: %w", part, err)
		}
		content.WriteString(rendered)
	}

	path := r.naming.Path(c)
	out := content.String()
	if delim, found := leftoverMarkup(out); found {
		return RenderedFile{}, fmt.Errorf("%w: %s still contains %q after substitution", ErrTemplateMismatch, path, delim)
	}

	return RenderedFile{
		Path:    path,
		Content: []byte(out),
		Index:   c.Index,
	}, nil
}
