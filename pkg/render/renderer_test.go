package render_test

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-instgen/pkg/axis"
	"github.com/goliatone/go-instgen/pkg/combinator"
	"github.com/goliatone/go-instgen/pkg/render"
	"github.com/goliatone/go-instgen/pkg/testsupport"
)

var searchNaming = render.Naming{Prefix: "q_search_single_cta", Extension: "cu"}

func newSearchRenderer(t *testing.T) *render.Renderer {
	t.Helper()

	r, err := render.New(
		render.EmbeddedTemplates(),
		render.BundleTemplate("cagra_q_search"),
		searchNaming,
		render.WithGlobals(testsupport.Globals),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRenderer_SearchScenario(t *testing.T) {
	reg := testsupport.SearchRegistry(t)
	r := newSearchRenderer(t)
	if err := r.Check(reg); err != nil {
		t.Fatalf("check: %v", err)
	}

	files := make(map[string]render.RenderedFile)
	for c := range combinator.Product(reg) {
		file, err := r.Render(c)
		if err != nil {
			t.Fatalf("render %v: %v", c.Tokens(), err)
		}
		if _, dup := files[file.Path]; dup {
			t.Fatalf("duplicate path %s", file.Path)
		}
		files[file.Path] = file
	}
	if len(files) != 12 {
		t.Fatalf("expected 12 files, got %d", len(files))
	}

	const name = "q_search_single_cta_float_uint32_8pq_2subd_half.cu"
	file, ok := files[name]
	if !ok {
		t.Fatalf("expected %s among %d files", name, len(files))
	}

	golden := filepath.Join("testdata", name+".golden")
	if testsupport.WriteMaybeGolden(t, golden, file.Content) {
		return
	}
	want := testsupport.MustReadGoldenString(t, golden)
	if diff := testsupport.CompareGolden(want, string(file.Content)); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_InstantiationOrder(t *testing.T) {
	reg := testsupport.SearchRegistry(t)
	r := newSearchRenderer(t)

	const descriptor = "  cuvs::neighbors::cagra::detail::cagra_q_dataset_descriptor_t<"
	filterSuffix := ">, " + testsupport.Globals["filter"] + ");"

	for c := range combinator.Product(reg) {
		file, err := r.Render(c)
		if err != nil {
			t.Fatalf("render %v: %v", c.Tokens(), err)
		}

		var lines []string
		for _, l := range strings.Split(string(file.Content), "\n") {
			if strings.HasPrefix(l, descriptor) {
				lines = append(lines, l)
			}
		}
		if len(lines) != 1 {
			t.Fatalf("%s: expected one instantiation line, got %d:\n%s", file.Path, len(lines), file.Content)
		}

		p := c.Params()
		want := descriptor + strings.Join([]string{
			p["data_t"], p["code_book_t"], p["pq_bits"], p["subspace_dim"], p["distance_t"], p["idx_t"],
		}, " COMMA ") + filterSuffix
		if lines[0] != want {
			t.Fatalf("%s: instantiation line\n got: %q\nwant: %q", file.Path, lines[0], want)
		}
	}

	first, err := r.Render(combinator.All(reg)[0])
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	const wantFirst = "  cuvs::neighbors::cagra::detail::cagra_q_dataset_descriptor_t<float COMMA half COMMA 8 COMMA 2 COMMA float COMMA uint32_t>, cuvs::neighbors::filtering::none_cagra_sample_filter);"
	if !strings.Contains(string(first.Content), "\n"+wantFirst+"\n") {
		t.Fatalf("first instantiation line missing %q:\n%s", wantFirst, first.Content)
	}
}

func TestRenderer_HeaderAndTrailerAreFixed(t *testing.T) {
	reg := testsupport.SearchRegistry(t)
	r := newSearchRenderer(t)

	var header, trailer string
	for c := range combinator.Product(reg) {
		file, err := r.Render(c)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		content := string(file.Content)
		start := strings.Index(content, "instantiate_kernel_selection(")
		end := strings.Index(content, ");\n")
		if start < 0 || end < 0 {
			t.Fatalf("%s lacks an instantiation statement", file.Path)
		}
		h, tr := content[:start], content[end+len(");\n"):]
		if header == "" {
			header, trailer = h, tr
			continue
		}
		if h != header || tr != trailer {
			t.Fatalf("%s varies outside the instantiation statement", file.Path)
		}
	}
	if !strings.HasSuffix(trailer, "}  // namespace cuvs::neighbors::cagra::detail::single_cta_search\n") {
		t.Fatalf("unexpected trailer %q", trailer)
	}
}

func TestRenderer_Deterministic(t *testing.T) {
	reg := testsupport.SearchRegistry(t)

	run := func() map[string]string {
		r := newSearchRenderer(t)
		out := make(map[string]string)
		for c := range combinator.Product(reg) {
			file, err := r.Render(c)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			out[file.Path] = string(file.Content)
		}
		return out
	}

	if diff := testsupport.CompareGolden(run(), run()); diff != "" {
		t.Fatalf("runs differ (-first +second):\n%s", diff)
	}
}

func TestNaming_Path(t *testing.T) {
	reg := axis.MustRegistry(
		axis.Axis{Name: "kind", Values: []axis.Value{axis.Scalar("kind", "half_uint64")}},
		axis.Axis{Name: "bits", Suffix: "pq", Values: []axis.Value{axis.Scalar("bits", "8")}},
	)
	c := combinator.All(reg)[0]

	cases := []struct {
		naming render.Naming
		want   string
	}{
		{render.Naming{Prefix: "q", Extension: "cu"}, "q_half_uint64_8pq.cu"},
		{render.Naming{Prefix: "q", Extension: ".cuh", Separator: "-"}, "q-half_uint64-8pq.cuh"},
		{render.Naming{}, "half_uint64_8pq"},
	}
	for _, tc := range cases {
		if got := tc.naming.Path(c); got != tc.want {
			t.Fatalf("Path() = %q, want %q", got, tc.want)
		}
	}
}

func bundle(header, inst, trailer string) fstest.MapFS {
	return fstest.MapFS{
		"b/header.tpl":        {Data: []byte(header)},
		"b/instantiation.tpl": {Data: []byte(inst)},
		"b/trailer.tpl":       {Data: []byte(trailer)},
	}
}

func TestRenderer_TemplateMismatch(t *testing.T) {
	reg := axis.MustRegistry(
		axis.Axis{Name: "a", Values: []axis.Value{axis.Scalar("a", "x")}},
		axis.Axis{Name: "b", Values: []axis.Value{axis.Scalar("b", "y")}},
	)
	globals := render.WithGlobals(map[string]string{"tool": "gen"})

	cases := map[string]fstest.MapFS{
		"param missing from statement": bundle("// {{ tool }}\n", "inst<{{ a }}>;\n", "\n"),
		"param substituted twice":      bundle("", "inst<{{ a }}, {{ b }}, {{ a }}>;\n", ""),
		"unknown placeholder":          bundle("", "inst<{{ a }}, {{ b }}, {{ c }}>;\n", ""),
		"header uses a param":          bundle("// {{ a }}\n", "inst<{{ a }}, {{ b }}>;\n", ""),
		"trailer uses unknown global":  bundle("", "inst<{{ a }}, {{ b }}>;\n", "// {{ missing }}\n"),
	}

	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := render.New(fsys, render.BundleTemplate("b"), render.Naming{}, globals)
			if err != nil {
				t.Fatalf("new renderer: %v", err)
			}
			if err := r.Check(reg); !errors.Is(err, render.ErrTemplateMismatch) {
				t.Fatalf("Check: expected ErrTemplateMismatch, got %v", err)
			}
			if _, err := r.Render(combinator.All(reg)[0]); !errors.Is(err, render.ErrTemplateMismatch) {
				t.Fatalf("Render: expected ErrTemplateMismatch, got %v", err)
			}
		})
	}
}

func TestRenderer_RejectsUnsupportedMarkup(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"filter":  bundle("", "inst<{{ a|upper }}>;\n", ""),
		"tag":     bundle("{% if a %}x{% endif %}", "inst<{{ a }}>;\n", ""),
		"comment": bundle("", "inst<{{ a }}>;{# note #}\n", ""),
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := render.New(fsys, render.BundleTemplate("b"), render.Naming{})
			if !errors.Is(err, render.ErrTemplateMismatch) {
				t.Fatalf("expected ErrTemplateMismatch, got %v", err)
			}
		})
	}
}

type staticEngine struct {
	out map[string]string
}

func (e staticEngine) Render(name string, data any, out ...io.Writer) (string, error) {
	return e.RenderTemplate(name, data, out...)
}

func (e staticEngine) RenderTemplate(name string, _ any, _ ...io.Writer) (string, error) {
	return e.out[name], nil
}

func (e staticEngine) RenderString(content string, _ any, _ ...io.Writer) (string, error) {
	return content, nil
}

func (staticEngine) GlobalContext(any) error { return nil }

func TestRenderer_LeftoverMarkup(t *testing.T) {
	reg := axis.MustRegistry(axis.Axis{Name: "a", Values: []axis.Value{axis.Scalar("a", "x")}})
	engine := staticEngine{out: map[string]string{
		"b/header":        "",
		"b/instantiation": "inst<x>;\n",
		"b/trailer":       "{{ a }}\n",
	}}

	r, err := render.New(bundle("", "inst<{{ a }}>;\n", ""), render.BundleTemplate("b"), render.Naming{}, render.WithEngine(engine))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(combinator.All(reg)[0]); !errors.Is(err, render.ErrTemplateMismatch) {
		t.Fatalf("expected ErrTemplateMismatch, got %v", err)
	}
}

func TestRenderer_EscapedOutputIsRejected(t *testing.T) {
	reg := axis.MustRegistry(axis.Axis{Name: "a", Values: []axis.Value{axis.Scalar("a", "x")}})
	engine := staticEngine{out: map[string]string{
		"b/header":        "",
		"b/instantiation": "inst&lt;x&gt;;\n",
		"b/trailer":       "",
	}}

	r, err := render.New(bundle("", "inst<{{ a }}>;\n", ""), render.BundleTemplate("b"), render.Naming{}, render.WithEngine(engine))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(combinator.All(reg)[0]); !errors.Is(err, render.ErrTemplateMismatch) {
		t.Fatalf("expected ErrTemplateMismatch, got %v", err)
	}
}

func TestRenderer_MissingTemplate(t *testing.T) {
	_, err := render.New(fstest.MapFS{}, render.BundleTemplate("b"), render.Naming{})
	if err == nil || !strings.Contains(err.Error(), "b/header.tpl") {
		t.Fatalf("expected missing header error, got %v", err)
	}
}
