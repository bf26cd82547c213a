package testsupport

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-instgen/pkg/axis"
)

// Globals mirrors the values the bundled cagra_q_search profile hands to its
// templates.
var Globals = map[string]string{
	"generator": "github.com/goliatone/go-instgen/cmd/instgen",
	"profile":   "cagra_q_search",
	"filter":    "cuvs::neighbors::filtering::none_cagra_sample_filter",
}

// SearchAxes returns the axes of the CAGRA single-CTA search instantiations:
// six search types, one PQ bit width, two subspace dims and one codebook type.
func SearchAxes() []axis.Axis {
	searchType := func(token, data, idx string) axis.Value {
		return axis.Value{Token: token, Params: []axis.Param{
			{Name: "data_t", Value: data},
			{Name: "distance_t", Value: "float"},
			{Name: "idx_t", Value: idx},
		}}
	}
	return []axis.Axis{
		{Name: "search_type", Values: []axis.Value{
			searchType("float_uint32", "float", "uint32_t"),
			searchType("half_uint32", "half", "uint32_t"),
			searchType("int8_uint32", "int8_t", "uint32_t"),
			searchType("uint8_uint32", "uint8_t", "uint32_t"),
			searchType("float_uint64", "float", "uint64_t"),
			searchType("half_uint64", "half", "uint64_t"),
		}},
		{Name: "pq_bits", Suffix: "pq", Values: []axis.Value{axis.Scalar("pq_bits", "8")}},
		{Name: "subspace_dim", Suffix: "subd", Values: []axis.Value{
			axis.Scalar("subspace_dim", "2"),
			axis.Scalar("subspace_dim", "4"),
		}},
		{Name: "code_book", Values: []axis.Value{axis.Scalar("code_book_t", "half")}},
	}
}

// SearchRegistry wraps SearchAxes in a registry.
func SearchRegistry(t *testing.T) *axis.Registry {
	t.Helper()

	reg, err := axis.NewRegistry(SearchAxes()...)
	if err != nil {
		t.Fatalf("search registry: %v", err)
	}
	return reg
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// ReadTree returns every regular file below dir keyed by its slash-separated
// relative path.
func ReadTree(t *testing.T, dir string) map[string]string {
	t.Helper()

	out := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("read tree %s: %v", dir, err)
	}
	return out
}
