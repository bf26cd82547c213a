package instgen_test

import (
	"bytes"
	"io/fs"
	"os"
	"testing"

	"github.com/goliatone/go-instgen"
	"github.com/goliatone/go-instgen/pkg/generator"
)

func TestGenerate_DefaultProfile(t *testing.T) {
	var out bytes.Buffer
	manifest, err := instgen.Generate(
		generator.WithOutputDir(t.TempDir()),
		generator.WithManifestWriter(&out),
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if manifest.Len() != 12 {
		t.Fatalf("expected 12 files, got %d", manifest.Len())
	}
	if got := bytes.Count(out.Bytes(), []byte("\n")); got != manifest.Len() {
		t.Fatalf("manifest stream has %d lines, want %d", got, manifest.Len())
	}
}

func TestEmbeddedAssets(t *testing.T) {
	if _, err := fs.Stat(instgen.EmbeddedTemplates(), "cagra_q_search/instantiation.tpl"); err != nil {
		t.Fatalf("embedded templates: %v", err)
	}
	if _, err := fs.Stat(instgen.EmbeddedProfiles(), "cagra_q_search.yaml"); err != nil {
		t.Fatalf("embedded profiles: %v", err)
	}

	p, err := instgen.DefaultProfile()
	if err != nil {
		t.Fatalf("default profile: %v", err)
	}
	if p.Axes.Size() != 12 {
		t.Fatalf("expected 12 combinations, got %d", p.Axes.Size())
	}
}

func TestNewGenerator_PlanWritesNothing(t *testing.T) {
	dir := t.TempDir()
	paths, err := instgen.NewGenerator(generator.WithOutputDir(dir)).Plan()
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(paths) != 12 {
		t.Fatalf("expected 12 planned paths, got %d", len(paths))
	}
	if paths[0] != "q_search_single_cta_float_uint32_8pq_2subd_half.cu" {
		t.Fatalf("unexpected first path %q", paths[0])
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("plan wrote %d entries", len(entries))
	}
}
