package emit

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/goliatone/go-instgen/pkg/render"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// Emitter writes rendered files below a root directory.
type Emitter struct {
	root string
	fs   FileSystem
}

// NewEmitter returns an emitter rooted at dir. A nil fsys selects Default.
func NewEmitter(dir string, fsys FileSystem) *Emitter {
	if fsys == nil {
		fsys = Default
	}
	if dir == "" {
		dir = "."
	}
	return &Emitter{root: dir, fs: fsys}
}

// Root returns the directory files are written into.
func (e *Emitter) Root() string {
	return e.root
}

// Write creates or replaces the file at file.Path. Readers see either the
// previous content or the new content, never a partial file.
func (e *Emitter) Write(file render.RenderedFile) error {
	if file.Path == "" {
		return errors.New("emit: rendered file has no path")
	}
	if filepath.IsAbs(file.Path) || !filepath.IsLocal(filepath.FromSlash(file.Path)) {
		return fmt.Errorf("emit: path %q escapes the output directory", file.Path)
	}

	target := filepath.Join(e.root, filepath.FromSlash(file.Path))
	dir := filepath.Dir(target)
	if err := e.fs.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("emit: create directory %s: %w", dir, err)
	}

	pending, err := e.fs.Pending(target, filePerm)
	if err != nil {
		return fmt.Errorf("emit: create %s: %w", target, err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.Write(file.Content); err != nil {
		return fmt.Errorf("emit: write %s: %w", target, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("emit: replace %s: %w", target, err)
	}
	return nil
}
