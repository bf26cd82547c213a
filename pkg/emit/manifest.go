package emit

import (
	"fmt"
	"io"
	"path"
	"strings"
)

// Manifest records generated paths in generation order and streams each one,
// prefixed with the source root, to an optional writer as it is appended.
type Manifest struct {
	root  string
	out   io.Writer
	paths []string
}

// NewManifest returns an empty manifest. root is joined in front of every
// reported line; out may be nil to collect paths silently.
func NewManifest(root string, out io.Writer) *Manifest {
	return &Manifest{
		root: strings.TrimSuffix(strings.TrimSpace(root), "/"),
		out:  out,
	}
}

// Append records p and reports it. A failing writer is an I/O failure like
// any other and leaves the path unrecorded.
func (m *Manifest) Append(p string) error {
	line := m.line(p)
	if m.out != nil {
		if _, err := fmt.Fprintln(m.out, line); err != nil {
			return fmt.Errorf("emit: report %s: %w", line, err)
		}
	}
	m.paths = append(m.paths, p)
	return nil
}

// Paths returns the recorded file paths relative to the output directory.
func (m *Manifest) Paths() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.paths...)
}

// Lines returns the reported lines, each relative to the source root.
func (m *Manifest) Lines() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.paths))
	for i, p := range m.paths {
		out[i] = m.line(p)
	}
	return out
}

// Len returns the number of recorded paths.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.paths)
}

func (m *Manifest) line(p string) string {
	if m.root == "" {
		return p
	}
	return path.Join(m.root, p)
}
