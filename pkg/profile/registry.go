package profile

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"
)

// Registry stores profiles by name.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]Profile),
	}
}

// Register adds a profile by name. Duplicate names return an error.
func (r *Registry) Register(p Profile) error {
	if p.Name == "" {
		return fmt.Errorf("profile: name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[p.Name]; exists {
		return fmt.Errorf("profile: %q already registered", p.Name)
	}
	r.profiles[p.Name] = p
	return nil
}

// Get retrieves a profile by name.
func (r *Registry) Get(name string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p, nil
}

// List returns a sorted list of profile names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a profile is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.profiles[name]
	return ok
}

// LoadFS parses every .yaml/.yml document in fsys into a registry. A nil
// filesystem yields an empty registry.
func LoadFS(fsys fs.FS) (*Registry, error) {
	reg := NewRegistry()
	if fsys == nil {
		return reg, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isProfileFile(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("profile: read %s: %w", p, err)
		}
		prof, err := Decode(data, p)
		if err != nil {
			return err
		}
		if err := reg.Register(prof); err != nil {
			return fmt.Errorf("%w (file %s)", err, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func isProfileFile(p string) bool {
	switch path.Ext(p) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
