package profile

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-instgen/pkg/axis"
)

// DefaultGenerator is reported in generated headers when a profile does not
// name its generator.
const DefaultGenerator = "github.com/goliatone/go-instgen/cmd/instgen"

// ErrNotFound is returned when a registry has no profile of the given name.
var ErrNotFound = errors.New("profile: not found")

// Profile is a fully resolved generation run.
type Profile struct {
	Name       string
	Generator  string
	Template   string
	Prefix     string
	Extension  string
	SourceRoot string
	Vars       map[string]string
	Axes       *axis.Registry
}

// Globals returns the values every template part may reference: the profile
// variables plus `generator` and `profile`.
func (p Profile) Globals() map[string]string {
	out := make(map[string]string, len(p.Vars)+2)
	for k, v := range p.Vars {
		out[k] = v
	}
	out["generator"] = p.Generator
	out["profile"] = p.Name
	return out
}

type profileFile struct {
	Name       string            `yaml:"name"`
	Generator  string            `yaml:"generator"`
	Template   string            `yaml:"template"`
	Prefix     string            `yaml:"prefix"`
	Extension  string            `yaml:"extension"`
	SourceRoot string            `yaml:"sourceRoot"`
	Globals    map[string]string `yaml:"globals"`
	Axes       []axis.File       `yaml:"axes"`
}

// Decode parses a profile document. source labels errors.
func Decode(data []byte, source string) (Profile, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Profile{}, fmt.Errorf("profile: %s is empty", source)
	}

	var doc profileFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Profile{}, fmt.Errorf("profile: parse %s: %w", source, err)
	}

	p := Profile{
		Name:       strings.TrimSpace(doc.Name),
		Generator:  strings.TrimSpace(doc.Generator),
		Template:   strings.TrimSpace(doc.Template),
		Prefix:     strings.TrimSpace(doc.Prefix),
		Extension:  strings.TrimSpace(doc.Extension),
		SourceRoot: strings.TrimSpace(doc.SourceRoot),
		Vars:       make(map[string]string, len(doc.Globals)),
	}
	if p.Name == "" {
		return Profile{}, fmt.Errorf("profile: %s has no name", source)
	}
	if p.Template == "" {
		p.Template = p.Name
	}
	if p.Generator == "" {
		p.Generator = DefaultGenerator
	}
	for k, v := range doc.Globals {
		key := strings.TrimSpace(k)
		if key == "generator" || key == "profile" {
			return Profile{}, fmt.Errorf("profile: %s overrides reserved global %q", source, key)
		}
		value := strings.TrimSpace(v)
		if err := checkGlobal(value); err != nil {
			return Profile{}, fmt.Errorf("profile: %s global %q: %w", source, key, err)
		}
		p.Vars[key] = value
	}

	reg, err := axis.FromFiles(doc.Axes, source)
	if err != nil {
		return Profile{}, fmt.Errorf("profile: %w", err)
	}
	p.Axes = reg
	return p, nil
}

// checkGlobal accepts arbitrary single-line C++ text (`ns::filter<a, b>` is
// fine) but nothing the template engine could parse as markup.
func checkGlobal(value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return errors.New("must be a single line")
	}
	for _, delim := range []string{"{{", "}}", "{%", "%}", "{#", "#}"} {
		if strings.Contains(value, delim) {
			return fmt.Errorf("contains template delimiter %q", delim)
		}
	}
	return nil
}
