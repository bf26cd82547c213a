package axis

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the serialised form of one axis. Values may be written either as
// bare scalars (bound to Param, or to the axis name when Param is empty) or as
// mappings with an explicit token and params.
type File struct {
	Name   string      `yaml:"name"`
	Suffix string      `yaml:"suffix,omitempty"`
	Param  string      `yaml:"param,omitempty"`
	Values []valueFile `yaml:"values"`
}

type valueFile struct {
	Token  string
	Params map[string]string
	scalar bool
}

// UnmarshalYAML accepts `8` as well as `{token: float_uint32, params: {...}}`.
func (v *valueFile) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		v.Token = strings.TrimSpace(node.Value)
		v.scalar = true
		return nil
	}

	var raw struct {
		Token  string            `yaml:"token"`
		Params map[string]string `yaml:"params"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	v.Token = strings.TrimSpace(raw.Token)
	v.Params = raw.Params
	return nil
}

// Decode parses a YAML (or JSON) list of axes into a Registry. The source
// label is only used in error messages.
func Decode(data []byte, source string) (*Registry, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("axis: %s is empty", source)
	}

	var files []File
	if err := yaml.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("axis: parse %s: %w", source, err)
	}
	return FromFiles(files, source)
}

// FromFiles converts decoded axis files into a validated Registry.
func FromFiles(files []File, source string) (*Registry, error) {
	axes := make([]Axis, 0, len(files))
	for _, f := range files {
		axes = append(axes, f.toAxis())
	}

	reg, err := NewRegistry(axes...)
	if err != nil {
		return nil, fmt.Errorf("axis: %s: %w", source, err)
	}
	return reg, nil
}

func (f File) toAxis() Axis {
	name := strings.TrimSpace(f.Name)
	param := strings.TrimSpace(f.Param)
	if param == "" {
		param = name
	}

	a := Axis{
		Name:   name,
		Suffix: strings.TrimSpace(f.Suffix),
		Values: make([]Value, 0, len(f.Values)),
	}
	for _, raw := range f.Values {
		if raw.scalar || len(raw.Params) == 0 {
			a.Values = append(a.Values, Scalar(param, raw.Token))
			continue
		}

		keys := make([]string, 0, len(raw.Params))
		for k := range raw.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		v := Value{Token: raw.Token, Params: make([]Param, 0, len(keys))}
		for _, k := range keys {
			v.Params = append(v.Params, Param{
				Name:  strings.TrimSpace(k),
				Value: strings.TrimSpace(raw.Params[k]),
			})
		}
		a.Values = append(a.Values, v)
	}
	return a
}
