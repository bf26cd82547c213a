package axis

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidAxis reports a registry that cannot produce unambiguous output.
var ErrInvalidAxis = errors.New("axis: invalid axis")

var (
	tokenPattern      = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	identPattern      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	paramValuePattern = regexp.MustCompile(`^[A-Za-z0-9_:]+$`)
)

// Registry is an immutable, ordered list of axes.
type Registry struct {
	axes []Axis
}

// NewRegistry validates the supplied axes and returns a registry holding a
// private copy of them. Zero axes, or axes without values, are accepted; such
// registries simply enumerate nothing.
func NewRegistry(axes ...Axis) (*Registry, error) {
	reg := &Registry{axes: make([]Axis, 0, len(axes))}
	axisNames := make(map[string]struct{}, len(axes))
	paramOwners := make(map[string]string)

	for i, a := range axes {
		name := strings.TrimSpace(a.Name)
		if !identPattern.MatchString(name) {
			return nil, fmt.Errorf("%w: axis %d has invalid name %q", ErrInvalidAxis, i, a.Name)
		}
		if _, exists := axisNames[name]; exists {
			return nil, fmt.Errorf("%w: duplicate axis %q", ErrInvalidAxis, name)
		}
		axisNames[name] = struct{}{}

		if a.Suffix != "" && !tokenPattern.MatchString(a.Suffix) {
			return nil, fmt.Errorf("%w: axis %q has invalid suffix %q", ErrInvalidAxis, name, a.Suffix)
		}
		if err := validateValues(name, a.Values); err != nil {
			return nil, err
		}

		for _, param := range a.ParamNames() {
			if owner, taken := paramOwners[param]; taken {
				return nil, fmt.Errorf("%w: param %q declared by axes %q and %q", ErrInvalidAxis, param, owner, name)
			}
			paramOwners[param] = name
		}

		cloned := cloneAxis(a)
		cloned.Name = name
		reg.axes = append(reg.axes, cloned)
	}
	return reg, nil
}

// MustRegistry panics when the axes do not validate. Useful for fixtures.
func MustRegistry(axes ...Axis) *Registry {
	reg, err := NewRegistry(axes...)
	if err != nil {
		panic(err)
	}
	return reg
}

func validateValues(axisName string, values []Value) error {
	tokens := make(map[string]struct{}, len(values))
	var shape []string

	for i, v := range values {
		if !tokenPattern.MatchString(v.Token) {
			return fmt.Errorf("%w: axis %q value %d has invalid token %q", ErrInvalidAxis, axisName, i, v.Token)
		}
		if _, exists := tokens[v.Token]; exists {
			return fmt.Errorf("%w: axis %q repeats token %q", ErrInvalidAxis, axisName, v.Token)
		}
		tokens[v.Token] = struct{}{}

		if len(v.Params) == 0 {
			return fmt.Errorf("%w: axis %q value %q declares no params", ErrInvalidAxis, axisName, v.Token)
		}
		names := make([]string, len(v.Params))
		seen := make(map[string]struct{}, len(v.Params))
		for j, p := range v.Params {
			if !identPattern.MatchString(p.Name) {
				return fmt.Errorf("%w: axis %q value %q has invalid param name %q", ErrInvalidAxis, axisName, v.Token, p.Name)
			}
			if _, dup := seen[p.Name]; dup {
				return fmt.Errorf("%w: axis %q value %q repeats param %q", ErrInvalidAxis, axisName, v.Token, p.Name)
			}
			seen[p.Name] = struct{}{}
			if !paramValuePattern.MatchString(p.Value) {
				return fmt.Errorf("%w: axis %q value %q param %q has invalid value %q", ErrInvalidAxis, axisName, v.Token, p.Name, p.Value)
			}
			names[j] = p.Name
		}

		// Every value of an axis must bind the same params in the same order.
		if shape == nil {
			shape = names
			continue
		}
		if strings.Join(shape, ",") != strings.Join(names, ",") {
			return fmt.Errorf("%w: axis %q value %q binds params %v, want %v", ErrInvalidAxis, axisName, v.Token, names, shape)
		}
	}
	return nil
}

// Axes returns a copy of the registered axes in declaration order.
func (r *Registry) Axes() []Axis {
	if r == nil {
		return nil
	}
	out := make([]Axis, len(r.axes))
	for i, a := range r.axes {
		out[i] = cloneAxis(a)
	}
	return out
}

// Axis looks up an axis by name.
func (r *Registry) Axis(name string) (Axis, bool) {
	if r == nil {
		return Axis{}, false
	}
	for _, a := range r.axes {
		if a.Name == name {
			return cloneAxis(a), true
		}
	}
	return Axis{}, false
}

// Len returns the number of axes.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.axes)
}

// Sizes returns the value count of every axis in declaration order.
func (r *Registry) Sizes() []int {
	if r == nil {
		return nil
	}
	sizes := make([]int, len(r.axes))
	for i, a := range r.axes {
		sizes[i] = len(a.Values)
	}
	return sizes
}

// Size returns the number of combinations the registry enumerates: the
// product of all axis sizes, or zero when there are no axes at all.
func (r *Registry) Size() int {
	if r.Len() == 0 {
		return 0
	}
	total := 1
	for _, a := range r.axes {
		total *= len(a.Values)
	}
	return total
}

// ParamNames returns every param name bound by the registry, axis by axis.
func (r *Registry) ParamNames() []string {
	if r == nil {
		return nil
	}
	var names []string
	for _, a := range r.axes {
		names = append(names, a.ParamNames()...)
	}
	return names
}

// Value returns a copy of the value at position idx of axis i.
func (r *Registry) Value(i, idx int) Value {
	return cloneValue(r.axes[i].Values[idx])
}

// AxisName returns the name of axis i.
func (r *Registry) AxisName(i int) string {
	return r.axes[i].Name
}

// Suffix returns the naming suffix of axis i.
func (r *Registry) Suffix(i int) string {
	return r.axes[i].Suffix
}
