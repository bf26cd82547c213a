package axis

// Param is a named substitution value contributed by an axis value to the
// instantiation statement.
type Param struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Value is one allowed setting of an axis. Token identifies the value inside
// generated file names; Params are the values substituted into templates.
type Value struct {
	Token  string  `json:"token" yaml:"token"`
	Params []Param `json:"params,omitempty" yaml:"params,omitempty"`
}

// Scalar builds a value whose token doubles as its only parameter.
func Scalar(param, token string) Value {
	return Value{
		Token:  token,
		Params: []Param{{Name: param, Value: token}},
	}
}

// Axis is a named, ordered set of values for one configuration dimension.
// Suffix is appended to every token when the axis contributes to a file name.
type Axis struct {
	Name   string  `json:"name" yaml:"name"`
	Suffix string  `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Values []Value `json:"values" yaml:"values"`
}

// Len returns the number of values declared on the axis.
func (a Axis) Len() int {
	return len(a.Values)
}

// ParamNames lists the parameter names the axis contributes, in the order the
// first value declares them.
func (a Axis) ParamNames() []string {
	if len(a.Values) == 0 {
		return nil
	}
	names := make([]string, 0, len(a.Values[0].Params))
	for _, p := range a.Values[0].Params {
		names = append(names, p.Name)
	}
	return names
}

func cloneAxis(a Axis) Axis {
	out := Axis{Name: a.Name, Suffix: a.Suffix}
	if len(a.Values) > 0 {
		out.Values = make([]Value, len(a.Values))
		for i, v := range a.Values {
			out.Values[i] = cloneValue(v)
		}
	}
	return out
}

func cloneValue(v Value) Value {
	return Value{
		Token:  v.Token,
		Params: append([]Param(nil), v.Params...),
	}
}
