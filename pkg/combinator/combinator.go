// Package combinator enumerates the Cartesian product of a registry's axes.
// The first declared axis varies slowest and the last varies fastest, so the
// sequence is lexicographic over value indices with axis 0 most significant.
package combinator

import (
	"iter"

	"github.com/goliatone/go-instgen/pkg/axis"
)

// Combination assigns one value to every axis of a registry.
type Combination struct {
	// Index is the position of the combination in enumeration order.
	Index  int
	Axes   []string
	Values []axis.Value
	// Suffixes holds the naming suffix of each axis, aligned with Values.
	Suffixes []string
}

// Tokens returns the naming token of each value in axis declaration order.
func (c Combination) Tokens() []string {
	out := make([]string, len(c.Values))
	for i, v := range c.Values {
		out[i] = v.Token
	}
	return out
}

// Params flattens the params of every value into a lookup table.
func (c Combination) Params() map[string]string {
	out := make(map[string]string)
	for _, v := range c.Values {
		for _, p := range v.Params {
			out[p.Name] = p.Value
		}
	}
	return out
}

// Product returns a lazy, restartable sequence over every combination of the
// registry. Nothing is yielded when the registry has no axes or any axis is
// empty.
func Product(reg *axis.Registry) iter.Seq[Combination] {
	return func(yield func(Combination) bool) {
		sizes := reg.Sizes()
		if len(sizes) == 0 {
			return
		}
		for _, size := range sizes {
			if size == 0 {
				return
			}
		}

		names := make([]string, len(sizes))
		suffixes := make([]string, len(sizes))
		for i := range sizes {
			names[i] = reg.AxisName(i)
			suffixes[i] = reg.Suffix(i)
		}

		// Odometer over value indices; the last axis ticks first.
		indices := make([]int, len(sizes))
		for n := 0; ; n++ {
			c := Combination{
				Index:    n,
				Axes:     append([]string(nil), names...),
				Suffixes: append([]string(nil), suffixes...),
				Values:   make([]axis.Value, len(sizes)),
			}
			for i, idx := range indices {
				c.Values[i] = reg.Value(i, idx)
			}
			if !yield(c) {
				return
			}

			pos := len(indices) - 1
			for pos >= 0 {
				indices[pos]++
				if indices[pos] < sizes[pos] {
					break
				}
				indices[pos] = 0
				pos--
			}
			if pos < 0 {
				return
			}
		}
	}
}

// All collects the full product eagerly.
func All(reg *axis.Registry) []Combination {
	out := make([]Combination, 0, reg.Size())
	for c := range Product(reg) {
		out = append(out, c)
	}
	return out
}

// Count returns the number of combinations Product yields.
func Count(reg *axis.Registry) int {
	return reg.Size()
}
