// Package axis declares the configuration axes a generation run enumerates.
// A Registry holds the axes in declaration order together with their ordered
// values; it is validated on construction and never mutated afterwards, so the
// same registry can drive naming, substitution, and enumeration order.
package axis
