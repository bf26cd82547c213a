// Package template defines the renderer-agnostic template seam used by the
// instantiation renderer. Concrete engines live in sub-packages.
package template
