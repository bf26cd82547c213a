// Package generator wires the axis registry, combinator, renderer, and
// emitter into a single sequential run. Every combination is rendered,
// written, and reported before the next one is produced; the first error
// stops the run and files written earlier stay on disk.
package generator
