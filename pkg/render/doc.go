// Package render maps one combination to one generated file. Content is the
// concatenation of a header, a single instantiation statement, and a trailer,
// each a pongo2 template with named substitution points. Templates are checked
// against the axis registry before any output is produced so that every param
// is substituted exactly once and nothing is left unresolved.
package render
