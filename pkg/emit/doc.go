// Package emit persists rendered files and reports their paths. Each file is
// written through a temporary sibling that is renamed into place, so a failed
// write never leaves a truncated file under the final name. Paths are
// appended to the manifest, and streamed to its writer, only after the rename
// succeeds.
package emit
