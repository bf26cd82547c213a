package render

import "errors"

// ErrTemplateMismatch signals that templates and axes disagree: a placeholder
// has no value, a param is not substituted exactly once, or rendered output
// still carries template markup. It indicates a broken profile, not bad input.
var ErrTemplateMismatch = errors.New("render: template/axis mismatch")
