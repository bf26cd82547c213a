package render

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// placeholders lists the named substitution points of a template source in
// order of appearance. Anything other than a bare `{{ name }}` is rejected so
// that the check below stays exact.
func placeholders(name, source string) ([]string, error) {
	if strings.Contains(source, "{%") || strings.Contains(source, "{#") {
		return nil, fmt.Errorf("%w: %s uses tags or comments; only {{ name }} substitutions are supported", ErrTemplateMismatch, name)
	}

	matches := placeholderPattern.FindAllStringSubmatch(source, -1)
	if open := strings.Count(source, "{{"); open != len(matches) {
		return nil, fmt.Errorf("%w: %s has %d expressions but only %d plain placeholders", ErrTemplateMismatch, name, open, len(matches))
	}

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m[1]
	}
	return out, nil
}

func countNames(names []string) map[string]int {
	out := make(map[string]int, len(names))
	for _, n := range names {
		out[n]++
	}
	return out
}

// leftoverMarkup reports whether rendered output still contains template
// delimiters, or HTML entities an escaping engine would have introduced.
func leftoverMarkup(rendered string) (string, bool) {
	for _, delim := range []string{"{{", "}}", "{%", "%}", "&lt;", "&gt;", "&amp;", "&quot;", "&#39;"} {
		if strings.Contains(rendered, delim) {
			return delim, true
		}
	}
	return "", false
}
