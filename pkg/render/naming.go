package render

import (
	"strings"

	"github.com/goliatone/go-instgen/pkg/combinator"
)

const defaultSeparator = "_"

// Naming builds file names of the form
// <prefix>_<token1><suffix1>_..._<tokenN><suffixN>.<extension>.
type Naming struct {
	Prefix    string
	Extension string
	// Separator joins the prefix and every axis token. Defaults to "_".
	Separator string
}

// Path returns the file name for c. The name is injective over combinations
// as long as the joined tokens cannot be confused, which the generator checks
// before writing.
func (n Naming) Path(c combinator.Combination) string {
	sep := n.Separator
	if sep == "" {
		sep = defaultSeparator
	}

	parts := make([]string, 0, len(c.Values)+1)
	if n.Prefix != "" {
		parts = append(parts, n.Prefix)
	}
	for i, v := range c.Values {
		token := v.Token
		if i < len(c.Suffixes) {
			token += c.Suffixes[i]
		}
		parts = append(parts, token)
	}

	name := strings.Join(parts, sep)
	if ext := strings.TrimPrefix(n.Extension, "."); ext != "" {
		name += "." + ext
	}
	return name
}
