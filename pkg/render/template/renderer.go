package template

import (
	"io"
)

// TemplateRenderer is the contract the instantiation renderer relies on. Named
// templates are resolved by the engine; RenderString parses ad hoc content.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
