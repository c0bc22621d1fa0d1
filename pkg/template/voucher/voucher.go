// Package voucher implements the print-template mini-language used by
// voucher and invoice previews: `{% for item in array %}` loops,
// `{% if %}/{% elif %}/{% else %}` conditionals, and `{{dotted.path}}`
// interpolation with a `{{loop.index}}` binding inside loops.
//
// Rendering is best effort and never fails: malformed tags stay in the
// output as literal text, loops over missing or non-array sources expand
// to nothing, and unresolvable variables keep their original `{{...}}`
// form. Render is a pure function of template plus data; the caller's
// context is never written to.
package voucher

import "github.com/billcraft/printgen/pkg/template"

// Render parses and renders source against data in one call.
func Render(source string, data map[string]any) string {
	return Parse(source).Render(data)
}

// Engine adapts the mini-language to the template.Engine seam.
type Engine struct{}

// NewEngine returns the voucher mini-language engine.
func NewEngine() *Engine { return &Engine{} }

var _ template.Engine = (*Engine)(nil)

// Name implements template.Engine.
func (*Engine) Name() string { return "voucher" }

// RenderString implements template.Engine. The error is always nil; the
// mini-language degrades instead of failing.
func (*Engine) RenderString(templateContent string, data map[string]any) (string, error) {
	return Render(templateContent, data), nil
}
