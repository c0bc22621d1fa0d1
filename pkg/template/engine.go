// Package template defines the engine seam shared by the voucher
// mini-language and the pongo2 compatibility engine, so the preview
// pipeline can swap engines without caring which dialect a template
// was authored in.
package template

// Engine renders template text against a nested data context.
type Engine interface {
	// Name identifies the engine for registry lookups ("voucher", "pongo").
	Name() string

	// RenderString renders template content against data. Engines may
	// degrade best-effort instead of returning an error; callers must
	// treat the output as authoritative whenever err is nil.
	RenderString(templateContent string, data map[string]any) (string, error)
}
