// Package printgen renders voucher and invoice print templates. The root
// package re-exports the preview pipeline so callers can produce a
// document with a single call; the subpackages expose the engine, the
// document renderers, and the context tooling individually.
package printgen

import (
	"context"

	"github.com/billcraft/printgen/pkg/preview"
	"github.com/billcraft/printgen/pkg/render"
	"github.com/billcraft/printgen/pkg/template/voucher"
)

// Request aliases preview.Request for callers wiring through the root
// package.
type Request = preview.Request

// Result aliases preview.Result.
type Result = preview.Result

// RenderOptions aliases the document renderer presentation hints.
type RenderOptions = render.Options

// NewOrchestrator exposes the preview orchestrator constructor.
func NewOrchestrator(options ...preview.Option) *preview.Orchestrator {
	return preview.New(options...)
}

// PreviewHTML renders template source against data into a complete,
// sanitised HTML document using the default pipeline. It is the simplest
// entry point for callers that just want the preview page.
func PreviewHTML(ctx context.Context, templateSource string, data map[string]any, options ...preview.Option) ([]byte, error) {
	res, err := preview.New(options...).Preview(ctx, preview.Request{
		Template: templateSource,
		Data:     data,
	})
	if err != nil {
		return nil, err
	}
	return res.Document, nil
}

// RenderBody runs only the voucher mini-language over data, without
// document chrome or sanitisation. Useful for embedding rendered
// fragments in an existing page.
func RenderBody(templateSource string, data map[string]any) string {
	return voucher.Render(templateSource, preview.BuildContext(data))
}
