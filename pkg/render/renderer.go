// Package render defines the document-renderer seam: a renderer takes the
// engine-rendered voucher body and wraps it into a complete printable
// document (HTML page, plain text, ...).
package render

import "context"

// Options carries per-request presentation hints. Renderers apply their
// own defaults for anything left zero.
type Options struct {
	// Title becomes the document title where the format has one.
	Title string `json:"title"`

	// PrimaryColor is a hex color used for document chrome.
	PrimaryColor string `json:"primary_color"`

	// FontFamily names the base font for the document.
	FontFamily string `json:"font_family"`
}

// Renderer converts a rendered template body into a final document.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, body string, options Options) ([]byte, error)
}
