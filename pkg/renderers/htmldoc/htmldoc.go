// Package htmldoc wraps a rendered voucher body into a printable HTML
// document. Template bodies come from tenant-authored templates, so the
// body is scrubbed through a sanitisation policy before it is framed by
// the trusted chrome.
package htmldoc

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/billcraft/printgen/pkg/render"
)

const (
	defaultTitle = "Voucher Preview"
	defaultColor = "#111827"
	defaultFont  = "Helvetica Neue"
)

var (
	hexColorPattern  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	fontFamilyFilter = regexp.MustCompile(`^[A-Za-z0-9 \-]+$`)
)

// Renderer produces a complete HTML page around the voucher body.
type Renderer struct{}

// New returns the HTML document renderer.
func New() *Renderer { return &Renderer{} }

var _ render.Renderer = (*Renderer)(nil)

// Name implements render.Renderer.
func (*Renderer) Name() string { return "html" }

// ContentType implements render.Renderer.
func (*Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render implements render.Renderer.
func (r *Renderer) Render(ctx context.Context, body string, options render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("htmldoc: %w", err)
	}

	title := strings.TrimSpace(options.Title)
	if title == "" {
		title = defaultTitle
	}

	doc := fmt.Sprintf(chromeTemplate,
		html.EscapeString(title),
		sanitizeColor(options.PrimaryColor),
		sanitizeFont(options.FontFamily),
		Sanitize(body),
	)
	return []byte(doc), nil
}

func sanitizeColor(value string) string {
	trimmed := strings.TrimSpace(value)
	if hexColorPattern.MatchString(trimmed) {
		return trimmed
	}
	return defaultColor
}

func sanitizeFont(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed != "" && fontFamilyFilter.MatchString(trimmed) {
		return trimmed
	}
	return defaultFont
}

const chromeTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>%s</title>
  <style>
    :root {
      --primary: %s;
      --font: "%s";
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: var(--font), "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .voucher {
      max-width: 820px;
      margin: 0 auto;
      border-top: 2px solid var(--primary);
      padding-top: 16px;
    }
    table {
      width: 100%%;
      border-collapse: collapse;
      font-size: 14px;
    }
    th, td {
      padding: 8px;
      border-bottom: 1px solid #e5e7eb;
      text-align: left;
    }
    @media print {
      body { padding: 0; }
    }
  </style>
</head>
<body>
  <div class="voucher">
%s
  </div>
</body>
</html>
`
