// Package textdoc renders voucher bodies as plain text for dot-matrix and
// thermal printing paths that cannot consume HTML.
package textdoc

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/billcraft/printgen/pkg/render"
)

var (
	tagPattern    = regexp.MustCompile(`<[^>]*>`)
	blankPattern  = regexp.MustCompile(`\n{3,}`)
	breakReplacer = strings.NewReplacer(
		"<br>", "\n", "<br/>", "\n", "<br />", "\n",
		"</p>", "\n", "</div>", "\n", "</tr>", "\n",
		"</h1>", "\n", "</h2>", "\n", "</h3>", "\n",
		"</td>", "\t", "</th>", "\t",
	)
)

// Renderer strips markup and emits a newline-normalised text document.
type Renderer struct{}

// New returns the plain-text document renderer.
func New() *Renderer { return &Renderer{} }

var _ render.Renderer = (*Renderer)(nil)

// Name implements render.Renderer.
func (*Renderer) Name() string { return "text" }

// ContentType implements render.Renderer.
func (*Renderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render implements render.Renderer. Title becomes a header line; the
// color and font options have no text equivalent and are ignored.
func (r *Renderer) Render(ctx context.Context, body string, options render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("textdoc: %w", err)
	}

	text := breakReplacer.Replace(body)
	text = tagPattern.ReplaceAllString(text, "")
	text = blankPattern.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	if title := strings.TrimSpace(options.Title); title != "" {
		text = title + "\n" + strings.Repeat("=", len(title)) + "\n\n" + text
	}
	return []byte(text + "\n"), nil
}
