package htmldoc

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	bodyPolicyOnce sync.Once
	bodyPolicy     *bluemonday.Policy
)

// Sanitize scrubs tenant-authored voucher markup down to the layout
// vocabulary invoice templates actually use: headings, paragraphs, tables,
// images, and inline styling. Script-capable markup never survives.
func Sanitize(markup string) string {
	return strings.TrimSpace(sanitizer().Sanitize(markup))
}

func sanitizer() *bluemonday.Policy {
	bodyPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()

		policy.AllowElements(
			"h1", "h2", "h3", "h4", "p", "br", "hr", "b", "strong", "i",
			"em", "u", "small", "sub", "sup", "span", "div",
			"table", "thead", "tbody", "tfoot", "tr", "th", "td",
			"ul", "ol", "li", "img",
		)

		policy.AllowAttrs("style", "class", "align").Globally()
		policy.AllowAttrs("colspan", "rowspan", "width").OnElements("th", "td")
		policy.AllowAttrs("border", "cellspacing", "cellpadding", "width").OnElements("table")
		policy.AllowStandardURLs()
		policy.AllowAttrs("src", "alt", "width", "height").OnElements("img")

		bodyPolicy = policy
	})
	return bodyPolicy
}
