/*
Responsibilities
- Strip scripts, event handlers and unsafe URLs from preview markup
- Keep the structural and form markup a locator preview needs
- Keep styling, data-* and ARIA attributes so highlights survive

The preview is rendered in a browser next to the ranking, so the
document it came from is treated as untrusted.
*/
package sanitizer

import (
	"github.com/microcosm-cc/bluemonday"
)

var previewElements = []string{
	"a", "abbr", "article", "aside", "b", "blockquote", "br", "button",
	"caption", "code", "datalist", "dd", "details", "div", "dl", "dt", "em",
	"fieldset", "figcaption", "figure", "footer", "form", "h1", "h2", "h3",
	"h4", "h5", "h6", "header", "hr", "i", "img", "input", "label", "legend",
	"li", "main", "mark", "nav", "ol", "optgroup", "option", "output", "p",
	"pre", "section", "select", "small", "span", "strong", "sub", "summary",
	"sup", "table", "tbody", "td", "textarea", "tfoot", "th", "thead", "tr",
	"u", "ul",
}

var previewAttrs = []string{
	"class", "style", "title", "role", "tabindex", "hidden",
	"name", "type", "value", "placeholder", "for", "disabled", "checked",
	"selected", "readonly", "required", "multiple", "maxlength", "size",
	"alt", "width", "height", "colspan", "rowspan", "open",
	"aria-label", "aria-labelledby", "aria-describedby", "aria-hidden",
	"aria-expanded", "aria-selected", "aria-checked", "aria-pressed",
	"aria-disabled", "aria-controls", "aria-haspopup", "aria-current",
}

type HtmlSanitizer struct {
	policy *bluemonday.Policy
}

func NewHTMLSanitizer() HtmlSanitizer {
	return HtmlSanitizer{
		policy: previewPolicy(),
	}
}

// Sanitize cleans an HTML fragment for display.
func (h *HtmlSanitizer) Sanitize(fragment string) string {
	return h.policy.Sanitize(fragment)
}

func previewPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardAttributes()
	p.AllowStandardURLs()
	p.AllowDataAttributes()

	p.AllowElements(previewElements...)
	p.AllowAttrs(previewAttrs...).Globally()
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src").OnElements("img")
	p.AllowAttrs("action", "method").OnElements("form")
	return p
}
