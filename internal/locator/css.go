package locator

import (
	"fmt"

	"github.com/rohmanhakim/nl-locator/internal/dom"
)

// TestID returns the first test-id style attribute present on h.
func TestID(tree *dom.Tree, h dom.Handle) (attr string, value string, ok bool) {
	for _, a := range TestIDAttrs {
		if v := tree.Attr(h, a); v != "" {
			return a, v, true
		}
	}
	return "", "", false
}

// BestCSS returns the most stable CSS selector available for h. The
// terminal fallback is the bare tag name, so the result is never empty
// for an element.
func BestCSS(tree *dom.Tree, h dom.Handle) string {
	if id := tree.Attr(h, "id"); id != "" {
		return "#" + EscapeCSSIdent(id)
	}
	if attr, v, ok := TestID(tree, h); ok {
		return attrSelector(attr, v)
	}
	for _, attr := range []string{"name", "aria-label", "placeholder"} {
		if v := tree.Attr(h, attr); v != "" {
			return attrSelector(attr, v)
		}
	}
	tag := tree.Tag(h)
	if tag == "" {
		tag = "*"
	}
	if classes := tree.Classes(h); len(classes) > 0 {
		return tag + "." + EscapeCSSIdent(classes[0])
	}
	return tag
}

func attrSelector(attr, value string) string {
	return fmt.Sprintf("[%s='%s']", attr, EscapeCSSString(value))
}
