package highlight

import (
	"strings"

	"github.com/rohmanhakim/nl-locator/internal/dom"
	"github.com/rohmanhakim/nl-locator/internal/extractor"
	"github.com/rohmanhakim/nl-locator/internal/finder"
	"github.com/rohmanhakim/nl-locator/internal/sanitizer"
	"golang.org/x/net/html"
)

/*
Responsibilities
- Tag every candidate of a static document with its node identifier
- Outline the chosen candidate
- Return a standalone, sanitized preview page

Candidate extraction is deterministic, so re-running it here numbers the
elements exactly as the ranking did.
*/

const (
	NodeIDAttr     = "data-nid"
	highlightStyle = "; outline: 3px solid #6c8cff; background: rgba(108,140,255,.15);"
	pageHead       = "<!doctype html><html><head><meta charset='utf-8'></head><body>"
	pageTail       = "</body></html>"
)

type Highlighter struct {
	sanitizer sanitizer.HtmlSanitizer
}

func NewHighlighter(htmlSanitizer sanitizer.HtmlSanitizer) Highlighter {
	return Highlighter{
		sanitizer: htmlSanitizer,
	}
}

// Preview renders markup with the candidate nodeID outlined. An empty
// nodeID only tags the candidates.
func (h *Highlighter) Preview(markup string, nodeID string) string {
	tree, err := dom.Parse(markup)
	if err != nil {
		return h.wrap(markup)
	}

	bodies := tree.Descendants(tree.Root(), "body")
	if len(bodies) == 0 {
		return h.wrap(markup)
	}

	for _, c := range extractor.Extract(tree) {
		n := tree.SourceNode(c.Handle)
		id := finder.NodeID(c.Index)
		setAttr(n, NodeIDAttr, id)
		if id == nodeID {
			setAttr(n, "style", tree.Attr(c.Handle, "style")+highlightStyle)
		}
	}

	var b strings.Builder
	body := tree.SourceNode(bodies[0])
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&b, child); err != nil {
			return h.wrap(markup)
		}
	}
	return h.wrap(b.String())
}

func (h *Highlighter) wrap(fragment string) string {
	return pageHead + h.sanitizer.Sanitize(fragment) + pageTail
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
