package dom

import "strings"

// tags whose text never renders
var invisibleTags = map[string]struct{}{
	"script":   {},
	"style":    {},
	"template": {},
}

// VisibleText joins the descendant text of h with single spaces, skipping
// script and style content, and collapses every whitespace run.
func (t *Tree) VisibleText(h Handle) string {
	if !t.valid(h) {
		return ""
	}
	var b strings.Builder
	var walk func(Handle)
	walk = func(cur Handle) {
		n := t.nodes[cur]
		switch n.kind {
		case KindText:
			b.WriteString(n.text)
			b.WriteByte(' ')
			return
		case KindElement:
			if _, skip := invisibleTags[n.tag]; skip {
				return
			}
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(h)
	return strings.Join(strings.Fields(b.String()), " ")
}

// StringValue mirrors normalize-space(.) in XPath 1.0: every descendant
// text node concatenated without separators, then normalized on XML
// whitespace only. Non-breaking spaces survive.
func (t *Tree) StringValue(h Handle) string {
	if !t.valid(h) {
		return ""
	}
	var b strings.Builder
	var walk func(Handle)
	walk = func(cur Handle) {
		n := t.nodes[cur]
		if n.kind == KindText {
			b.WriteString(n.text)
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(h)
	return strings.Join(strings.FieldsFunc(b.String(), isXMLSpace), " ")
}

// isXMLSpace matches the S production of XML 1.0.
func isXMLSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
