package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

/*
Responsibilities
- Parse markup leniently into an arena of nodes
- Answer structural queries by handle (parent, children, attributes)
- Derive text views used by scoring and locator synthesis

Scripting is disabled while parsing so that <noscript> content is parsed
as markup instead of raw text, which keeps visible text close to what a
reader of the static document sees.
*/

// Parse builds a Tree from an HTML string. Broken markup is repaired by the
// HTML5 parser, so an error is only returned when the input cannot be read.
func Parse(document string) (*Tree, error) {
	root, err := html.ParseWithOptions(
		strings.NewReader(document),
		html.ParseOptionEnableScripting(false),
	)
	if err != nil {
		return nil, &ParseError{
			Message:   fmt.Sprintf("failed to parse HTML: %v", err),
			Retryable: false,
			Cause:     ErrCauseReadFailure,
		}
	}
	return FromNode(root), nil
}

// FromNode builds a Tree over an already parsed document. The html.Node
// tree is kept as the source of every handle and must not be mutated
// while the Tree is in use.
func FromNode(root *html.Node) *Tree {
	t := &Tree{
		byID:     make(map[string]Handle),
		bySource: make(map[*html.Node]Handle),
		root:     root,
	}
	t.add(root, NoHandle)
	return t
}

func (t *Tree) add(n *html.Node, parent Handle) {
	var kind Kind
	switch n.Type {
	case html.DocumentNode:
		kind = KindDocument
	case html.ElementNode:
		kind = KindElement
	case html.TextNode:
		kind = KindText
	default:
		return
	}

	h := Handle(len(t.nodes))
	nd := node{
		kind:   kind,
		parent: parent,
		source: n,
	}
	switch kind {
	case KindElement:
		nd.tag = strings.ToLower(n.Data)
		nd.attrs = make([]Attribute, 0, len(n.Attr))
		for _, a := range n.Attr {
			if a.Namespace != "" {
				continue
			}
			nd.attrs = append(nd.attrs, Attribute{Key: strings.ToLower(a.Key), Val: a.Val})
		}
	case KindText:
		nd.text = n.Data
	}
	t.nodes = append(t.nodes, nd)
	t.bySource[n] = h

	if parent != NoHandle {
		t.nodes[parent].children = append(t.nodes[parent].children, h)
	}

	if kind == KindElement {
		if id := t.Attr(h, "id"); id != "" {
			if _, seen := t.byID[id]; !seen {
				t.byID[id] = h
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		t.add(c, h)
	}
}

// Root returns the handle of the document node.
func (t *Tree) Root() Handle {
	if len(t.nodes) == 0 {
		return NoHandle
	}
	return 0
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) valid(h Handle) bool {
	return h >= 0 && int(h) < len(t.nodes)
}

func (t *Tree) Kind(h Handle) Kind {
	return t.nodes[h].kind
}

func (t *Tree) IsElement(h Handle) bool {
	return t.valid(h) && t.nodes[h].kind == KindElement
}

// Tag returns the lowercase tag name, or "" for non-element nodes.
func (t *Tree) Tag(h Handle) string {
	if !t.valid(h) {
		return ""
	}
	return t.nodes[h].tag
}

// Attr returns the first value of the attribute key, or "" when absent.
func (t *Tree) Attr(h Handle, key string) string {
	v, _ := t.LookupAttr(h, key)
	return v
}

func (t *Tree) LookupAttr(h Handle, key string) (string, bool) {
	if !t.valid(h) {
		return "", false
	}
	for _, a := range t.nodes[h].attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the attribute is present with a non-empty value.
func (t *Tree) HasAttr(h Handle, key string) bool {
	return t.Attr(h, key) != ""
}

// Classes returns the whitespace separated class tokens in source order.
func (t *Tree) Classes(h Handle) []string {
	return strings.Fields(t.Attr(h, "class"))
}

func (t *Tree) Parent(h Handle) Handle {
	if !t.valid(h) {
		return NoHandle
	}
	return t.nodes[h].parent
}

// ElementParent returns the parent only when it is an element.
func (t *Tree) ElementParent(h Handle) Handle {
	p := t.Parent(h)
	if !t.IsElement(p) {
		return NoHandle
	}
	return p
}

// ElementChildren returns the element children of h in document order.
func (t *Tree) ElementChildren(h Handle) []Handle {
	if !t.valid(h) {
		return nil
	}
	var out []Handle
	for _, c := range t.nodes[h].children {
		if t.nodes[c].kind == KindElement {
			out = append(out, c)
		}
	}
	return out
}

// Elements returns every element handle in document order.
func (t *Tree) Elements() []Handle {
	out := make([]Handle, 0, len(t.nodes))
	for i, n := range t.nodes {
		if n.kind == KindElement {
			out = append(out, Handle(i))
		}
	}
	return out
}

// Descendants returns the element descendants of h (excluding h) in
// document order, filtered to the given tags when any are provided.
func (t *Tree) Descendants(h Handle, tags ...string) []Handle {
	if !t.valid(h) {
		return nil
	}
	var out []Handle
	var walk func(Handle)
	walk = func(cur Handle) {
		for _, c := range t.nodes[cur].children {
			if t.nodes[c].kind != KindElement {
				continue
			}
			if len(tags) == 0 || containsTag(tags, t.nodes[c].tag) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(h)
	return out
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SiblingIndex returns the 1-based position of h among its parent's
// element children that share its tag.
func (t *Tree) SiblingIndex(h Handle) int {
	p := t.Parent(h)
	if p == NoHandle {
		return 1
	}
	idx := 0
	for _, c := range t.ElementChildren(p) {
		if t.nodes[c].tag == t.nodes[h].tag {
			idx++
		}
		if c == h {
			return idx
		}
	}
	return 1
}

// FindByID returns the first element in document order carrying the id.
func (t *Tree) FindByID(id string) (Handle, bool) {
	h, ok := t.byID[id]
	return h, ok
}

// SourceNode returns the parsed html.Node behind a handle.
func (t *Tree) SourceNode(h Handle) *html.Node {
	if !t.valid(h) {
		return nil
	}
	return t.nodes[h].source
}

// HandleOf maps a parsed html.Node back to its handle.
func (t *Tree) HandleOf(n *html.Node) (Handle, bool) {
	h, ok := t.bySource[n]
	return h, ok
}

// Document returns the parsed document node the tree was built from.
func (t *Tree) Document() *html.Node {
	return t.root
}
