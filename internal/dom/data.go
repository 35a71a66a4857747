package dom

import "golang.org/x/net/html"

// Handle addresses a node inside a Tree arena. Handles are allocated in
// document (pre-)order, so comparing two handles compares document position.
type Handle int

// NoHandle is returned where a relation does not exist (e.g. the parent of the root).
const NoHandle Handle = -1

type Kind int

const (
	KindDocument Kind = iota
	KindElement
	KindText
)

type Attribute struct {
	Key string
	Val string
}

type node struct {
	kind     Kind
	tag      string
	attrs    []Attribute
	text     string
	parent   Handle
	children []Handle
	source   *html.Node
}

/*
Tree is an arena-owned view of a parsed HTML document.

  - Every node is stored once in a flat slice and referenced by Handle.
  - Parent and child relations are handles, never pointers, so the
    structure has no reference cycles.
  - Only document, element and text nodes are kept. Comments and doctypes
    are dropped since nothing downstream reads them.
  - A Tree is read-only once Parse returns and is scoped to one request.
*/
type Tree struct {
	nodes    []node
	byID     map[string]Handle
	bySource map[*html.Node]Handle
	root     *html.Node
}
