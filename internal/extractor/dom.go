package extractor

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/nl-locator/internal/dom"
)

/*
Responsibilities
- Select the pool of interactive and semantic elements from a document
- Keep document order and set semantics

Selection
  - Interactive tags (button, a, input, select, textarea, label)
  - A fixed set of ARIA widget roles
  - Anything described by aria-label, a test-id, placeholder or title
  - Headings

An empty pool is a valid outcome, not an error.
*/

// Extract returns the candidates of tree in document order.
func Extract(tree *dom.Tree) []Candidate {
	doc := goquery.NewDocumentFromNode(tree.Document())

	var handles []dom.Handle
	doc.Find(candidateSelectorGroup()).Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			if h, ok := tree.HandleOf(n); ok {
				handles = append(handles, h)
			}
		}
	})

	// Handles are allocated in document order; sorting and dropping
	// repeats gives document order with set semantics whatever order the
	// matcher reports.
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	candidates := make([]Candidate, 0, len(handles))
	for i, h := range handles {
		if i > 0 && handles[i-1] == h {
			continue
		}
		candidates = append(candidates, newCandidate(tree, h, len(candidates)))
	}
	return candidates
}

func newCandidate(tree *dom.Tree, h dom.Handle, index int) Candidate {
	return Candidate{
		Handle:      h,
		Index:       index,
		Tag:         tree.Tag(h),
		Role:        strings.ToLower(tree.Attr(h, "role")),
		Type:        strings.ToLower(tree.Attr(h, "type")),
		VisibleText: tree.VisibleText(h),
	}
}
