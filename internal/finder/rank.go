package finder

import (
	"fmt"
	"sort"

	"github.com/rohmanhakim/nl-locator/internal/dom"
	"github.com/rohmanhakim/nl-locator/internal/extractor"
	"github.com/rohmanhakim/nl-locator/internal/label"
	"github.com/rohmanhakim/nl-locator/internal/locator"
	"github.com/rohmanhakim/nl-locator/internal/scorer"
)

/*
Responsibilities
- Parse the document and build the label maps once per request
- Score every extracted candidate and synthesize its locators
- Order candidates by descending score, ties kept in document order

Rank is pure: no I/O, no shared state, safe to call concurrently.
*/

// Rank scores every candidate in markup against query. An empty or
// unparseable document yields an empty result.
func Rank(markup string, query string) Result {
	tree, err := dom.Parse(markup)
	if err != nil {
		return Result{Candidates: []ElementScore{}}
	}
	return RankTree(tree, query)
}

// RankTree is Rank over an already parsed document.
func RankTree(tree *dom.Tree, query string) Result {
	ctx := scorer.NewContext(tree, label.Build(tree), query)

	candidates := extractor.Extract(tree)
	scored := make([]ElementScore, 0, len(candidates))
	for _, c := range candidates {
		breakdown := scorer.Score(ctx, c)
		scored = append(scored, newElementScore(tree, c, breakdown))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	result := Result{Candidates: scored}
	if len(scored) > 0 {
		best := scored[0]
		result.Best = &best
	}
	return result
}

// NodeID is the request-scoped identifier of the candidate at index.
func NodeID(index int) string {
	return fmt.Sprintf("n%d", index)
}

func newElementScore(tree *dom.Tree, c extractor.Candidate, b scorer.Breakdown) ElementScore {
	h := c.Handle
	_, testID, _ := locator.TestID(tree, h)
	return ElementScore{
		NodeID:      NodeID(c.Index),
		Tag:         c.Tag,
		Text:        dom.Truncate(c.VisibleText, maxTextLen),
		ID:          tree.Attr(h, "id"),
		Name:        tree.Attr(h, "name"),
		DataTestID:  testID,
		AriaLabel:   tree.Attr(h, "aria-label"),
		Placeholder: tree.Attr(h, "placeholder"),
		Role:        tree.Attr(h, "role"),
		CSS:         locator.BestCSS(tree, h),
		XPath:       locator.BuildXPath(tree, h),
		Score:       b.Total,
		Breakdown:   b,
	}
}

// Top returns at most n candidates from the head of the ranking.
func (r Result) Top(n int) []ElementScore {
	if n < 0 || n >= len(r.Candidates) {
		return r.Candidates
	}
	return r.Candidates[:n]
}
