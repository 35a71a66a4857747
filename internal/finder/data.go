package finder

import "github.com/rohmanhakim/nl-locator/internal/scorer"

const maxTextLen = 160

// ElementScore is one ranked candidate together with its locators. The JSON
// field names are part of the HTTP API.
type ElementScore struct {
	NodeID      string `json:"nodeId"`
	Tag         string `json:"tag"`
	Text        string `json:"text"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	DataTestID  string `json:"dataTestId"`
	AriaLabel   string `json:"ariaLabel"`
	Placeholder string `json:"placeholder"`
	Role        string `json:"role"`
	CSS         string `json:"css"`
	XPath       string `json:"xpath"`
	Score       int    `json:"score"`

	Breakdown scorer.Breakdown `json:"-"`
}

// Result holds every candidate sorted by descending score. Best is nil
// when the document has no candidates.
type Result struct {
	Best       *ElementScore
	Candidates []ElementScore
}
