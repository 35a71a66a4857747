package extractor

import "github.com/rohmanhakim/nl-locator/internal/dom"

// Candidate is an element considered as a potential match for a query,
// with the fields every scoring pass needs precomputed. Candidates live
// for one request only.
type Candidate struct {
	Handle dom.Handle
	// Index is the position in the extracted sequence.
	Index       int
	Tag         string
	Role        string
	Type        string
	VisibleText string
}
