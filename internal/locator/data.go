package locator

import "github.com/rohmanhakim/nl-locator/pkg/set"

// TestIDAttrs lists the test-id style attributes in priority order.
var TestIDAttrs = []string{"data-testid", "data-test", "data-qa"}

// sectioning tags qualify as XPath anchors even without stable attributes
var sectioningTags = set.Of(
	"main", "header", "footer", "nav", "aside", "section", "article",
	"form", "dialog", "table", "thead", "tbody", "tfoot",
)

const (
	// how many ancestors are inspected while looking for an anchor
	maxAnchorDepth = 10
	// own-text budget for the target step predicate
	maxTextPredicateLen = 32
	// attribute values in contains() predicates are cut here so a dynamic
	// trailing suffix does not break the locator
	maxContainsLen = 28
)
