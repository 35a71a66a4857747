package extractor

import "strings"

// CandidateSelectors is the fixed filter for the candidate pool, grouped by
// why an element qualifies. Groups are joined into one selector group, so
// an element matching several clauses is still selected once.
//
//nolint:gochecknoglobals // static lookup table
var CandidateSelectors = map[string][]string{
	"interactive": {
		"button", "a", "input", "select", "textarea", "label",
	},
	"aria-role": {
		"[role=button]", "[role=link]", "[role=switch]",
		"[role=tab]", "[role=textbox]", "[role=combobox]",
	},
	"described": {
		"[aria-label]", "[data-testid]", "[data-test]", "[data-qa]",
		"[placeholder]", "[title]",
	},
	"heading": {
		"h1", "h2", "h3", "h4", "h5", "h6",
	},
}

// candidateSelectorGroup flattens CandidateSelectors in a fixed order.
func candidateSelectorGroup() string {
	order := []string{"interactive", "aria-role", "described", "heading"}

	var all []string
	seen := make(map[string]bool)
	for _, group := range order {
		for _, selector := range CandidateSelectors[group] {
			if !seen[selector] {
				seen[selector] = true
				all = append(all, selector)
			}
		}
	}
	return strings.Join(all, ",")
}
