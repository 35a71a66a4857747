package scorer

import (
	"regexp"
	"strings"
)

var fieldVerbs = regexp.MustCompile(`\b(type|enter|fill|set|input|write|provide|key in|paste)\b`)

// DetectIntent scans the query for data-entry verbs.
func DetectIntent(query string) Intent {
	return Intent{
		WantsField: fieldVerbs.MatchString(strings.ToLower(query)),
	}
}
