package locator

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// CountXPath evaluates expr against a parsed document and returns how many
// nodes it selects. It is a diagnostic: synthesis never depends on it.
func CountXPath(doc *html.Node, expr string) (int, error) {
	nodes, err := htmlquery.QueryAll(doc, expr)
	if err != nil {
		return 0, err
	}
	return len(nodes), nil
}

// CountCSS compiles selector and counts its matches in doc.
func CountCSS(doc *html.Node, selector string) (int, error) {
	compiled, err := cascadia.Compile(selector)
	if err != nil {
		return 0, err
	}
	return goquery.NewDocumentFromNode(doc).FindMatcher(compiled).Length(), nil
}
