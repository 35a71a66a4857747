package locator_test

import (
	"strings"
	"testing"

	"github.com/antchfx/htmlquery"
	"github.com/rohmanhakim/nl-locator/internal/dom"
	"github.com/rohmanhakim/nl-locator/internal/locator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, markup string) *dom.Tree {
	t.Helper()
	tree, err := dom.Parse(markup)
	require.NoError(t, err)
	return tree
}

func find(t *testing.T, tree *dom.Tree, tag string, nth int) dom.Handle {
	t.Helper()
	found := tree.Descendants(tree.Root(), tag)
	require.Greater(t, len(found), nth, "not enough <%s> elements", tag)
	return found[nth]
}

// assertResolvesTo checks that expr selects exactly the node behind h.
func assertResolvesTo(t *testing.T, tree *dom.Tree, expr string, h dom.Handle) {
	t.Helper()
	nodes, err := htmlquery.QueryAll(tree.Document(), expr)
	require.NoError(t, err, "xpath %q does not compile", expr)
	require.Len(t, nodes, 1, "xpath %q should select exactly one node", expr)
	assert.Same(t, tree.SourceNode(h), nodes[0], "xpath %q selected the wrong node", expr)
}

func TestBestCSS_Priority(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		tag    string
		want   string
	}{
		{name: "id beats test id", markup: `<button id="go" data-testid="go-btn">Go</button>`, tag: "button", want: "#go"},
		{name: "test id", markup: `<button data-testid="go-btn" name="x">Go</button>`, tag: "button", want: "[data-testid='go-btn']"},
		{name: "data-test when no data-testid", markup: `<button data-test="t" data-qa="q">Go</button>`, tag: "button", want: "[data-test='t']"},
		{name: "data-qa", markup: `<button data-qa="q">Go</button>`, tag: "button", want: "[data-qa='q']"},
		{name: "name", markup: `<input name="email" aria-label="Email">`, tag: "input", want: "[name='email']"},
		{name: "aria label with quote", markup: `<a aria-label="Don't go" href="#">x</a>`, tag: "a", want: `[aria-label='Don\'t go']`},
		{name: "placeholder", markup: `<textarea placeholder="Say something"></textarea>`, tag: "textarea", want: "[placeholder='Say something']"},
		{name: "first class with tag", markup: `<button class="btn btn-primary">Go</button>`, tag: "button", want: "button.btn"},
		{name: "bare tag", markup: `<h2>Title</h2>`, tag: "h2", want: "h2"},
		{name: "empty id ignored", markup: `<button id="" class="cta">Go</button>`, tag: "button", want: "button.cta"},
		{name: "id needing escape", markup: `<input id="user.name">`, tag: "input", want: `#user\.name`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.markup)
			h := find(t, tree, tt.tag, 0)
			assert.Equal(t, tt.want, locator.BestCSS(tree, h))
		})
	}
}

func TestBestCSS_SelectorsCompileAndMatch(t *testing.T) {
	tree := parse(t, `
		<input id="user.name">
		<div id="1st"><button class="x:y">A</button></div>
		<a aria-label='say "hi"' href="#">B</a>`)

	for _, h := range []dom.Handle{find(t, tree, "input", 0), find(t, tree, "div", 0), find(t, tree, "button", 0), find(t, tree, "a", 0)} {
		css := locator.BestCSS(tree, h)
		n, err := locator.CountCSS(tree.Document(), css)
		require.NoError(t, err, "selector %q does not compile", css)
		assert.Equal(t, 1, n, "selector %q", css)
	}
}

func TestBuildXPath_NestedPlainButton(t *testing.T) {
	tree := parse(t, `<div><div><button>Go</button></div></div>`)
	button := find(t, tree, "button", 0)

	xp := locator.BuildXPath(tree, button)

	assert.Equal(t, "//button[contains(normalize-space(.), 'Go')]", xp)
	assertResolvesTo(t, tree, xp, button)
}

func TestBuildXPath_AbsoluteFallback(t *testing.T) {
	tree := parse(t, `<div><span></span><span></span></div>`)
	span := find(t, tree, "span", 1)

	xp := locator.BuildXPath(tree, span)

	assert.Equal(t, "/html[1]/body[1]/div[1]/span[2]", xp)
	assertResolvesTo(t, tree, xp, span)
}

func TestBuildXPath_AnchoredOnFormID(t *testing.T) {
	tree := parse(t, `
		<form id="login">
			<div><div class="row"><input name="user"></div></div>
			<div><input name="pass" type="password"></div>
		</form>`)
	input := find(t, tree, "input", 0)

	xp := locator.BuildXPath(tree, input)

	assert.Equal(t,
		"//*[@id='login']//div[1]/div[contains(concat(' ', normalize-space(@class), ' '), ' row ')]/input[@name='user']",
		xp)
	assertResolvesTo(t, tree, xp, input)
}

func TestBuildXPath_SectioningAnchorWithClass(t *testing.T) {
	tree := parse(t, `<main><section class="hero card"><a href="/start">Start now</a></section></main>`)
	link := find(t, tree, "a", 0)

	xp := locator.BuildXPath(tree, link)

	assert.Equal(t,
		"//section[contains(concat(' ', normalize-space(@class), ' '), ' hero ')]//a[contains(normalize-space(.), 'Start now')]",
		xp)
	assertResolvesTo(t, tree, xp, link)
}

func TestBuildXPath_AnchorPriority(t *testing.T) {
	tests := []struct {
		name       string
		markup     string
		wantPrefix string
	}{
		{name: "test id", markup: `<div data-testid="card"><button>Buy</button></div>`, wantPrefix: "//*[@data-testid='card']//"},
		{name: "aria label", markup: `<div aria-label="Shopping cart"><button>Buy</button></div>`, wantPrefix: "//*[contains(@aria-label, 'Shopping cart')]//"},
		{name: "role", markup: `<div role="dialog"><button>Buy</button></div>`, wantPrefix: "//*[@role='dialog']//"},
		{name: "id beats role", markup: `<div id="modal" role="dialog"><button>Buy</button></div>`, wantPrefix: "//*[@id='modal']//"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.markup)
			button := find(t, tree, "button", 0)
			xp := locator.BuildXPath(tree, button)
			assert.True(t, strings.HasPrefix(xp, tt.wantPrefix), "got %q", xp)
			assertResolvesTo(t, tree, xp, button)
		})
	}
}

func TestBuildXPath_ElementOwnStableAttributesStayInStep(t *testing.T) {
	tree := parse(t, `<form><input id="email" placeholder="you@example.com"></form>`)
	input := find(t, tree, "input", 0)

	xp := locator.BuildXPath(tree, input)

	assert.Equal(t, "//form//input[@id='email' and contains(@placeholder, 'you@example.com')]", xp)
	assertResolvesTo(t, tree, xp, input)
}

func TestBuildXPath_TruncatesContainsValues(t *testing.T) {
	long := "Search the entire product catalogue now-8f3a2c"
	tree := parse(t, `<nav><input aria-label="`+long+`"></nav>`)
	input := find(t, tree, "input", 0)

	xp := locator.BuildXPath(tree, input)

	assert.Contains(t, xp, "contains(@aria-label, '"+dom.Truncate(long, 28)+"')")
	assert.NotContains(t, xp, "8f3a2c")
	assertResolvesTo(t, tree, xp, input)
}

func TestBuildXPath_TextPredicateLimitedTo32Runes(t *testing.T) {
	text := "Continue to the secure payment page and finish"
	tree := parse(t, `<div><button>`+text+`</button></div>`)
	button := find(t, tree, "button", 0)

	xp := locator.BuildXPath(tree, button)

	assert.Equal(t, "//button[contains(normalize-space(.), '"+dom.Truncate(text, 32)+"')]", xp)
	assertResolvesTo(t, tree, xp, button)
}

func TestBuildXPath_TextKeepsNonBreakingSpace(t *testing.T) {
	tree := parse(t, `<div><div><button>Sign&nbsp;in</button></div></div>`)
	button := find(t, tree, "button", 0)

	xp := locator.BuildXPath(tree, button)

	// normalize-space only collapses XML whitespace, so the NBSP must stay
	assert.Equal(t, "//button[contains(normalize-space(.), 'Sign\u00a0in')]", xp)
}

func TestBestCSS_MultilineAttributeCompiles(t *testing.T) {
	tree := parse(t, "<input aria-label=\"Search\nproducts\"><input aria-label=\"Search\">")
	input := find(t, tree, "input", 0)

	css := locator.BestCSS(tree, input)
	assert.Equal(t, `[aria-label='Search\a products']`, css)

	n, err := locator.CountCSS(tree.Document(), css)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBuildXPath_QuotesInText(t *testing.T) {
	tree := parse(t, `<div><button>Don't "stop"</button><button>Other</button></div>`)
	button := find(t, tree, "button", 0)

	xp := locator.BuildXPath(tree, button)

	assert.Contains(t, xp, "concat(")
	assertResolvesTo(t, tree, xp, button)
}

func TestBuildXPath_NeverEmptyAndAlwaysSelectsTarget(t *testing.T) {
	tree := parse(t, `
		<header><nav><a href="/">Home</a><a href="/about">About</a></nav></header>
		<main>
			<h1>Welcome</h1>
			<form class="signup">
				<label>Email <input type="email" name="email"></label>
				<div><div><span></span><span><input type="checkbox"></span></div></div>
				<select><option>One</option></select>
				<button type="submit">Sign up</button>
			</form>
		</main>
		<div><div><div><div><div><div><div><div><div><div><div><p>deep</p></div></div></div></div></div></div></div></div></div></div></div>
		<footer><p>© 2024</p></footer>`)

	for _, h := range tree.Elements() {
		xp := locator.BuildXPath(tree, h)
		css := locator.BestCSS(tree, h)
		require.NotEmpty(t, xp)
		require.NotEmpty(t, css)

		nodes, err := htmlquery.QueryAll(tree.Document(), xp)
		require.NoError(t, err, "xpath %q does not compile", xp)
		assert.Contains(t, nodes, tree.SourceNode(h), "xpath %q misses <%s>", xp, tree.Tag(h))
	}
}

func TestCountXPath_InvalidExpression(t *testing.T) {
	tree := parse(t, `<p>x</p>`)
	_, err := locator.CountXPath(tree.Document(), "//p[")
	assert.Error(t, err)
}
