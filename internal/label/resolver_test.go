package label_test

import (
	"testing"

	"github.com/rohmanhakim/nl-locator/internal/dom"
	"github.com/rohmanhakim/nl-locator/internal/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, markup string) *dom.Tree {
	t.Helper()
	tree, err := dom.Parse(markup)
	require.NoError(t, err)
	return tree
}

func first(t *testing.T, tree *dom.Tree, tag string) dom.Handle {
	t.Helper()
	found := tree.Descendants(tree.Root(), tag)
	require.NotEmpty(t, found, "no <%s> in document", tag)
	return found[0]
}

func TestTextFor_ExplicitFor(t *testing.T) {
	tree := parse(t, `<label for="u">Username</label><input id="u">`)
	maps := label.Build(tree)

	assert.Equal(t, "Username", label.TextFor(tree, maps, first(t, tree, "input")))
}

func TestTextFor_Wrapped(t *testing.T) {
	tree := parse(t, `<label>Email<input name="e"></label>`)
	maps := label.Build(tree)

	assert.Equal(t, "Email", label.TextFor(tree, maps, first(t, tree, "input")))
}

func TestTextFor_AriaLabelledBy(t *testing.T) {
	tree := parse(t, `
		<span id="a">Billing</span>
		<span id="b">  postal
			code</span>
		<input aria-labelledby="a missing b">`)
	maps := label.Build(tree)

	assert.Equal(t, "Billing postal code", label.TextFor(tree, maps, first(t, tree, "input")))
}

func TestTextFor_ExplicitBeatsWrapped(t *testing.T) {
	tree := parse(t, `
		<label for="pw">Password</label>
		<label>Wrapper text <input id="pw" type="password"></label>`)
	maps := label.Build(tree)

	assert.Equal(t, "Password", label.TextFor(tree, maps, first(t, tree, "input")))
}

func TestTextFor_NoLabel(t *testing.T) {
	tree := parse(t, `<input name="q"><input aria-labelledby="nowhere">`)
	maps := label.Build(tree)

	for _, h := range tree.Descendants(tree.Root(), "input") {
		assert.Equal(t, "", label.TextFor(tree, maps, h))
	}
}

func TestTextFor_WrapKeyCollision(t *testing.T) {
	// Both controls fingerprint to select:::; the later label wins for both.
	tree := parse(t, `
		<label>Country <select></select></label>
		<label>Region <select></select></label>`)
	maps := label.Build(tree)

	selects := tree.Descendants(tree.Root(), "select")
	require.Len(t, selects, 2)
	assert.Equal(t, "Region", label.TextFor(tree, maps, selects[0]))
	assert.Equal(t, "Region", label.TextFor(tree, maps, selects[1]))
}

func TestWrapKey(t *testing.T) {
	tree := parse(t, `<input id="e" name="email" class="form-control input-lg extra">`)
	assert.Equal(t, "input:e:email:form-control|input-lg", label.WrapKey(tree, first(t, tree, "input")))
}

func TestBuild_NestedFieldsAllMapped(t *testing.T) {
	tree := parse(t, `<label>Range <input name="from"> to <input name="to"></label>`)
	maps := label.Build(tree)

	assert.Len(t, maps.ByWrap, 2)
	for _, text := range maps.ByWrap {
		assert.Equal(t, "Range to", text)
	}
}
