package sanitizer_test

import (
	"testing"

	"github.com/rohmanhakim/nl-locator/internal/sanitizer"
	"github.com/stretchr/testify/assert"
)

func TestSanitize_StripsScriptsAndHandlers(t *testing.T) {
	s := sanitizer.NewHTMLSanitizer()

	out := s.Sanitize(`<div onclick="steal()">hi<script>alert(1)</script></div><a href="javascript:alert(1)">x</a>`)

	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "hi")
}

func TestSanitize_KeepsFormMarkup(t *testing.T) {
	s := sanitizer.NewHTMLSanitizer()

	out := s.Sanitize(`<form><label for="e">Email</label><input id="e" name="email" type="email" placeholder="you@x"><button type="submit">Go</button></form>`)

	assert.Contains(t, out, "<form>")
	assert.Contains(t, out, `<label for="e">`)
	assert.Contains(t, out, `name="email"`)
	assert.Contains(t, out, `placeholder="you@x"`)
	assert.Contains(t, out, `<button type="submit">`)
}

func TestSanitize_KeepsHighlightAttributes(t *testing.T) {
	s := sanitizer.NewHTMLSanitizer()

	out := s.Sanitize(`<button data-nid="n3" data-testid="save" aria-label="Save" style="outline: 3px solid #6c8cff;">Save</button>`)

	assert.Contains(t, out, `data-nid="n3"`)
	assert.Contains(t, out, `data-testid="save"`)
	assert.Contains(t, out, `aria-label="Save"`)
	assert.Contains(t, out, "outline: 3px solid #6c8cff")
}
