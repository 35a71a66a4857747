package locator_test

import (
	"strings"
	"testing"

	"github.com/rohmanhakim/nl-locator/internal/locator"
	"github.com/stretchr/testify/assert"
)

func TestEscapeCSSString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "email", want: "email"},
		{name: "single quote", input: "it's", want: `it\'s`},
		{name: "double quote", input: `say "hi"`, want: `say \"hi\"`},
		{name: "backslash escaped before quotes", input: `a\'b`, want: `a\\\'b`},
		{name: "empty", input: "", want: ""},
		{name: "newline", input: "Search\nproducts", want: `Search\a products`},
		{name: "carriage return", input: "a\r\nb", want: `a\d \a b`},
		{name: "form feed", input: "a\fb", want: `a\c b`},
		{name: "nul", input: "a\x00b", want: "a\uFFFDb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, locator.EscapeCSSString(tt.input))
		})
	}
}

func TestEscapeCSSIdent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "login-form_1", want: "login-form_1"},
		{name: "dot", input: "user.name", want: `user\.name`},
		{name: "colon", input: "a:b", want: `a\:b`},
		{name: "leading digit", input: "1st", want: `\31 st`},
		{name: "dash digit", input: "-2x", want: `-\32 x`},
		{name: "lone dash", input: "-", want: `\-`},
		{name: "quote", input: "o'k", want: `o\'k`},
		{name: "non ascii kept", input: "café", want: "café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, locator.EscapeCSSIdent(tt.input))
		})
	}
}

func TestXPathLiteral(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Submit", want: "'Submit'"},
		{name: "apostrophe uses double quotes", input: "Don't", want: `"Don't"`},
		{name: "double quotes use single quotes", input: `say "hi"`, want: `'say "hi"'`},
		{name: "both quote kinds", input: `it's "x"`, want: `concat('it', "'", 's "x"')`},
		{name: "leading apostrophe with quote", input: `'"`, want: `concat("'", '"')`},
		{name: "backslash is literal", input: `a\b`, want: `'a\b'`},
		{name: "empty", input: "", want: "''"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, locator.XPathLiteral(tt.input))
		})
	}
}

func TestXPathLiteral_NeverEmitsBackslashQuote(t *testing.T) {
	got := locator.XPathLiteral(`he said "it's" twice, it's`)
	assert.False(t, strings.Contains(got, `\'`))
	assert.True(t, strings.HasPrefix(got, "concat("))
}
