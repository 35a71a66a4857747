package locator

import (
	"fmt"
	"strings"
)

var cssStringReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	"\n", `\a `,
	"\r", `\d `,
	"\f", `\c `,
	"\x00", "\uFFFD",
)

// EscapeCSSString escapes a value for use inside a single- or
// double-quoted CSS string. Line breaks cannot appear raw in a CSS string,
// so they become hex escapes.
func EscapeCSSString(s string) string {
	return cssStringReplacer.Replace(s)
}

// EscapeCSSIdent escapes s so it parses as a single CSS identifier,
// following the CSSOM serialize-an-identifier rules.
func EscapeCSSIdent(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == 0:
			b.WriteRune('�')
		case (r >= 0x1 && r <= 0x1f) || r == 0x7f:
			fmt.Fprintf(&b, `\%x `, r)
		case i == 0 && r >= '0' && r <= '9':
			fmt.Fprintf(&b, `\%x `, r)
		case i == 1 && r >= '0' && r <= '9' && runes[0] == '-':
			fmt.Fprintf(&b, `\%x `, r)
		case i == 0 && r == '-' && len(runes) == 1:
			b.WriteString(`\-`)
		case r >= 0x80 || r == '-' || r == '_' ||
			(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

// XPathLiteral renders s as an XPath 1.0 string literal. XPath has no
// escape sequences, so a value holding both quote kinds is split and
// rebuilt with concat().
func XPathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	args := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			args = append(args, `"'"`)
		}
		if p != "" {
			args = append(args, "'"+p+"'")
		}
	}
	if len(args) == 1 {
		return args[0]
	}
	return "concat(" + strings.Join(args, ", ") + ")"
}
