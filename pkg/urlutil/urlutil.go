package urlutil

import (
	"net/url"
	"strings"
)

// NormalizeForReuse maps URL spellings that address the same loaded page to a
// single comparison key.
//
// The normalization follows these rules:
//   - Fragments are removed
//   - Trailing slashes are removed from the path, including a bare "/"
//   - The query string is kept
//   - The whole result is lowercased
//
// Properties:
//   - Pure and deterministic
//   - Idempotent: NormalizeForReuse(NormalizeForReuse(u)) == NormalizeForReuse(u)
//   - Empty input yields an empty key
func NormalizeForReuse(raw string) string {
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return lowerASCII(strings.TrimRight(stripFragment(raw), "/"))
	}

	var b strings.Builder
	b.WriteString(parsed.Scheme)
	b.WriteString("://")
	b.WriteString(parsed.Host)
	b.WriteString(strings.TrimRight(parsed.EscapedPath(), "/"))
	if parsed.RawQuery != "" {
		b.WriteByte('?')
		b.WriteString(parsed.RawQuery)
	}
	return strings.ToLower(b.String())
}

// IsHTTP reports whether raw is an absolute http or https URL with a host.
func IsHTTP(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	scheme := lowerASCII(parsed.Scheme)
	return (scheme == "http" || scheme == "https") && parsed.Host != ""
}

func stripFragment(raw string) string {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		return raw[:i]
	}
	return raw
}

// lowerASCII converts ASCII characters to lowercase without allocating
// when the input is already lowercase.
func lowerASCII(s string) string {
	var needsLower bool
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			needsLower = true
			break
		}
	}
	if !needsLower {
		return s
	}
	b := make([]byte, len(s))
	copy(b, s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
