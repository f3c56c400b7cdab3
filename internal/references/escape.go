package references

import "strings"

const upperhex = "0123456789ABCDEF"

// urlSafe are the bytes left untouched besides ASCII letters, digits and "-._~".
// '%' is kept so already-escaped links are not escaped twice.
const urlSafe = ":/?=&%#"

// EscapeURL percent-encodes every byte of a portal link outside the safe set,
// so spaces and non-ASCII characters survive as valid URLs.
func EscapeURL(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldKeep(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func shouldKeep(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	}
	return strings.IndexByte(urlSafe, c) >= 0
}
