package mysqlcl

import "strings"

// Escape rewrites s so it can be embedded inside a quoted SQL string
// literal. A single pass prefixes quotes, double quotes and backslashes
// with a backslash and rewrites the whitespace controls to their two
// character literal form (\n, \r, \t, \f, \v). The prefix is skipped when
// the previous output byte is already a backslash.
//
// The skip rule cannot tell an escape backslash from a literal one, so a
// genuine double backslash followed by a quote leaves that quote without
// its own prefix. This is long-standing behavior and is kept as is; use
// parameter binding via Stmt for values that may contain backslashes.
//
// Escape does not track multi-byte character boundaries. It is safe for
// ASCII-compatible connection charsets such as utf8mb4, not for charsets
// like big5 where a backslash byte can appear inside a multi-byte
// character.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	var last byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '\'', '"', '\\', '\n', '\r', '\t', '\f', '\v':
			if last != '\\' {
				b.WriteByte('\\')
			}
			switch ch {
			case '\n':
				ch = 'n'
			case '\r':
				ch = 'r'
			case '\t':
				ch = 't'
			case '\f':
				ch = 'f'
			case '\v':
				ch = 'v'
			}
			b.WriteByte(ch)
			last = ch
		default:
			b.WriteByte(ch)
			last = ch
		}
	}
	return b.String()
}
