package lang

import (
	"strings"
	"unicode/utf8"
)

// escapes maps the character following a backslash to the byte it denotes.
var escapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
}

// Escape returns s with every byte that has an escape sequence replaced by
// that sequence. Single quotes are left alone since they never terminate a
// string literal.
//
// Unescape(Escape(s)) == s for every s.
func Escape(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for i := range len(s) {
		switch c := s[i]; c {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case 0:
			sb.WriteString(`\0`)
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}

// Unescape processes the backslash escapes in the body of a string literal
// (the text between its quotes).
//
// On failure it returns the byte offset of the offending backslash within s
// and the length of the invalid sequence.
func Unescape(s string) (string, *EscapeError) {
	i := strings.IndexByte(s, '\\')
	if i < 0 {
		return s, nil
	}

	var sb strings.Builder

	sb.Grow(len(s))

	last := 0

	for i < len(s) {
		if s[i] != '\\' {
			i++

			continue
		}

		sb.WriteString(s[last:i])

		if i+1 >= len(s) {
			return "", &EscapeError{Offset: i, Sequence: `\`}
		}

		c, ok := escapes[s[i+1]]
		if !ok {
			_, size := utf8.DecodeRuneInString(s[i+1:])

			return "", &EscapeError{Offset: i, Sequence: s[i : i+1+size]}
		}

		sb.WriteByte(c)

		i += 2
		last = i
	}

	sb.WriteString(s[last:])

	return sb.String(), nil
}

// EscapeError describes an unsupported escape sequence.
type EscapeError struct {
	Offset   int
	Sequence string
}

func (e *EscapeError) Error() string {
	return "unknown escape sequence '" + e.Sequence + "'"
}
