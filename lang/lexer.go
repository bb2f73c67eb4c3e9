package lang

import (
	"iter"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Tokenize returns the token sequence of source.
//
// The sequence is lazy and restartable: each range over it scans source from
// the beginning. Whitespace and line comments never appear in the sequence.
// Lexical errors are yielded in place as tokens of an error [Kind] and the
// scan continues after them.
func Tokenize(source string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		l := NewLexer(source)

		for {
			tok, ok := l.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Lexer scans tokens from source text on demand.
type Lexer struct {
	src string
	pos int
}

// NewLexer returns a lexer positioned at the start of source.
func NewLexer(source string) *Lexer {
	return &Lexer{src: source}
}

// operators lists the fixed tokens, longest first so that the first prefix
// match is also the longest.
var operators = []struct {
	text string
	kind Kind
}{
	{"**=", KindStarStarEqual},
	{"..=", KindDotDotEqual},
	{"...", KindEllipsis},
	{"**", KindStarStar},
	{"*=", KindStarEqual},
	{"+=", KindPlusEqual},
	{"-=", KindMinusEqual},
	{"/=", KindSlashEqual},
	{"%=", KindPercentEqual},
	{"==", KindEqualEqual},
	{"!=", KindBangEqual},
	{"<=", KindLessEqual},
	{">=", KindGreaterEqual},
	{"=>", KindArrow},
	{"..", KindDotDot},
	{"+", KindPlus},
	{"-", KindMinus},
	{"*", KindStar},
	{"/", KindSlash},
	{"%", KindPercent},
	{"=", KindEqual},
	{"<", KindLess},
	{">", KindGreater},
	{"(", KindLeftParen},
	{")", KindRightParen},
	{"{", KindLeftBrace},
	{"}", KindRightBrace},
	{"[", KindLeftBracket},
	{"]", KindRightBracket},
	{";", KindSemicolon},
	{",", KindComma},
	{":", KindColon},
	{".", KindDot},
	{"#", KindHash},
}

// Next returns the next token, or false once the input is exhausted.
func (l *Lexer) Next() (Token, bool) {
	l.skipWhitespaceAndComments()

	if l.eof() {
		return Token{}, false
	}

	start := l.pos
	c := l.src[l.pos]

	switch {
	case isDigit(c):
		return l.scanNumber(), true

	case isIdentifierStart(c):
		return l.scanIdentifier(), true

	case c == '"':
		return l.scanString(), true
	}

	for _, op := range operators {
		if strings.HasPrefix(l.src[l.pos:], op.text) {
			l.pos += len(op.text)

			return Token{Kind: op.kind, Span: Span{start, l.pos}}, true
		}
	}

	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size

	return Token{
		Kind: KindUnknownToken,
		Span: Span{start, l.pos},
		Text: l.src[start:l.pos],
	}, true
}

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.eof() {
		switch c := l.src[l.pos]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.pos++

		case strings.HasPrefix(l.src[l.pos:], "//"):
			if i := strings.IndexByte(l.src[l.pos:], '\n'); i >= 0 {
				l.pos += i + 1
			} else {
				l.pos = len(l.src)
			}

		default:
			return
		}
	}
}

func (l *Lexer) scanNumber() Token {
	start := l.pos

	if tok, ok := l.scanPrefixedInteger(); ok {
		return tok
	}

	l.skipWhile(isDigit)

	// A fraction needs at least one digit after the dot so that ranges such as
	// 1..2 still scan as number, dot-dot, number.
	if l.pos+1 < len(l.src) && l.src[l.pos] == '.' && isDigit(l.src[l.pos+1]) {
		l.pos++
		l.skipWhile(isDigit)
	}

	text := l.src[start:l.pos]

	// The scanned text is always a valid decimal literal.
	n, _ := strconv.ParseFloat(text, 64)

	return Token{Kind: KindNumber, Span: Span{start, l.pos}, Number: n, Text: text}
}

// scanPrefixedInteger scans 0x, 0o and 0b literals. A prefix that is not
// followed by at least one digit of its base is not a prefix.
func (l *Lexer) scanPrefixedInteger() (Token, bool) {
	if l.pos+2 >= len(l.src) || l.src[l.pos] != '0' {
		return Token{}, false
	}

	var (
		base  int
		digit func(byte) bool
	)

	switch l.src[l.pos+1] {
	case 'x', 'X':
		base, digit = 16, isHexDigit
	case 'o', 'O':
		base, digit = 8, isOctalDigit
	case 'b', 'B':
		base, digit = 2, isBinaryDigit
	default:
		return Token{}, false
	}

	if !digit(l.src[l.pos+2]) {
		return Token{}, false
	}

	start := l.pos
	l.pos += 2
	l.skipWhile(digit)

	// Arbitrary precision first, so that values beyond 2^53 round to the
	// nearest float64 exactly once.
	i, _ := new(big.Int).SetString(l.src[start+2:l.pos], base)
	n, _ := new(big.Float).SetInt(i).Float64()

	return Token{
		Kind:   KindNumber,
		Span:   Span{start, l.pos},
		Number: n,
		Text:   l.src[start:l.pos],
	}, true
}

func (l *Lexer) scanIdentifier() Token {
	start := l.pos

	l.pos++
	l.skipWhile(isIdentifierContinue)

	text := l.src[start:l.pos]
	if kind, ok := keywords[text]; ok {
		return Token{Kind: kind, Span: Span{start, l.pos}}
	}

	return Token{Kind: KindIdentifier, Span: Span{start, l.pos}, Text: text}
}

// scanString scans a double-quoted literal. A literal must close on the line
// it opens on.
func (l *Lexer) scanString() Token {
	start := l.pos
	end := -1

	i := start + 1
	for i < len(l.src) && end < 0 {
		switch l.src[i] {
		case '"':
			end = i
		case '\n':
			l.pos = i

			return Token{Kind: KindUnclosedString, Span: Span{start, i}}
		case '\\':
			if i+1 < len(l.src) && l.src[i+1] != '\n' {
				i++
			}
		}

		i++
	}

	if end < 0 {
		l.pos = len(l.src)

		return Token{Kind: KindUnclosedString, Span: Span{start, l.pos}}
	}

	l.pos = end + 1

	body, err := Unescape(l.src[start+1 : end])
	if err != nil {
		at := start + 1 + err.Offset

		return Token{
			Kind: KindInvalidEscapeSequence,
			Span: Span{at, at + len(err.Sequence)},
			Text: err.Sequence,
		}
	}

	return Token{Kind: KindString, Span: Span{start, l.pos}, Text: body}
}

func (l *Lexer) skipWhile(fn func(byte) bool) {
	for !l.eof() && fn(l.src[l.pos]) {
		l.pos++
	}
}

// Character classification

func isDigit(c byte) bool       { return '0' <= c && c <= '9' }
func isOctalDigit(c byte) bool  { return '0' <= c && c <= '7' }
func isBinaryDigit(c byte) bool { return c == '0' || c == '1' }

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isIdentifierStart(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isIdentifierContinue(c byte) bool {
	return isIdentifierStart(c) || isDigit(c)
}
