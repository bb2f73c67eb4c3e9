package lang

import (
	"fmt"
	"strconv"
)

// Kind identifies the lexical category of a [Token].
type Kind int

const (
	KindInvalid Kind = iota

	// Literals.
	KindNumber
	KindIdentifier
	KindString

	// Arithmetic, comparison and assignment operators.
	KindPlus
	KindMinus
	KindStar
	KindStarStar
	KindSlash
	KindPercent
	KindEqual
	KindPlusEqual
	KindMinusEqual
	KindStarEqual
	KindSlashEqual
	KindPercentEqual
	KindStarStarEqual
	KindEqualEqual
	KindBangEqual
	KindLess
	KindLessEqual
	KindGreater
	KindGreaterEqual

	// Keywords.
	KindNot
	KindAnd
	KindOr
	KindIf
	KindElse
	KindWhile
	KindFor
	KindIn
	KindReturn
	KindBreak
	KindContinue
	KindImport
	KindMatch
	KindTrue
	KindFalse
	KindVoid
	KindFunc

	// Punctuation.
	KindLeftParen
	KindRightParen
	KindLeftBrace
	KindRightBrace
	KindLeftBracket
	KindRightBracket
	KindSemicolon
	KindComma
	KindColon
	KindArrow
	KindDot
	KindDotDot
	KindDotDotEqual
	KindEllipsis
	KindHash

	// Lexical errors.
	KindUnknownToken
	KindUnclosedString
	KindInvalidEscapeSequence
)

var kindText = [...]string{
	KindInvalid:               "invalid",
	KindNumber:                "number",
	KindIdentifier:            "identifier",
	KindString:                "string",
	KindPlus:                  "+",
	KindMinus:                 "-",
	KindStar:                  "*",
	KindStarStar:              "**",
	KindSlash:                 "/",
	KindPercent:               "%",
	KindEqual:                 "=",
	KindPlusEqual:             "+=",
	KindMinusEqual:            "-=",
	KindStarEqual:             "*=",
	KindSlashEqual:            "/=",
	KindPercentEqual:          "%=",
	KindStarStarEqual:         "**=",
	KindEqualEqual:            "==",
	KindBangEqual:             "!=",
	KindLess:                  "<",
	KindLessEqual:             "<=",
	KindGreater:               ">",
	KindGreaterEqual:          ">=",
	KindNot:                   "not",
	KindAnd:                   "and",
	KindOr:                    "or",
	KindIf:                    "if",
	KindElse:                  "else",
	KindWhile:                 "while",
	KindFor:                   "for",
	KindIn:                    "in",
	KindReturn:                "return",
	KindBreak:                 "break",
	KindContinue:              "continue",
	KindImport:                "import",
	KindMatch:                 "match",
	KindTrue:                  "true",
	KindFalse:                 "false",
	KindVoid:                  "void",
	KindFunc:                  "func",
	KindLeftParen:             "(",
	KindRightParen:            ")",
	KindLeftBrace:             "{",
	KindRightBrace:            "}",
	KindLeftBracket:           "[",
	KindRightBracket:          "]",
	KindSemicolon:             ";",
	KindComma:                 ",",
	KindColon:                 ":",
	KindArrow:                 "=>",
	KindDot:                   ".",
	KindDotDot:                "..",
	KindDotDotEqual:           "..=",
	KindEllipsis:              "...",
	KindHash:                  "#",
	KindUnknownToken:          "unknown token",
	KindUnclosedString:        "unclosed string",
	KindInvalidEscapeSequence: "invalid escape sequence",
}

// String returns the source representation of fixed tokens and a category
// name for everything else.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindText) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}

	return kindText[k]
}

// IsError reports whether k is one of the lexical error kinds.
func (k Kind) IsError() bool {
	return k == KindUnknownToken ||
		k == KindUnclosedString ||
		k == KindInvalidEscapeSequence
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k >= KindNot && k <= KindFunc }

// keywords maps reserved identifier text to its token kind.
var keywords = func() map[string]Kind {
	m := make(map[string]Kind, KindFunc-KindNot+1)
	for k := KindNot; k <= KindFunc; k++ {
		m[k.String()] = k
	}

	return m
}()

// Token is a single lexeme together with its location.
type Token struct {
	Kind Kind
	Span Span

	// Number holds the value of a KindNumber token.
	Number float64

	// Text holds the name of a KindIdentifier token, the escape-processed
	// content of a KindString token, or the offending escape sequence of a
	// KindInvalidEscapeSequence token.
	Text string
}

func (t Token) String() string {
	switch t.Kind {
	case KindNumber:
		return formatNumber(t.Number)
	case KindIdentifier:
		return t.Text
	case KindString:
		return strconv.Quote(t.Text)
	default:
		return t.Kind.String()
	}
}

// GoString is used by %#v and keeps debug dumps on one line.
func (t Token) GoString() string {
	return fmt.Sprintf("%s %q %s", t.Kind, t.String(), t.Span)
}
