package lang

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func collect(source string) []Token {
	return slices.Collect(Tokenize(source))
}

func TestTokenize_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{"empty", "", nil},
		{"whitespace only", " \t\r\n ", nil},
		{"arithmetic", "1 + 2 * 3", []Kind{KindNumber, KindPlus, KindNumber, KindStar, KindNumber}},
		{"longest match", "** **= *= * =>", []Kind{KindStarStar, KindStarStarEqual, KindStarEqual, KindStar, KindArrow}},
		{"comparison", "< <= > >= == !=", []Kind{KindLess, KindLessEqual, KindGreater, KindGreaterEqual, KindEqualEqual, KindBangEqual}},
		{"dots", ". .. ..= ...", []Kind{KindDot, KindDotDot, KindDotDotEqual, KindEllipsis}},
		{"range of numbers", "1..2", []Kind{KindNumber, KindDotDot, KindNumber}},
		{"keywords", "not and or true false void if else func", []Kind{KindNot, KindAnd, KindOr, KindTrue, KindFalse, KindVoid, KindIf, KindElse, KindFunc}},
		{"identifiers", "foo _bar baz9 trueish", []Kind{KindIdentifier, KindIdentifier, KindIdentifier, KindIdentifier}},
		{"punctuation", "( ) { } [ ] ; , : #", []Kind{KindLeftParen, KindRightParen, KindLeftBrace, KindRightBrace, KindLeftBracket, KindRightBracket, KindSemicolon, KindComma, KindColon, KindHash}},
		{"line comment", "a // ignored + 1\nb", []Kind{KindIdentifier, KindIdentifier}},
		{"comment at end", "1 // done", []Kind{KindNumber}},
		{"bang alone", "!", []Kind{KindUnknownToken}},
		{"scan continues after error", "1 @ 2", []Kind{KindNumber, KindUnknownToken, KindNumber}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []Kind
			for tok := range Tokenize(tt.input) {
				got = append(got, tok.Kind)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenize_Numbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		span  Span
	}{
		{"0", 0, Span{0, 1}},
		{"42", 42, Span{0, 2}},
		{"3.14", 3.14, Span{0, 4}},
		{"0xff", 255, Span{0, 4}},
		{"0XFF", 255, Span{0, 4}},
		{"0o17", 15, Span{0, 4}},
		{"0b101", 5, Span{0, 5}},
		{"0x1_", 1, Span{0, 3}},
		{"0xffffffffffffffffffff", 1208925819614629174706175, Span{0, 22}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := collect(tt.input)
			if len(toks) == 0 || toks[0].Kind != KindNumber {
				t.Fatalf("expected number token first, got %#v", toks)
			}

			if toks[0].Number != tt.want {
				t.Errorf("expected %v, got %v", tt.want, toks[0].Number)
			}

			if toks[0].Span != tt.span {
				t.Errorf("expected span %v, got %v", tt.span, toks[0].Span)
			}
		})
	}
}

func TestTokenize_NumberPrefixWithoutDigits(t *testing.T) {
	got := collect("0x")

	want := []Token{
		{Kind: KindNumber, Span: Span{0, 1}, Number: 0, Text: "0"},
		{Kind: KindIdentifier, Span: Span{1, 2}, Text: "x"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenize_Strings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Token
	}{
		{
			name:  "plain",
			input: `"hello"`,
			want:  Token{Kind: KindString, Span: Span{0, 7}, Text: "hello"},
		},
		{
			name:  "empty",
			input: `""`,
			want:  Token{Kind: KindString, Span: Span{0, 2}},
		},
		{
			name:  "escapes",
			input: `"a\tb\n\"c\"\\"`,
			want:  Token{Kind: KindString, Span: Span{0, 15}, Text: "a\tb\n\"c\"\\"},
		},
		{
			name:  "single quote escape",
			input: `"it\'s"`,
			want:  Token{Kind: KindString, Span: Span{0, 7}, Text: "it's"},
		},
		{
			name:  "nul escape",
			input: `"\0"`,
			want:  Token{Kind: KindString, Span: Span{0, 4}, Text: "\x00"},
		},
		{
			name:  "unclosed at end of input",
			input: `"abc`,
			want:  Token{Kind: KindUnclosedString, Span: Span{0, 4}},
		},
		{
			name:  "unclosed at end of line",
			input: "\"ab\nc",
			want:  Token{Kind: KindUnclosedString, Span: Span{0, 3}},
		},
		{
			name:  "escaped quote does not close",
			input: `"ab\"`,
			want:  Token{Kind: KindUnclosedString, Span: Span{0, 5}},
		},
		{
			name:  "invalid escape",
			input: `"a\qb"`,
			want:  Token{Kind: KindInvalidEscapeSequence, Span: Span{2, 4}, Text: `\q`},
		},
		{
			name:  "invalid escape of multibyte rune",
			input: `"\é"`,
			want:  Token{Kind: KindInvalidEscapeSequence, Span: Span{1, 4}, Text: `\é`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := collect(tt.input)
			if len(toks) == 0 {
				t.Fatal("expected at least one token")
			}

			if diff := cmp.Diff(tt.want, toks[0]); diff != "" {
				t.Errorf("token mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenize_UnclosedStringResumesOnNextLine(t *testing.T) {
	got := collect("\"ab\nc")
	if len(got) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %#v", len(got), got)
	}

	if got[1].Kind != KindIdentifier || got[1].Text != "c" {
		t.Errorf("expected identifier c after unclosed string, got %#v", got[1])
	}
}

func TestTokenize_UnknownTokenCoversOneRune(t *testing.T) {
	got := collect("é$")

	want := []Token{
		{Kind: KindUnknownToken, Span: Span{0, 2}, Text: "é"},
		{Kind: KindUnknownToken, Span: Span{2, 3}, Text: "$"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenize_Restartable(t *testing.T) {
	seq := Tokenize(`1 + "two" * three`)

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second pass differs (-first +second):\n%s", diff)
	}
}

func TestTokenize_EarlyBreak(t *testing.T) {
	count := 0

	for range Tokenize("1 2 3 4 5") {
		count++
		if count == 2 {
			break
		}
	}

	if count != 2 {
		t.Errorf("expected to stop after 2 tokens, got %d", count)
	}
}

func TestLexer_Next(t *testing.T) {
	l := NewLexer("a b")

	for _, want := range []string{"a", "b"} {
		tok, ok := l.Next()
		if !ok {
			t.Fatalf("expected token %q, lexer exhausted", want)
		}

		if tok.Text != want {
			t.Errorf("expected %q, got %q", want, tok.Text)
		}
	}

	if tok, ok := l.Next(); ok {
		t.Errorf("expected exhausted lexer, got %#v", tok)
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindPlus, "+"},
		{KindStarStar, "**"},
		{KindRightParen, ")"},
		{KindNot, "not"},
		{KindNumber, "number"},
		{KindString, "string"},
		{KindUnknownToken, "unknown token"},
		{Kind(-1), "Kind(-1)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestKind_Predicates(t *testing.T) {
	for k := KindNot; k <= KindFunc; k++ {
		if !k.IsKeyword() {
			t.Errorf("%s: expected keyword", k)
		}

		if kw, ok := keywords[k.String()]; !ok || kw != k {
			t.Errorf("%s: missing from keyword table", k)
		}
	}

	for _, k := range []Kind{KindUnknownToken, KindUnclosedString, KindInvalidEscapeSequence} {
		if !k.IsError() {
			t.Errorf("%s: expected error kind", k)
		}
	}

	if KindIdentifier.IsKeyword() || KindIdentifier.IsError() {
		t.Error("identifier is neither keyword nor error")
	}
}
