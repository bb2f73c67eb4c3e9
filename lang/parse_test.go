package lang

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseString_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"product binds tighter than sum", "2 + 3 * 4", "(+ 2 (* 3 4))"},
		{"grouping", "(2 + 3) * 4", "(* (+ 2 3) 4)"},
		{"sum is left associative", "1 - 2 - 3", "(- (- 1 2) 3)"},
		{"power is left associative", "2 ** 3 ** 2", "(** (** 2 3) 2)"},
		{"power binds tighter than product", "2 * 3 ** 2", "(* 2 (** 3 2))"},
		{"unary binds tighter than power", "-2 ** 2", "(** (- 2) 2)"},
		{"comparison below equality", "1 < 2 == true", "(== (< 1 2) true)"},
		{"remainder with product", "7 % 3 * 2", "(* (% 7 3) 2)"},
		{"nested unary", "not not true", "(not (not true))"},
		{"unary plus", "+1", "(+ 1)"},
		{"and below equality", "1 == 1 and 2 != 3", "(and (== 1 1) (!= 2 3))"},
		{"or below and", "not true or false and true", "(or (not true) (and false true))"},
		{"void", "void", "void"},
		{"string", `"a\"b"`, `"a\"b"`},
		{"identifier", "answer", "answer"},
		{"call", "max(1, 2 + 3)", "(call max 1 (+ 2 3))"},
		{"call without arguments", "now()", "(call now)"},
		{"empty list", "[]", "(list)"},
		{"nested list", "[1, [2], 3,]", "(list 1 (list 2) 3)"},
		{"empty dict", "{}", "(dict)"},
		{"dict", `{a: 1, "b c": 2 * 3,}`, `(dict ("a" 1) ("b c" (* 2 3)))`},
		{"operators on composites", "[1] + [2] == [1, 2]", "(== (+ (list 1) (list 2)) (list 1 2))"},
		{"comments and newlines", "1 +\n// two\n2", "(+ 1 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := ParseString(context.Background(), tt.input, "test")
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if got := node.String(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParse_Spans(t *testing.T) {
	node, err := Parse(Tokenize("1 + 2 * 3"), "1 + 2 * 3", "test")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	want := &BinaryOp{
		Op:    KindPlus,
		OpPos: Span{2, 3},
		Left:  &NumberLiteral{Value: 1, Pos: Span{0, 1}},
		Right: &BinaryOp{
			Op:    KindStar,
			OpPos: Span{6, 7},
			Left:  &NumberLiteral{Value: 2, Pos: Span{4, 5}},
			Right: &NumberLiteral{Value: 3, Pos: Span{8, 9}},
			Pos:   Span{4, 9},
		},
		Pos: Span{0, 9},
	}

	if diff := cmp.Diff(Node(want), node); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_CompositeSpans(t *testing.T) {
	tests := []struct {
		input string
		want  Node
	}{
		{
			input: "-x",
			want: &UnaryOp{
				Op:      KindMinus,
				Operand: &Identifier{Name: "x", Pos: Span{1, 2}},
				Pos:     Span{0, 2},
			},
		},
		{
			input: "f(1)",
			want: &FunctionCall{
				Name: "f",
				Args: []Node{&NumberLiteral{Value: 1, Pos: Span{2, 3}}},
				Pos:  Span{0, 4},
			},
		},
		{
			input: "[true]",
			want: &ListLiteral{
				Elements: []Node{&BoolLiteral{Value: true, Pos: Span{1, 5}}},
				Pos:      Span{0, 6},
			},
		},
		{
			input: `{"k": void}`,
			want: &DictLiteral{
				Entries: []DictEntry{{
					Key:    "k",
					KeyPos: Span{1, 4},
					Value:  &VoidLiteral{Pos: Span{6, 10}},
				}},
				Pos: Span{0, 11},
			},
		},
		{
			input: "(42)",
			want:  &NumberLiteral{Value: 42, Pos: Span{1, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(Tokenize(tt.input), tt.input, "test")
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		code     Code
		span     Span
		expected Kind
		message  string
	}{
		{
			name:    "empty input",
			input:   "",
			code:    CodeUnexpectedEndOfInput,
			span:    Span{0, 0},
			message: "Unexpected end of input in source file 'test'",
		},
		{
			name:    "missing operand",
			input:   "1 +",
			code:    CodeUnexpectedEndOfInput,
			span:    Span{3, 3},
			message: "Unexpected end of input in source file 'test'",
		},
		{
			name:    "missing operand before trailing newline",
			input:   "1 +\n",
			code:    CodeUnexpectedEndOfInput,
			span:    Span{3, 3},
			message: "Unexpected end of input in source file 'test'",
		},
		{
			name:    "missing operand before comment",
			input:   "1 + // two\n\n",
			code:    CodeUnexpectedEndOfInput,
			span:    Span{3, 3},
			message: "Unexpected end of input in source file 'test'",
		},
		{
			name:    "unclosed group at end",
			input:   "(1 + 2",
			code:    CodeUnexpectedEndOfInput,
			span:    Span{6, 6},
			message: "Unexpected end of input in source file 'test'",
		},
		{
			name:     "unclosed group",
			input:    "(1 2)",
			code:     CodeUnexpectedToken,
			span:     Span{3, 4},
			expected: KindRightParen,
			message:  "Expected ')' but found '2' instead",
		},
		{
			name:    "trailing token",
			input:   "1 2",
			code:    CodeUnexpectedToken,
			span:    Span{2, 3},
			message: "Unexpected token '2'",
		},
		{
			name:    "operator in atom position",
			input:   "1 + )",
			code:    CodeUnexpectedToken,
			span:    Span{4, 5},
			message: "Unexpected token ')'",
		},
		{
			name:    "unknown token operand",
			input:   "1 + @",
			code:    CodeUnknownToken,
			span:    Span{4, 5},
			message: "Unknown token '@'",
		},
		{
			name:    "unknown trailing token",
			input:   "1 @",
			code:    CodeUnknownToken,
			span:    Span{2, 3},
			message: "Unknown token '@'",
		},
		{
			name:    "unclosed string",
			input:   `1 + "abc`,
			code:    CodeUnclosedString,
			span:    Span{4, 8},
			message: "Unclosed string literal",
		},
		{
			name:    "unknown escape",
			input:   `"a\qb"`,
			code:    CodeUnknownEscapeSequence,
			span:    Span{2, 4},
			message: `Unknown escape sequence '\q'`,
		},
		{
			name:     "list without comma",
			input:    "[1 2]",
			code:     CodeUnexpectedToken,
			span:     Span{3, 4},
			expected: KindRightBracket,
			message:  "Expected ']' but found '2' instead",
		},
		{
			name:     "dict with number key",
			input:    "{1: 2}",
			code:     CodeUnexpectedToken,
			span:     Span{1, 2},
			expected: KindString,
			message:  "Expected 'string' but found '1' instead",
		},
		{
			name:     "dict without colon",
			input:    "{a 2}",
			code:     CodeUnexpectedToken,
			span:     Span{3, 4},
			expected: KindColon,
			message:  "Expected ':' but found '2' instead",
		},
		{
			name:    "leading comma",
			input:   "[,]",
			code:    CodeUnexpectedToken,
			span:    Span{1, 2},
			message: "Unexpected token ','",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(Tokenize(tt.input), tt.input, "test")
			if err == nil {
				t.Fatal("expected error")
			}

			var d *Diagnostic
			if !errors.As(err, &d) {
				t.Fatalf("expected *Diagnostic, got %T: %v", err, err)
			}

			if d.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, d.Code)
			}

			if !d.HasSpan || d.Span != tt.span {
				t.Errorf("expected span %v, got %v (has span %v)", tt.span, d.Span, d.HasSpan)
			}

			if d.Expected != tt.expected {
				t.Errorf("expected expectation %s, got %s", tt.expected, d.Expected)
			}

			if d.File != "test" {
				t.Errorf("expected file test, got %q", d.File)
			}

			if got := d.Error(); got != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, got)
			}
		})
	}
}

func TestParse_ErrorsMatchSentinels(t *testing.T) {
	_, err := ParseString(context.Background(), "(1", "test")
	if !errors.Is(err, ErrUnexpectedEndOfInput) {
		t.Errorf("expected ErrUnexpectedEndOfInput, got %v", err)
	}

	if errors.Is(err, ErrUnexpectedToken) {
		t.Error("diagnostic matched a sentinel of another code")
	}
}

func TestParse_MaxDepth(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"--1", true},
		{"---1", false},
		{"((1))", true},
		{"(((1)))", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(Tokenize(tt.input), tt.input, "test", WithMaxDepth(3))

			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !tt.ok && !errors.Is(err, ErrLimitExceeded) {
				t.Fatalf("expected ErrLimitExceeded, got %v", err)
			}
		})
	}
}

// countingSeq yields tokens from source and records how many were pulled.
func countingSeq(source string, pulled *int) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for tok := range Tokenize(source) {
			*pulled++
			if !yield(tok) {
				return
			}
		}
	}
}

func TestParse_PullsTokensOnDemand(t *testing.T) {
	const source = "1 2 3 4 5"

	pulled := 0

	_, err := Parse(countingSeq(source, &pulled), source, "test")
	if !errors.Is(err, ErrUnexpectedToken) {
		t.Fatalf("expected ErrUnexpectedToken, got %v", err)
	}

	if pulled != 2 {
		t.Errorf("expected parser to pull 2 tokens, pulled %d", pulled)
	}
}

func TestParse_Idempotent(t *testing.T) {
	inputs := []string{
		"2 + 3 * 4",
		`{a: [1, "x"], b: not true}`,
		"-(1 - 2) ** 3 % 4",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := Parse(Tokenize(input), input, "test")
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			second, err := Parse(Tokenize(input), input, "test")
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("parses differ (-first +second):\n%s", diff)
			}
		})
	}
}

func TestParse_StringFormReparses(t *testing.T) {
	inputs := []string{
		"2 + 3 * 4",
		`"tab\there" + "q\"uote"`,
		"[1, 2.5, -3]",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			node, err := ParseString(context.Background(), input, "test")
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			for _, lit := range literals(node) {
				text := lit.String()

				again, err := ParseString(context.Background(), text, "test")
				if err != nil {
					t.Fatalf("reparse %s: %v", text, err)
				}

				if again.String() != text {
					t.Errorf("expected %s to reparse unchanged, got %s", text, again)
				}
			}
		})
	}
}

// literals returns the leaf literal nodes of node in source order.
func literals(node Node) []Node {
	switch n := node.(type) {
	case *NumberLiteral, *StringLiteral, *BoolLiteral, *VoidLiteral:
		return []Node{n}
	case *UnaryOp:
		return literals(n.Operand)
	case *BinaryOp:
		return append(literals(n.Left), literals(n.Right)...)
	case *ListLiteral:
		var out []Node
		for _, e := range n.Elements {
			out = append(out, literals(e)...)
		}

		return out
	default:
		return nil
	}
}
