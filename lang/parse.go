package lang

import (
	"context"
	"iter"
	"log/slog"
	"slices"
	"strconv"

	"github.com/ardnew/glass/log"
)

// Parse builds the syntax tree of the single expression described by tokens.
//
// Tokens are pulled on demand with one token of lookahead and are never
// revisited. The first lexical error token dequeued, the first grammar
// violation, or running out of tokens where more are required aborts the
// parse with a [*Diagnostic]. Source and file are used only for diagnostics.
func Parse(
	tokens iter.Seq[Token],
	source, file string,
	opts ...Option,
) (Node, error) {
	next, stop := iter.Pull(tokens)
	defer stop()

	p := &parser{
		pull:   next,
		source: source,
		file:   file,
		opts:   makeOptions(opts...),
	}

	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, ok := p.peek(); ok {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}

		return nil, p.unexpected(tok, KindInvalid)
	}

	return node, nil
}

// ParseString tokenizes and parses source.
func ParseString(
	ctx context.Context,
	source, file string,
	opts ...Option,
) (Node, error) {
	node, err := Parse(Tokenize(source), source, file, opts...)
	if err != nil {
		return nil, err
	}

	if logger := makeOptions(opts...).logger; logger.Enabled(ctx, log.LevelTrace) {
		logger.TraceContext(ctx, "parse complete",
			slog.String("file", file),
			slog.String("ast", node.String()))
	}

	return node, nil
}

// parser holds the parser state.
type parser struct {
	pull   func() (Token, bool)
	source string
	file   string
	opts   options
	depth  int

	// lookahead holds a token that has been peeked but not consumed.
	lookahead *Token

	// end is the end offset of the last consumed token.
	end int
}

// peek returns the next token without consuming it.
func (p *parser) peek() (Token, bool) {
	if p.lookahead == nil {
		tok, ok := p.pull()
		if !ok {
			return Token{}, false
		}

		p.lookahead = &tok
	}

	return *p.lookahead, true
}

// next consumes exactly one token. Lexical error tokens become diagnostics
// here, and so does running out of input.
func (p *parser) next() (Token, error) {
	tok, ok := p.peek()
	if !ok {
		// Point just past the last token, not at trailing blank lines.
		d := located(CodeUnexpectedEndOfInput, p.source, p.file,
			Span{p.end, p.end})

		return Token{}, d
	}

	p.lookahead = nil
	p.end = tok.Span.End

	switch tok.Kind {
	case KindUnknownToken:
		return tok, located(CodeUnknownToken, p.source, p.file, tok.Span)

	case KindUnclosedString:
		return tok, located(CodeUnclosedString, p.source, p.file, tok.Span)

	case KindInvalidEscapeSequence:
		d := located(CodeUnknownEscapeSequence, p.source, p.file, tok.Span)
		d.Sequence = tok.Text

		return tok, d
	}

	return tok, nil
}

// accept consumes the next token if it is one of kinds.
func (p *parser) accept(kinds ...Kind) (Token, bool) {
	tok, ok := p.peek()
	if !ok || !slices.Contains(kinds, tok.Kind) {
		return Token{}, false
	}

	p.lookahead = nil
	p.end = tok.Span.End

	return tok, true
}

// expect consumes the next token, which must be of the given kind.
func (p *parser) expect(kind Kind) (Token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}

	if tok.Kind != kind {
		return tok, p.unexpected(tok, kind)
	}

	return tok, nil
}

func (p *parser) unexpected(tok Token, expected Kind) *Diagnostic {
	d := located(CodeUnexpectedToken, p.source, p.file, tok.Span)
	d.Expected = expected
	d.Actual = tok

	return d
}

// Precedence levels, loosest first. Every level is left-associative,
// including **.

func (p *parser) parseExpression() (Node, error) { return p.parseOr() }

func (p *parser) parseOr() (Node, error) {
	return p.binary(p.parseAnd, KindOr)
}

func (p *parser) parseAnd() (Node, error) {
	return p.binary(p.parseEquality, KindAnd)
}

func (p *parser) parseEquality() (Node, error) {
	return p.binary(p.parseComparison, KindEqualEqual, KindBangEqual)
}

func (p *parser) parseComparison() (Node, error) {
	return p.binary(p.parseTerm,
		KindLess, KindGreater, KindLessEqual, KindGreaterEqual)
}

func (p *parser) parseTerm() (Node, error) {
	return p.binary(p.parseFactor, KindPlus, KindMinus)
}

func (p *parser) parseFactor() (Node, error) {
	return p.binary(p.parsePower, KindStar, KindSlash, KindPercent)
}

func (p *parser) parsePower() (Node, error) {
	return p.binary(p.parseUnary, KindStarStar)
}

// binary parses operand (op operand)* and folds the operands to the left.
func (p *parser) binary(operand func() (Node, error), ops ...Kind) (Node, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.accept(ops...)
		if !ok {
			return left, nil
		}

		right, err := operand()
		if err != nil {
			return nil, err
		}

		left = &BinaryOp{
			Op:    op.Kind,
			OpPos: op.Span,
			Left:  left,
			Right: right,
			Pos:   left.Span().Join(right.Span()),
		}
	}
}

// parseUnary parses ("-" | "+" | "not") unary | atom.
func (p *parser) parseUnary() (Node, error) {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > p.opts.maxDepth {
		tok, _ := p.peek()

		d := located(CodeLimitExceeded, p.source, p.file, tok.Span)
		d.Message = "Expression nesting exceeds the maximum depth of " +
			strconv.Itoa(p.opts.maxDepth)

		return nil, d
	}

	op, ok := p.accept(KindMinus, KindPlus, KindNot)
	if !ok {
		return p.parseAtom()
	}

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &UnaryOp{
		Op:      op.Kind,
		Operand: operand,
		Pos:     op.Span.Join(operand.Span()),
	}, nil
}

func (p *parser) parseAtom() (Node, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case KindNumber:
		return &NumberLiteral{Value: tok.Number, Pos: tok.Span}, nil

	case KindString:
		return &StringLiteral{Value: tok.Text, Pos: tok.Span}, nil

	case KindTrue, KindFalse:
		return &BoolLiteral{Value: tok.Kind == KindTrue, Pos: tok.Span}, nil

	case KindVoid:
		return &VoidLiteral{Pos: tok.Span}, nil

	case KindIdentifier:
		if _, ok := p.accept(KindLeftParen); ok {
			return p.parseCall(tok)
		}

		return &Identifier{Name: tok.Text, Pos: tok.Span}, nil

	case KindLeftParen:
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(KindRightParen); err != nil {
			return nil, err
		}

		return inner, nil

	case KindLeftBracket:
		return p.parseList(tok)

	case KindLeftBrace:
		return p.parseDict(tok)

	default:
		return nil, p.unexpected(tok, KindInvalid)
	}
}

// parseCall parses the arguments of name(args...) after the opening paren.
func (p *parser) parseCall(name Token) (Node, error) {
	var args []Node

	end, err := p.sequence(KindRightParen, func() error {
		arg, err := p.parseExpression()
		if err != nil {
			return err
		}

		args = append(args, arg)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &FunctionCall{
		Name: name.Text,
		Args: args,
		Pos:  name.Span.Join(end),
	}, nil
}

// parseList parses the elements of [a, b, ...] after the opening bracket.
func (p *parser) parseList(open Token) (Node, error) {
	elems := []Node{}

	end, err := p.sequence(KindRightBracket, func() error {
		elem, err := p.parseExpression()
		if err != nil {
			return err
		}

		elems = append(elems, elem)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ListLiteral{Elements: elems, Pos: open.Span.Join(end)}, nil
}

// parseDict parses the entries of {key: value, ...} after the opening brace.
// Keys are string literals or bare identifiers.
func (p *parser) parseDict(open Token) (Node, error) {
	entries := []DictEntry{}

	end, err := p.sequence(KindRightBrace, func() error {
		key, err := p.next()
		if err != nil {
			return err
		}

		if key.Kind != KindString && key.Kind != KindIdentifier {
			return p.unexpected(key, KindString)
		}

		if _, err := p.expect(KindColon); err != nil {
			return err
		}

		value, err := p.parseExpression()
		if err != nil {
			return err
		}

		entries = append(entries, DictEntry{
			Key:    key.Text,
			KeyPos: key.Span,
			Value:  value,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &DictLiteral{Entries: entries, Pos: open.Span.Join(end)}, nil
}

// sequence parses item (, item)* ,? close and returns the span of close.
func (p *parser) sequence(closer Kind, item func() error) (Span, error) {
	for {
		if tok, ok := p.accept(closer); ok {
			return tok.Span, nil
		}

		if err := item(); err != nil {
			return Span{}, err
		}

		tok, err := p.next()
		if err != nil {
			return Span{}, err
		}

		switch tok.Kind {
		case closer:
			return tok.Span, nil
		case KindComma:
			continue
		default:
			return Span{}, p.unexpected(tok, closer)
		}
	}
}
