package lang

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/glass/log"
)

// Evaluator reduces syntax trees to values. The zero value is not usable;
// create one with [NewEvaluator].
//
// An Evaluator holds no mutable state and may be shared between goroutines.
type Evaluator struct {
	source string
	file   string
	opts   options
}

// NewEvaluator returns an evaluator for trees parsed from source, which is
// identified in diagnostics by file.
func NewEvaluator(source, file string, opts ...Option) *Evaluator {
	return &Evaluator{
		source: source,
		file:   file,
		opts:   makeOptions(opts...),
	}
}

// binaryOps maps each binary operator token to its [Value] operation.
var binaryOps = map[Kind]func(l, r Value) (Value, error){
	KindPlus:         Add,
	KindMinus:        Sub,
	KindStar:         Mul,
	KindSlash:        Div,
	KindPercent:      Rem,
	KindStarStar:     Pow,
	KindEqualEqual:   Eq,
	KindBangEqual:    Ne,
	KindLess:         Lt,
	KindGreater:      Gt,
	KindLessEqual:    Le,
	KindGreaterEqual: Ge,
	KindAnd:          And,
	KindOr:           Or,
}

// Evaluate walks node depth-first, evaluating the operands of every operator
// before applying it. Both operands of and/or are always evaluated.
//
// Evaluation stops at the first failure, which is returned as a
// [*Diagnostic] located at the offending node, or with the context error if
// ctx is done.
//
// A panic while evaluating, which indicates a malformed tree, is returned as
// an UnknownError diagnostic.
func (e *Evaluator) Evaluate(ctx context.Context, node Node) (_ Value, err error) {
	defer recoverFault(&err)

	return e.evaluate(ctx, node)
}

func (e *Evaluator) evaluate(ctx context.Context, node Node) (Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch n := node.(type) {
	case *NumberLiteral:
		return Num(n.Value), nil

	case *StringLiteral:
		return Str(n.Value), nil

	case *BoolLiteral:
		return Bool(n.Value), nil

	case *VoidLiteral:
		return Void{}, nil

	case *ListLiteral:
		return e.evaluateList(ctx, n)

	case *DictLiteral:
		return e.evaluateDict(ctx, n)

	case *UnaryOp:
		return e.evaluateUnary(ctx, n)

	case *BinaryOp:
		return e.evaluateBinary(ctx, n)

	case *Block:
		for _, stmt := range n.Statements {
			if _, err := e.evaluate(ctx, stmt); err != nil {
				return nil, err
			}
		}

		return Void{}, nil

	case *Identifier:
		d := e.unsupported(n, fmt.Sprintf("Identifier '%s'", n.Name))
		d.Hint = suggest(n.Name)

		return nil, d

	case *Assignment:
		return nil, e.unsupported(n, "Assignment")

	case *FunctionCall:
		return nil, e.unsupported(n, fmt.Sprintf("Call to '%s'", n.Name))

	case *FunctionDefinition:
		return nil, e.unsupported(n, "Function definition")

	case *Return:
		return nil, e.unsupported(n, "Return")

	case *If:
		return nil, e.unsupported(n, "If expression")

	case *While:
		return nil, e.unsupported(n, "While loop")

	case *For:
		return nil, e.unsupported(n, "For loop")

	case nil:
		return nil, unknownError("evaluate nil node")

	default:
		return nil, unknownError(fmt.Sprintf("evaluate node %T", node))
	}
}

func (e *Evaluator) evaluateList(ctx context.Context, n *ListLiteral) (Value, error) {
	out := make(List, 0, len(n.Elements))

	for _, elem := range n.Elements {
		v, err := e.evaluate(ctx, elem)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// evaluateDict evaluates entries in order. A repeated key keeps its last
// value.
func (e *Evaluator) evaluateDict(ctx context.Context, n *DictLiteral) (Value, error) {
	out := make(Dict, len(n.Entries))

	for _, entry := range n.Entries {
		v, err := e.evaluate(ctx, entry.Value)
		if err != nil {
			return nil, err
		}

		out[entry.Key] = v
	}

	return out, nil
}

func (e *Evaluator) evaluateUnary(ctx context.Context, n *UnaryOp) (Value, error) {
	operand, err := e.evaluate(ctx, n.Operand)
	if err != nil {
		return nil, err
	}

	var result Value

	switch n.Op {
	case KindPlus:
		return operand, nil
	case KindMinus:
		result, err = Neg(operand)
	case KindNot:
		result, err = Not(operand)
	default:
		err = unknownError("unary operator '" + n.Op.String() + "'")
	}

	if err != nil {
		return nil, e.locate(err, n)
	}

	return result, nil
}

func (e *Evaluator) evaluateBinary(ctx context.Context, n *BinaryOp) (Value, error) {
	left, err := e.evaluate(ctx, n.Left)
	if err != nil {
		return nil, err
	}

	right, err := e.evaluate(ctx, n.Right)
	if err != nil {
		return nil, err
	}

	op, ok := binaryOps[n.Op]
	if !ok {
		return nil, e.locate(
			unknownError("binary operator '"+n.Op.String()+"'"), n)
	}

	result, err := op(left, right)
	if err != nil {
		return nil, e.locate(err, n)
	}

	if e.opts.logger.Enabled(ctx, log.LevelTrace) {
		e.opts.logger.TraceContext(ctx, "apply",
			slog.String("op", n.Op.String()),
			slog.String("left", left.String()),
			slog.String("right", right.String()),
			slog.String("result", result.String()))
	}

	return result, nil
}

// locate attaches the source location of node to a diagnostic returned by a
// value operation. Diagnostics that already carry a location are returned
// unchanged.
func (e *Evaluator) locate(err error, node Node) error {
	var d *Diagnostic
	if !errors.As(err, &d) {
		return unknownError("evaluate").Wrap(err)
	}

	if d.HasSpan {
		return d
	}

	c := *d
	c.Source = e.source
	c.File = e.file
	c.Span = node.Span()
	c.HasSpan = true

	return &c
}

// recoverFault reports a recovered panic through *err.
func recoverFault(err *error) {
	if r := recover(); r != nil {
		*err = unknownError(fmt.Sprint(r))
	}
}

func (e *Evaluator) unsupported(node Node, construct string) *Diagnostic {
	d := located(CodeUnsupported, e.source, e.file, node.Span())
	d.Message = construct

	return d
}

// valueWords are the reserved words that denote values or value operators,
// offered as suggestions for unknown identifiers.
var valueWords = []string{"true", "false", "void", "not", "and", "or"}

// suggest returns the value word closest to name, or "" if none is close.
// An abbreviation of a word (tru) or a word with extra characters (truee)
// both count as close, provided the shorter of the two covers at least two
// thirds of the longer.
func suggest(name string) string {
	for _, m := range fuzzy.Find(name, valueWords) {
		if closeEnough(name, m.Str) {
			return m.Str
		}
	}

	hint, score := "", 0

	for _, word := range valueWords {
		if !closeEnough(word, name) {
			continue
		}

		for _, m := range fuzzy.Find(word, []string{name}) {
			if hint == "" || m.Score > score {
				hint, score = word, m.Score
			}
		}
	}

	return hint
}

// closeEnough reports whether a string of length len(short) is long enough,
// relative to long, for a subsequence match between them to be meaningful.
func closeEnough(short, long string) bool {
	return 3*len(short) >= 2*len(long)
}
