package lang

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/glass/pkg"
)

// Code classifies a [Diagnostic].
type Code int

const (
	CodeUnknownError Code = iota
	CodeUnknownToken
	CodeUnclosedString
	CodeUnknownEscapeSequence
	CodeUnexpectedToken
	CodeUnexpectedEndOfInput
	CodeInvalidOperation
	CodeInvalidUnaryOperation
	CodeUnsupported
	CodeLimitExceeded
)

var codeText = [...]string{
	CodeUnknownError:          "UnknownError",
	CodeUnknownToken:          "UnknownToken",
	CodeUnclosedString:        "UnclosedString",
	CodeUnknownEscapeSequence: "UnknownEscapeSequence",
	CodeUnexpectedToken:       "UnexpectedToken",
	CodeUnexpectedEndOfInput:  "UnexpectedEndOfInput",
	CodeInvalidOperation:      "InvalidOperation",
	CodeInvalidUnaryOperation: "InvalidUnaryOperation",
	CodeUnsupported:           "Unsupported",
	CodeLimitExceeded:         "LimitExceeded",
}

func (c Code) String() string {
	if c < 0 || int(c) >= len(codeText) {
		return "Code(" + strconv.Itoa(int(c)) + ")"
	}

	return codeText[c]
}

// Sentinel diagnostics for use with [errors.Is]. A diagnostic matches the
// sentinel with the same [Code].
var (
	ErrUnknownError          = &Diagnostic{Code: CodeUnknownError}
	ErrUnknownToken          = &Diagnostic{Code: CodeUnknownToken}
	ErrUnclosedString        = &Diagnostic{Code: CodeUnclosedString}
	ErrUnknownEscapeSequence = &Diagnostic{Code: CodeUnknownEscapeSequence}
	ErrUnexpectedToken       = &Diagnostic{Code: CodeUnexpectedToken}
	ErrUnexpectedEndOfInput  = &Diagnostic{Code: CodeUnexpectedEndOfInput}
	ErrInvalidOperation      = &Diagnostic{Code: CodeInvalidOperation}
	ErrInvalidUnaryOperation = &Diagnostic{Code: CodeInvalidUnaryOperation}
	ErrUnsupported           = &Diagnostic{Code: CodeUnsupported}
	ErrLimitExceeded         = &Diagnostic{Code: CodeLimitExceeded}
)

// Diagnostic describes a failure in any stage of the pipeline, with enough
// context to render itself against the source it came from.
//
// Diagnostic implements error, [slog.LogValuer] and the errors.Is protocol.
type Diagnostic struct {
	Code Code

	// Source and File identify the input. Span is meaningful only when
	// HasSpan is set.
	Source  string
	File    string
	Span    Span
	HasSpan bool

	// Expected is the token kind the grammar required (KindInvalid if the
	// position has no single expectation) and Actual the token found.
	Expected Kind
	Actual   Token

	// Sequence is the offending escape of an UnknownEscapeSequence.
	Sequence string

	// Op, Left, Right and Operand describe failed operator applications.
	Op      string
	Left    string
	Right   string
	Operand string

	// Message is free text for UnknownError, Unsupported and LimitExceeded.
	Message string
	Hint    string

	cause error
	attrs []slog.Attr
}

// Error returns the one-line summary of the diagnostic.
func (d *Diagnostic) Error() string {
	switch d.Code {
	case CodeUnknownToken:
		return fmt.Sprintf("Unknown token '%s'", d.lexeme())

	case CodeUnclosedString:
		return "Unclosed string literal"

	case CodeUnknownEscapeSequence:
		return fmt.Sprintf("Unknown escape sequence '%s'", d.Sequence)

	case CodeUnexpectedToken:
		if d.Expected != KindInvalid {
			return fmt.Sprintf("Expected '%s' but found '%s' instead",
				d.Expected, d.lexeme())
		}

		return fmt.Sprintf("Unexpected token '%s'", d.lexeme())

	case CodeUnexpectedEndOfInput:
		return fmt.Sprintf("Unexpected end of input in source file '%s'", d.File)

	case CodeInvalidOperation:
		return fmt.Sprintf("Cannot use operation '%s' on type '%s' and '%s'",
			d.Op, d.Left, d.Right)

	case CodeInvalidUnaryOperation:
		return fmt.Sprintf("Unary operator '%s' cannot be applied to type '%s'",
			d.Op, d.Operand)

	case CodeUnsupported:
		if d.Hint != "" {
			return fmt.Sprintf("%s is not supported (did you mean '%s'?)",
				d.Message, d.Hint)
		}

		return d.Message + " is not supported"

	case CodeLimitExceeded:
		return d.Message

	default:
		msg := d.Message
		if d.cause != nil {
			msg = strings.Join([]string{msg, d.cause.Error()}, ": ")
		}

		return fmt.Sprintf("Unknown error '%s'. Please report this bug with "+
			"the following information: %s Version = '%s'",
			msg, pkg.Name, strings.TrimSpace(pkg.Version))
	}
}

// Is reports whether target is a diagnostic with the same code.
func (d *Diagnostic) Is(target error) bool {
	t, ok := target.(*Diagnostic)

	return ok && t.Code == d.Code
}

// Unwrap returns the internal fault behind an UnknownError, if any.
func (d *Diagnostic) Unwrap() error { return d.cause }

// Wrap returns a copy of d that records err as its cause.
func (d *Diagnostic) Wrap(err error) *Diagnostic {
	c := *d
	c.cause = err

	return &c
}

// With returns a copy of d with attrs appended to its structured log value.
func (d *Diagnostic) With(attrs ...slog.Attr) *Diagnostic {
	c := *d
	c.attrs = make([]slog.Attr, len(d.attrs)+len(attrs))
	copy(c.attrs, d.attrs)
	copy(c.attrs[len(d.attrs):], attrs)

	return &c
}

// LogValue implements [slog.LogValuer].
func (d *Diagnostic) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(d.attrs)+8)
	attrs = append(attrs,
		slog.String("code", d.Code.String()),
		slog.String("error", d.Error()),
	)

	if d.File != "" {
		attrs = append(attrs, slog.String("file", d.File))
	}

	if d.HasSpan {
		pos := Locate(d.Source, d.Span)
		attrs = append(attrs,
			slog.Int("line", pos.Line),
			slog.Int("start", pos.StartColumn),
			slog.Int("end", pos.EndColumn),
		)
	}

	if d.Op != "" {
		attrs = append(attrs, slog.String("op", d.Op))
	}

	return slog.GroupValue(append(attrs, d.attrs...)...)
}

// Report is a diagnostic broken into its rendered lines, so callers can style
// each part independently. Line, Marker and Locator are empty when the
// diagnostic has no location.
type Report struct {
	Summary string
	Line    string
	Marker  string
	Locator string
}

// Report lays out the diagnostic against its source.
func (d *Diagnostic) Report() Report {
	r := Report{Summary: d.Error()}

	if !d.HasSpan {
		return r
	}

	pos := Locate(d.Source, d.Span)
	line := d.Source[pos.LineStart:pos.LineEnd]

	var pad strings.Builder

	for _, c := range line[:pos.StartColumn] {
		if c == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}

	width := max(utf8.RuneCountInString(line[pos.StartColumn:pos.EndColumn]), 1)

	r.Line = strings.TrimRight(line, "\r")
	r.Marker = pad.String() + strings.Repeat("^", width)
	r.Locator = fmt.Sprintf("[%s(Ln:%d, Col:%d..%d)]",
		d.File, pos.Line, pos.StartColumn, pos.EndColumn)

	return r
}

// Render returns the summary followed, when the location is known, by the
// offending source line, a caret underline and a locator.
func (d *Diagnostic) Render() string {
	r := d.Report()
	if r.Locator == "" {
		return r.Summary
	}

	return strings.Join([]string{r.Summary, r.Line, r.Marker, r.Locator}, "\n")
}

func (d *Diagnostic) lexeme() string {
	if !d.HasSpan {
		return d.Actual.String()
	}

	return strings.TrimSpace(d.Span.Slice(d.Source))
}

// Diagnostic constructors shared by the parser and evaluator.

func located(code Code, source, file string, span Span) *Diagnostic {
	return &Diagnostic{
		Code:    code,
		Source:  source,
		File:    file,
		Span:    span,
		HasSpan: true,
	}
}

func unknownError(msg string) *Diagnostic {
	return &Diagnostic{Code: CodeUnknownError, Message: msg}
}

func invalidOperation(op string, left, right Value) *Diagnostic {
	return &Diagnostic{
		Code:  CodeInvalidOperation,
		Op:    op,
		Left:  left.Type(),
		Right: right.Type(),
	}
}

func invalidUnaryOperation(op string, operand Value) *Diagnostic {
	return &Diagnostic{
		Code:    CodeInvalidUnaryOperation,
		Op:      op,
		Operand: operand.Type(),
	}
}
