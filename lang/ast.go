package lang

import (
	"strconv"
	"strings"
)

// Node is an element of the abstract syntax tree.
//
// The tree is strictly owned: every child belongs to exactly one parent and
// no node is shared or revisited.
type Node interface {
	// Span returns the source range the node was parsed from.
	Span() Span

	// String returns the node as an S-expression, e.g. (+ 2 (* 3 4)).
	String() string

	node()
}

// NumberLiteral is a numeric constant.
type NumberLiteral struct {
	Value float64
	Pos   Span
}

// StringLiteral is an escape-processed string constant.
type StringLiteral struct {
	Value string
	Pos   Span
}

// BoolLiteral is true or false.
type BoolLiteral struct {
	Value bool
	Pos   Span
}

// VoidLiteral is the void keyword.
type VoidLiteral struct {
	Pos Span
}

// ListLiteral is a bracketed, comma-separated sequence of expressions.
type ListLiteral struct {
	Elements []Node
	Pos      Span
}

// DictEntry is a single key: value pair of a [DictLiteral].
type DictEntry struct {
	Key    string
	KeyPos Span
	Value  Node
}

// DictLiteral is a braced, comma-separated sequence of key: value pairs.
type DictLiteral struct {
	Entries []DictEntry
	Pos     Span
}

// Identifier is a bare name.
type Identifier struct {
	Name string
	Pos  Span
}

// UnaryOp applies a prefix operator (-, + or not) to its operand.
type UnaryOp struct {
	Op      Kind
	Operand Node
	Pos     Span
}

// BinaryOp applies an infix operator to two operands.
type BinaryOp struct {
	Op    Kind
	OpPos Span
	Left  Node
	Right Node
	Pos   Span
}

// The remaining node kinds are produced for statements and calls. They have
// no evaluation semantics yet.

// Assignment binds or updates a target with =, += and friends.
type Assignment struct {
	Op     Kind
	Target Node
	Value  Node
	Pos    Span
}

// FunctionCall is name(args...).
type FunctionCall struct {
	Name string
	Args []Node
	Pos  Span
}

// FunctionDefinition is func name(params...) body.
type FunctionDefinition struct {
	Name   string
	Params []string
	Body   Node
	Pos    Span
}

// Return exits the enclosing function with a value.
type Return struct {
	Value Node
	Pos   Span
}

// If is a conditional with an optional else branch.
type If struct {
	Condition Node
	Body      Node
	Else      Node
	Pos       Span
}

// While repeats its body while the condition holds.
type While struct {
	Condition Node
	Body      Node
	Pos       Span
}

// For iterates a variable from Start to End by an optional Step.
type For struct {
	Variable string
	Start    Node
	End      Node
	Step     Node
	Body     Node
	Pos      Span
}

// Block is a sequence of statements.
type Block struct {
	Statements []Node
	Pos        Span
}

func (n *NumberLiteral) Span() Span      { return n.Pos }
func (n *StringLiteral) Span() Span      { return n.Pos }
func (n *BoolLiteral) Span() Span        { return n.Pos }
func (n *VoidLiteral) Span() Span        { return n.Pos }
func (n *ListLiteral) Span() Span        { return n.Pos }
func (n *DictLiteral) Span() Span        { return n.Pos }
func (n *Identifier) Span() Span         { return n.Pos }
func (n *UnaryOp) Span() Span            { return n.Pos }
func (n *BinaryOp) Span() Span           { return n.Pos }
func (n *Assignment) Span() Span         { return n.Pos }
func (n *FunctionCall) Span() Span       { return n.Pos }
func (n *FunctionDefinition) Span() Span { return n.Pos }
func (n *Return) Span() Span             { return n.Pos }
func (n *If) Span() Span                 { return n.Pos }
func (n *While) Span() Span              { return n.Pos }
func (n *For) Span() Span                { return n.Pos }
func (n *Block) Span() Span              { return n.Pos }

func (*NumberLiteral) node()      {}
func (*StringLiteral) node()      {}
func (*BoolLiteral) node()        {}
func (*VoidLiteral) node()        {}
func (*ListLiteral) node()        {}
func (*DictLiteral) node()        {}
func (*Identifier) node()         {}
func (*UnaryOp) node()            {}
func (*BinaryOp) node()           {}
func (*Assignment) node()         {}
func (*FunctionCall) node()       {}
func (*FunctionDefinition) node() {}
func (*Return) node()             {}
func (*If) node()                 {}
func (*While) node()              {}
func (*For) node()                {}
func (*Block) node()              {}

func (n *NumberLiteral) String() string      { return nodeString(n) }
func (n *StringLiteral) String() string      { return nodeString(n) }
func (n *BoolLiteral) String() string        { return nodeString(n) }
func (n *VoidLiteral) String() string        { return nodeString(n) }
func (n *ListLiteral) String() string        { return nodeString(n) }
func (n *DictLiteral) String() string        { return nodeString(n) }
func (n *Identifier) String() string         { return nodeString(n) }
func (n *UnaryOp) String() string            { return nodeString(n) }
func (n *BinaryOp) String() string           { return nodeString(n) }
func (n *Assignment) String() string         { return nodeString(n) }
func (n *FunctionCall) String() string       { return nodeString(n) }
func (n *FunctionDefinition) String() string { return nodeString(n) }
func (n *Return) String() string             { return nodeString(n) }
func (n *If) String() string                 { return nodeString(n) }
func (n *While) String() string              { return nodeString(n) }
func (n *For) String() string                { return nodeString(n) }
func (n *Block) String() string              { return nodeString(n) }

func nodeString(n Node) string {
	var sb strings.Builder

	writeNode(&sb, n)

	return sb.String()
}

// writeNode appends the S-expression of n to sb. The whole tree shares one
// buffer, so output cost is linear in its size.
func writeNode(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *NumberLiteral:
		sb.WriteString(formatNumber(n.Value))
	case *StringLiteral:
		sb.WriteByte('"')
		sb.WriteString(Escape(n.Value))
		sb.WriteByte('"')
	case *BoolLiteral:
		sb.WriteString(strconv.FormatBool(n.Value))
	case *VoidLiteral:
		sb.WriteString("void")
	case *Identifier:
		sb.WriteString(n.Name)
	case *ListLiteral:
		writeSexpr(sb, "list", n.Elements...)
	case *DictLiteral:
		sb.WriteString("(dict")

		for _, e := range n.Entries {
			sb.WriteString(` ("`)
			sb.WriteString(Escape(e.Key))
			sb.WriteString(`" `)
			writeNode(sb, e.Value)
			sb.WriteByte(')')
		}

		sb.WriteByte(')')
	case *UnaryOp:
		writeSexpr(sb, n.Op.String(), n.Operand)
	case *BinaryOp:
		writeSexpr(sb, n.Op.String(), n.Left, n.Right)
	case *Assignment:
		writeSexpr(sb, n.Op.String(), n.Target, n.Value)
	case *FunctionCall:
		writeSexpr(sb, "call "+n.Name, n.Args...)
	case *FunctionDefinition:
		writeSexpr(sb, "func "+n.Name+" ("+strings.Join(n.Params, " ")+")", n.Body)
	case *Return:
		writeSexpr(sb, "return", n.Value)
	case *If:
		writeSexpr(sb, "if", n.Condition, n.Body, n.Else)
	case *While:
		writeSexpr(sb, "while", n.Condition, n.Body)
	case *For:
		writeSexpr(sb, "for "+n.Variable, n.Start, n.End, n.Step, n.Body)
	case *Block:
		writeSexpr(sb, "block", n.Statements...)
	}
}

// writeSexpr appends head followed by each non-nil child, in parentheses.
func writeSexpr(sb *strings.Builder, head string, children ...Node) {
	sb.WriteByte('(')
	sb.WriteString(head)

	for _, c := range children {
		if c == nil {
			continue
		}

		sb.WriteByte(' ')
		writeNode(sb, c)
	}

	sb.WriteByte(')')
}
