package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"
)

// FormatNode writes node as an indented tree, one node per line with its
// source span.
func FormatNode(w io.Writer, node Node, indent int) error {
	if indent <= 0 {
		indent = 2
	}

	return formatNode(w, node, indent, 0)
}

func formatNode(w io.Writer, node Node, indent, depth int) error {
	if node == nil {
		return nil
	}

	label, children := describe(node)

	_, err := fmt.Fprintf(w, "%s%s %s\n",
		strings.Repeat(" ", depth*indent), label, node.Span())
	if err != nil {
		return err
	}

	if d, ok := node.(*DictLiteral); ok {
		for _, entry := range d.Entries {
			_, err := fmt.Fprintf(w, "%sEntry %s %s\n",
				strings.Repeat(" ", (depth+1)*indent),
				Str(entry.Key), entry.KeyPos)
			if err != nil {
				return err
			}

			if err := formatNode(w, entry.Value, indent, depth+2); err != nil {
				return err
			}
		}

		return nil
	}

	for _, child := range children {
		if err := formatNode(w, child, indent, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// describe returns the tree label of node and its child nodes in source
// order.
func describe(node Node) (string, []Node) {
	switch n := node.(type) {
	case *NumberLiteral:
		return "Number " + n.String(), nil
	case *StringLiteral:
		return "String " + n.String(), nil
	case *BoolLiteral:
		return "Bool " + n.String(), nil
	case *VoidLiteral:
		return "Void", nil
	case *ListLiteral:
		return "List", n.Elements
	case *DictLiteral:
		return "Dict", nil
	case *Identifier:
		return "Identifier " + n.Name, nil
	case *UnaryOp:
		return "Unary " + n.Op.String(), []Node{n.Operand}
	case *BinaryOp:
		return "Binary " + n.Op.String(), []Node{n.Left, n.Right}
	case *Assignment:
		return "Assignment " + n.Op.String(), []Node{n.Target, n.Value}
	case *FunctionCall:
		return "Call " + n.Name, n.Args
	case *FunctionDefinition:
		return "Function " + n.Name + "(" + strings.Join(n.Params, ", ") + ")",
			[]Node{n.Body}
	case *Return:
		return "Return", []Node{n.Value}
	case *If:
		return "If", []Node{n.Condition, n.Body, n.Else}
	case *While:
		return "While", []Node{n.Condition, n.Body}
	case *For:
		return "For " + n.Variable, []Node{n.Start, n.End, n.Step, n.Body}
	case *Block:
		return "Block", n.Statements
	default:
		return fmt.Sprintf("%T", node), nil
	}
}

// FormatValue writes v in literal syntax followed by a newline.
func FormatValue(w io.Writer, v Value) error {
	_, err := fmt.Fprintln(w, v)

	return err
}

// FormatJSON writes v as JSON. Non-finite numbers, which JSON cannot
// represent, are written as the strings "inf", "-inf" and "NaN".
func FormatJSON(_ context.Context, w io.Writer, v Value, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(portable(v), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(portable(v))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes v as YAML. An indent of zero selects flow style.
func FormatYAML(ctx context.Context, w io.Writer, v Value, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, Native(v), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// FormatCBOR writes v in canonical CBOR encoding, so equal values always
// produce identical bytes.
func FormatCBOR(_ context.Context, w io.Writer, v Value) error {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return err
	}

	data, err := mode.Marshal(Native(v))
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// portable is [Native] with non-finite numbers replaced by their text form.
func portable(v Value) any {
	switch v := v.(type) {
	case Num:
		if f := float64(v); math.IsInf(f, 0) || math.IsNaN(f) {
			return formatNumber(f)
		}

		return float64(v)
	case List:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = portable(e)
		}

		return out
	case Dict:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = portable(e)
		}

		return out
	default:
		return Native(v)
	}
}
