package cmd

import (
	"context"

	"github.com/ardnew/glass/lang"
)

// AST prints the syntax tree of a program without evaluating it.
type AST struct {
	Source `embed:""`

	Indent int `default:"2" help:"Spaces per nesting level"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) error {
	name, text, err := a.Load(ctx)
	if err != nil {
		return err
	}

	node, err := lang.ParseString(ctx, text, name, langOptions(ctx)...)
	if err != nil {
		return err
	}

	if err := lang.FormatNode(IOFrom(ctx).Out, node, a.Indent); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
