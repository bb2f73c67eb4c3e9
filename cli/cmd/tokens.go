package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/ardnew/glass/lang"
)

// Tokens prints the token stream of a program, one token per line.
type Tokens struct {
	Source `embed:""`
}

// Run executes the tokens command. Error tokens are printed like any other;
// tokenizing never fails.
func (t *Tokens) Run(ctx context.Context) error {
	_, text, err := t.Load(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(IOFrom(ctx).Out, 0, 4, 1, ' ', 0)

	for tok := range lang.Tokenize(text) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", tok.Kind, tok.Span.Slice(text), tok.Span)
	}

	if err := tw.Flush(); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
