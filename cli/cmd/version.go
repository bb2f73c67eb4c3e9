package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/glass/pkg"
)

// Version prints the module version.
type Version struct{}

// Run executes the version command.
func (Version) Run(ctx context.Context) error {
	if _, err := fmt.Fprintln(IOFrom(ctx).Out, pkg.Version); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
