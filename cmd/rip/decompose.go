package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jubalh/rip2/internal/usecase"
)

func decompose(ctx context.Context, cmd *cobra.Command, yard *usecase.Graveyard, p *prompter, force bool) error {
	if !force {
		contents, err := yard.Contents()
		if err != nil {
			return err
		}
		graves, err := yard.Recorded(ctx)
		if err != nil {
			return err
		}
		message := fmt.Sprintf("Really unlink the entire graveyard at %s (%d entries, %d recorded graves)?", yard.Root(), len(contents), graves)
		ok, err := p.confirm(message)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Decompose cancelled")
			return nil
		}
	}

	count, err := yard.Decompose(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Decomposed %d entries in %s\n", count, yard.Root())
	return nil
}
