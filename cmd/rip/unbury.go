package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	ripargs "github.com/jubalh/rip2/internal/args"
	"github.com/jubalh/rip2/internal/usecase"
)

func unbury(ctx context.Context, cmd *cobra.Command, yard *usecase.Graveyard, opts ripargs.Options) error {
	var (
		restored []usecase.Restored
		err      error
	)

	if opts.Seance {
		dir, dirErr := workingDir()
		if dirErr != nil {
			return dirErr
		}
		restored, err = yard.UnburyUnder(ctx, dir, opts.Unbury.Paths()...)
	} else {
		restored, err = yard.Unbury(ctx, opts.Unbury.Paths())
	}

	// report what was restored even when a later grave failed
	for _, r := range restored {
		fmt.Fprintf(cmd.OutOrStdout(), "Returned %s to %s\n", r.Grave.GravePath, r.Destination)
	}
	return err
}
