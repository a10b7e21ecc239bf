package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	ripargs "github.com/jubalh/rip2/internal/args"
	"github.com/jubalh/rip2/internal/config"
	"github.com/jubalh/rip2/internal/ctxlog"
	"github.com/jubalh/rip2/internal/database"
	"github.com/jubalh/rip2/internal/usecase"
)

type rootFlags struct {
	graveyard   string
	decompose   bool
	force       bool
	seance      bool
	unbury      bool
	inspect     bool
	completions string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "rip [TARGET]...",
		Short: "rip: a safe and ergonomic alternative to rm",
		Long: `rip moves files and directories into a graveyard instead of deleting them.
Buried items can be listed with --seance, restored with --unbury, and
permanently removed with --decompose.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, args)

			mode, err := ripargs.Resolve(opts)
			if err != nil {
				return err
			}
			return run(cmd, mode, opts)
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.Flags().StringVar(&flags.graveyard, "graveyard", "", "Directory where deleted files rest")
	cmd.Flags().BoolVarP(&flags.decompose, "decompose", "d", false, "Permanently deletes the graveyard")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Deletes the graveyard without confirmation")
	cmd.Flags().BoolVarP(&flags.seance, "seance", "s", false, "Prints files that were deleted in the current working directory")
	cmd.Flags().BoolVarP(&flags.unbury, "unbury", "u", false, "Restore the specified files or the last file if none are specified")
	cmd.Flags().BoolVarP(&flags.inspect, "inspect", "i", false, "Print some info about TARGET before burying")
	cmd.Flags().StringVar(&flags.completions, "completions", "", "Generate shell completions file for the specified shell")

	_ = cmd.RegisterFlagCompletionFunc("completions", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return supportedShells, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.MarkFlagDirname("graveyard")

	return cmd
}

// options converts parsed flags into an option set. Optional values are set
// only when the flag was given; with --unbury the positional arguments name
// what to restore instead of what to bury.
func (f *rootFlags) options(cmd *cobra.Command, args []string) ripargs.Options {
	opts := ripargs.Default()
	opts.Decompose = f.decompose
	opts.Force = f.force
	opts.Seance = f.seance
	opts.Inspect = f.inspect

	if cmd.Flags().Changed("graveyard") {
		opts.Graveyard = ripargs.StringPtr(f.graveyard)
	}
	if cmd.Flags().Changed("completions") {
		opts.Completions = ripargs.StringPtr(f.completions)
	}

	if f.unbury {
		opts.Unbury = ripargs.RestoreSpecific(args...)
	} else {
		opts.Targets = append([]string(nil), args...)
	}

	return opts
}

func run(cmd *cobra.Command, mode ripargs.Mode, opts ripargs.Options) error {
	switch mode {
	case ripargs.ModeHelp:
		return cmd.Help()
	case ripargs.ModeCompletions:
		return writeCompletions(cmd.Root(), *opts.Completions, cmd.OutOrStdout())
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := ctxlog.New(cmd.ErrOrStderr(), cfg.GetLogLevel())
	ctx = ctxlog.WithLogger(ctx, logger)

	root := cfg.GetGraveyard(opts.Graveyard)
	logger.Debug("resolved mode", "mode", mode.String(), "graveyard", root)

	dbCtx, err := database.CreateDatabase(config.RecordPath(root))
	if err != nil {
		return err
	}
	defer func() {
		_ = database.CloseDatabase(dbCtx)
	}()

	yard := usecase.NewGraveyard(root, dbCtx)
	p := newPrompter(cmd)

	switch mode {
	case ripargs.ModeBury:
		return buryTargets(ctx, yard, opts.Targets)
	case ripargs.ModeInspect:
		return inspectTargets(ctx, cmd, yard, p, opts.Targets, cfg.InspectLines)
	case ripargs.ModeUnbury:
		return unbury(ctx, cmd, yard, opts)
	case ripargs.ModeSeance:
		return seance(ctx, cmd, yard)
	case ripargs.ModeDecompose:
		return decompose(ctx, cmd, yard, p, opts.Force)
	default:
		return fmt.Errorf("unhandled mode: %s", mode)
	}
}

func workingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine current directory: %w", err)
	}
	return dir, nil
}
