package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jubalh/rip2/internal/graveyard"
	"github.com/jubalh/rip2/internal/usecase"
)

var (
	inspectTitleStyle   = lipgloss.NewStyle().Bold(true)
	inspectPreviewStyle = lipgloss.NewStyle().Faint(true)
)

func buryTargets(ctx context.Context, yard *usecase.Graveyard, targets []string) error {
	for _, target := range targets {
		if _, err := yard.Bury(ctx, target); err != nil {
			return err
		}
	}
	return nil
}

func inspectTargets(ctx context.Context, cmd *cobra.Command, yard *usecase.Graveyard, p *prompter, targets []string, lines int) error {
	for _, target := range targets {
		info, err := yard.Inspect(target, lines)
		if err != nil {
			return fmt.Errorf("cannot inspect %s: %w", target, err)
		}
		printInspect(cmd.OutOrStdout(), info)

		ok, err := p.confirm(fmt.Sprintf("Send %s to the graveyard?", target))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Skipped %s\n", target)
			continue
		}
		if _, err := yard.Bury(ctx, target); err != nil {
			return err
		}
	}
	return nil
}

func printInspect(w io.Writer, info *graveyard.Info) {
	fmt.Fprintln(w, inspectTitleStyle.Render(info.Path))

	switch info.Kind {
	case graveyard.KindDir:
		fmt.Fprintf(w, "%s: %d files, %s\n", info.Kind, info.Files, info.HumanSize())
	case graveyard.KindSymlink:
		fmt.Fprintf(w, "%s -> %s\n", info.Kind, info.LinkTarget)
	case graveyard.KindFile:
		fmt.Fprintf(w, "%s: %s\n", info.Kind, info.HumanSize())
		if info.Binary {
			fmt.Fprintln(w, "(binary content not shown)")
		} else if len(info.Preview) > 0 {
			fmt.Fprintln(w, inspectPreviewStyle.Render(strings.Join(info.Preview, "\n")))
		}
	default:
		fmt.Fprintf(w, "%s\n", info.Kind)
	}
}
