package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jubalh/rip2/internal/database"
	"github.com/jubalh/rip2/internal/usecase"
)

func seance(ctx context.Context, cmd *cobra.Command, yard *usecase.Graveyard) error {
	dir, err := workingDir()
	if err != nil {
		return err
	}

	graves, err := yard.Seance(ctx, dir)
	if err != nil {
		return err
	}
	if len(graves) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No graves from %s\n", dir)
		return nil
	}

	outputSeanceTable(cmd, graves, getTerminalWidth())
	return nil
}

func getTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// pathWidths splits the space left after the date column between the
// original and grave paths, giving each at least 20 columns.
func pathWidths(termWidth int, graves []database.GraveRecord) (int, int) {
	const (
		createdWidth  = 19 // "2006-01-02 15:04:05"
		borderPadding = 10
		minWidth      = 20
	)

	maxOriginal, maxGrave := 0, 0
	for _, g := range graves {
		maxOriginal = max(maxOriginal, runewidth.StringWidth(g.OriginalPath))
		maxGrave = max(maxGrave, runewidth.StringWidth(g.GravePath))
	}

	available := termWidth - createdWidth - borderPadding
	if maxOriginal+maxGrave <= available {
		return max(maxOriginal, minWidth), max(maxGrave, minWidth)
	}

	originalWidth := max(min(maxOriginal, available/2), minWidth)
	graveWidth := max(available-originalWidth, minWidth)
	return originalWidth, graveWidth
}

func outputSeanceTable(cmd *cobra.Command, graves []database.GraveRecord, termWidth int) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)

	originalWidth, graveWidth := pathWidths(termWidth, graves)

	t.AppendHeader(table.Row{"Buried", "Original", "Grave"})
	for _, g := range graves {
		t.AppendRow(table.Row{
			g.BuriedAt.Local().Format("2006-01-02 15:04:05"),
			truncateLeft(g.OriginalPath, originalWidth),
			truncateLeft(g.GravePath, graveWidth),
		})
	}

	t.Render()
}

// truncateLeft keeps the end of a path, which is the part that identifies it.
func truncateLeft(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for i := range runes {
		tail := string(runes[i:])
		if runewidth.StringWidth(tail)+3 <= width {
			return "..." + tail
		}
	}
	return runewidth.Truncate(s, width, "...")
}
