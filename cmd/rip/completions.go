package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var supportedShells = []string{"bash", "zsh", "fish", "powershell"}

func writeCompletions(root *cobra.Command, shell string, w io.Writer) error {
	switch strings.ToLower(shell) {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell", "pwsh":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell: %s (valid values: %s)", shell, strings.Join(supportedShells, ", "))
	}
}
