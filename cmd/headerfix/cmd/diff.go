package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zostay/headerfix/internal/textdiff"
)

var diffContext int

var diffCmd = &cobra.Command{
	Use:   "diff [message]",
	Short: "Shows the changes a repair would make",
	Long: `Repairs the named message, or standard input, and prints a line diff of
the original against the repair. Line endings are shown as \r and \n so that
changes to them are visible.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().IntVarP(&diffContext, "context", "U", 3, "lines of context around each change, or -1 for all")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	path := inputArgs(args)[0]

	raw, res, err := repairInput(cmd, path)
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(path), err)
	}

	if !res.Changed() {
		return nil
	}

	return textdiff.Render(cmd.OutOrStdout(), string(raw), string(res.Text), diffContext)
}
