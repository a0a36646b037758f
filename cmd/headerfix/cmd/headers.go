package cmd

import (
	"github.com/spf13/cobra"
)

var headersCmd = &cobra.Command{
	Use:   "headers",
	Short: "Lists the header field names that are recognized",
	Long: `Lists the header field names used to tell a header field from body text,
including any added by the configuration file.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, name := range fixer.Registry().Names() {
			outf(cmd, "%s\n", name)
		}
	},
}

func init() {
	rootCmd.AddCommand(headersCmd)
}
