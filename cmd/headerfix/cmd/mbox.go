package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/zostay/headerfix/internal/logger"
	"github.com/zostay/headerfix/mailbox"
)

var mboxStrict bool

var mboxCmd = &cobra.Command{
	Use:   "mbox [input [output]]",
	Short: "Repairs every message in an mbox file",
	Long: `Reads an mbox file, or standard input, repairs each message and writes
the repaired mbox to output, or standard output. Messages that cannot be
repaired are copied unchanged unless --strict is given.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runMbox,
}

func init() {
	mboxCmd.Flags().BoolVar(&mboxStrict, "strict", false, "stop at the first message that cannot be repaired")
	rootCmd.AddCommand(mboxCmd)
}

func runMbox(cmd *cobra.Command, args []string) error {
	in := "-"
	if len(args) > 0 {
		in = args[0]
	}

	r, err := openInput(cmd, in)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	opts := []mailbox.Option{
		mailbox.WithFixer(fixer),
		mailbox.WithLogf(logger.Warn),
	}
	if mboxStrict {
		opts = append(opts, mailbox.WithStrict())
	}

	if len(args) < 2 || args[1] == "-" {
		return fixMbox(cmd.OutOrStdout(), r, opts)
	}

	return writeOutput(args[1], func(w io.Writer) error {
		return fixMbox(w, r, opts)
	})
}

func fixMbox(w io.Writer, r io.Reader, opts []mailbox.Option) error {
	stats, err := mailbox.Fix(w, r, opts...)
	if err != nil {
		return err
	}

	logger.Info("%d messages: %d repaired, %d unchanged, %d malformed, %d blank lines removed",
		stats.Messages, stats.Repaired, stats.Unchanged, stats.Malformed, stats.Collapsed)
	return nil
}
