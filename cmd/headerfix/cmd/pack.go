package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zostay/headerfix/internal/logger"
	"github.com/zostay/headerfix/mailbox"
	"github.com/zostay/headerfix/repair"
)

var (
	packOutput string
	packStrict bool
)

var packCmd = &cobra.Command{
	Use:   "pack message...",
	Short: "Repairs messages and collects them into an mbox file",
	Long: `Repairs each named message and writes them all to a new mbox file, or
standard output. The separator line of each entry is built from the message's
Return-Path or From field and its Date field. Messages that cannot be repaired
are packed unchanged unless --strict is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPack,
}

func init() {
	packCmd.Flags().StringVarP(&packOutput, "output", "o", "", "mbox file to write")
	packCmd.Flags().BoolVar(&packStrict, "strict", false, "stop at the first message that cannot be repaired")
	rootCmd.AddCommand(packCmd)
}

func runPack(cmd *cobra.Command, args []string) error {
	if packOutput == "" || packOutput == "-" {
		return packMessages(cmd, cmd.OutOrStdout(), args)
	}

	return writeOutput(packOutput, func(w io.Writer) error {
		return packMessages(cmd, w, args)
	})
}

func packMessages(cmd *cobra.Command, w io.Writer, paths []string) error {
	mw := mailbox.NewWriter(w)
	for _, path := range paths {
		raw, res, err := repairInput(cmd, path)

		var mhe *repair.MalformedHeaderError
		text := raw
		switch {
		case errors.As(err, &mhe) && !packStrict:
			logger.Warn("%s packed unchanged: %v", displayName(path), err)
		case err != nil:
			return fmt.Errorf("%s: %w", displayName(path), err)
		default:
			text = res.Text
		}

		if err := mw.Add(text); err != nil {
			return err
		}
	}

	return mw.Close()
}
