package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zostay/headerfix/internal/batch"
	"github.com/zostay/headerfix/internal/logger"
)

var (
	fixOutput  string
	fixInPlace bool
)

var fixCmd = &cobra.Command{
	Use:   "fix [message...]",
	Short: "Repairs messages and prints the result",
	Long: `Repairs each named message, or standard input if none is named, and
writes the repaired messages to standard output. Use --output to write to a
file instead, or --in-place to replace each message with its repair.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().StringVarP(&fixOutput, "output", "o", "", "write the repaired message to this file")
	fixCmd.Flags().BoolVarP(&fixInPlace, "in-place", "i", false, "replace each message with its repair")
	rootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	switch {
	case fixInPlace && fixOutput != "":
		return errors.New("--in-place and --output cannot be used together")
	case fixInPlace && len(args) == 0:
		return errors.New("--in-place needs at least one file")
	case fixOutput != "" && len(args) > 1:
		return errors.New("--output can only be used with a single message")
	}

	for _, path := range inputArgs(args) {
		_, res, err := repairInput(cmd, path)
		if err != nil {
			return fmt.Errorf("%s: %w", displayName(path), err)
		}

		logger.Info("%s: %d blank lines removed, %d folds repaired",
			displayName(path), res.Collapsed, res.RepairedFolds)

		switch {
		case fixInPlace:
			if !res.Changed() {
				continue
			}
			err = batch.WriteFile(path, res.Text)
		case fixOutput != "":
			err = batch.WriteFile(fixOutput, res.Text)
		default:
			_, err = cmd.OutOrStdout().Write(res.Text)
		}

		if err != nil {
			return err
		}
	}

	return nil
}
