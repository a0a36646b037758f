package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zostay/headerfix/inspect"
	"github.com/zostay/headerfix/repair"
)

var inspectRaw bool

var inspectCmd = &cobra.Command{
	Use:   "inspect [message]",
	Short: "Summarizes a message as a MIME parser sees it",
	Long: `Repairs the named message, or standard input, then parses the repaired
message and prints what the parser found. With --raw the message is parsed as
it is, which shows how a damaged header hides its fields.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectRaw, "raw", false, "parse the message without repairing it")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := inputArgs(args)[0]

	raw, res, err := repairInput(cmd, path)
	var mhe *repair.MalformedHeaderError
	if err != nil && !(inspectRaw && errors.As(err, &mhe)) {
		return fmt.Errorf("%s: %w", displayName(path), err)
	}

	text := raw
	if !inspectRaw {
		text = res.Text
	}

	s, err := inspect.Summarize(text)
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(path), err)
	}

	printSummary(cmd, s, res)
	return nil
}

func printSummary(cmd *cobra.Command, s *inspect.Summary, res *repair.Result) {
	line := func(label, value string) {
		if value != "" {
			outf(cmd, "%-13s %s\n", label+":", value)
		}
	}

	line("Fields", strings.Join(s.Fields, ", "))
	line("Subject", s.Subject)
	line("From", strings.Join(s.From, ", "))
	if !s.Date.IsZero() {
		line("Date", s.Date.Format(time.RFC1123Z))
	}
	line("Content-Type", s.ContentType)
	outf(cmd, "%-13s %d bytes\n", "Text:", s.TextLength)
	outf(cmd, "%-13s %d bytes\n", "HTML:", s.HTMLLength)
	outf(cmd, "%-13s %d\n", "Attachments:", s.Attachments)

	if res != nil {
		outf(cmd, "%-13s %d blank lines removed, %d folds repaired, %s boundary\n",
			"Repair:", res.Collapsed, res.RepairedFolds, res.Break.Name())
	}

	for _, w := range s.Warnings {
		line("Warning", w)
	}
}
