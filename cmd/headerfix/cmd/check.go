package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/headerfix/inspect"
	"github.com/zostay/headerfix/repair"
)

// ErrCheckFailed is returned by the check command when any message fails the
// check.
var ErrCheckFailed = errors.New("check failed")

var (
	checkVerify       bool
	checkFailOnRepair bool
)

var checkCmd = &cobra.Command{
	Use:   "check [message...]",
	Short: "Reports which messages need repair",
	Long: `Checks each named message, or standard input if none is named, and
reports whether its header needs repair. Nothing is written. The command fails
if any header is malformed, or, with --fail-on-repair, if any message needs
repair.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkVerify, "verify", false, "parse each repaired message and report fields the parser cannot see")
	checkCmd.Flags().BoolVar(&checkFailOnRepair, "fail-on-repair", false, "fail if any message needs repair")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range inputArgs(args) {
		name := displayName(path)

		_, res, err := repairInput(cmd, path)
		var mhe *repair.MalformedHeaderError
		switch {
		case errors.As(err, &mhe):
			outf(cmd, "%s: %v\n", name, err)
			failed++
			continue
		case err != nil:
			return fmt.Errorf("%s: %w", name, err)
		}

		if res.Changed() {
			outf(cmd, "%s: needs repair: %d blank lines, %d split folds\n",
				name, res.Collapsed, res.RepairedFolds)
			if checkFailOnRepair {
				failed++
			}
		} else {
			outf(cmd, "%s: ok\n", name)
		}

		if !checkVerify {
			continue
		}

		missing, err := inspect.Verify(res)
		if err != nil {
			outf(cmd, "%s: repaired message does not parse: %v\n", name, err)
			failed++
			continue
		}

		if len(missing) > 0 {
			outf(cmd, "%s: parser cannot see: %s\n", name, strings.Join(missing, ", "))
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d message(s)", ErrCheckFailed, failed)
	}

	return nil
}
