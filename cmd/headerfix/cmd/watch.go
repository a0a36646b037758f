package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/zostay/headerfix/internal/batch"
	"github.com/zostay/headerfix/internal/logger"
	"github.com/zostay/headerfix/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch dir output-dir",
	Short: "Repairs messages as they arrive in a directory",
	Long: `Watches dir and repairs each file created or written there, saving the
repair under the same name in output-dir. Runs until interrupted.`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	w, err := watch.New(args[0], args[1], fixer)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	w.OnResult = func(r batch.Result) { printResult(cmd, r) }

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Info("watching %s", args[0])
	return w.Run(ctx)
}
