package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/zostay/headerfix/internal/batch"
)

var (
	batchOutDir  string
	batchWorkers int
	batchDryRun  bool
)

var batchCmd = &cobra.Command{
	Use:   "batch path...",
	Short: "Repairs many message files at once",
	Long: `Repairs every message file named, descending into directories. Files are
repaired in place unless --output names a directory to write them to. Hidden
files and directories are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutDir, "output", "o", "", "directory to write repaired files to")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "j", 0, "files to repair at once (default from configuration)")
	batchCmd.Flags().BoolVarP(&batchDryRun, "dry-run", "n", false, "report what would be repaired without writing anything")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	jobs, err := batch.Plan(args, batchOutDir)
	if err != nil {
		return err
	}

	workers := batchWorkers
	if workers <= 0 {
		workers = cfg.Workers
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, err := batch.Run(ctx, jobs, batch.Options{
		Fixer:   fixer,
		Workers: workers,
		DryRun:  batchDryRun,
	})
	if err != nil && ctx.Err() == nil {
		return err
	}

	for _, r := range results {
		printResult(cmd, r)
	}

	sum := batch.Summarize(results)
	outf(cmd, "%d files, %d repaired, %d failed, %d blank lines removed\n",
		sum.Files, sum.Changed, sum.Failed, sum.Collapsed)

	if err != nil {
		return err
	}

	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d files could not be repaired", sum.Failed, sum.Files)
	}

	return nil
}

func printResult(cmd *cobra.Command, r batch.Result) {
	switch {
	case r.Src == "":
		// not reached before cancellation
	case r.Err != nil:
		outf(cmd, "%v\n", r.Err)
	case r.Written:
		outf(cmd, "%s: repaired, %d blank lines removed\n", r.Dst, r.Collapsed)
	case r.Changed:
		outf(cmd, "%s: needs repair, %d blank lines\n", r.Src, r.Collapsed)
	}
}
