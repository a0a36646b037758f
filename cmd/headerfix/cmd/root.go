package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zostay/headerfix/internal/config"
	"github.com/zostay/headerfix/internal/logger"
	"github.com/zostay/headerfix/repair"
)

var (
	configPath string
	verbose    bool

	cfg   *config.Config
	fixer *repair.Fixer
)

var rootCmd = &cobra.Command{
	Use:   "headerfix",
	Short: "Repairs email headers broken up by doubled newlines",
	Long: `Some mail software writes a blank line after every header field, which
makes everything after the first field look like the message body. headerfix
removes those blank lines, keeping only the one that really separates the
header from the body.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (default "+config.DefaultFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "report what is done to each message")
}

func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if verbose {
		c.Verbose = true
	}

	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetVerbose(c.Verbose)

	f, err := c.Fixer()
	if err != nil {
		return err
	}

	cfg, fixer = c, f
	return nil
}

// Execute runs the headerfix command.
func Execute() error {
	return rootCmd.Execute()
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}

func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(path)
}

// repairInput reads the message at path, or standard input for "-", and
// repairs it. The raw message is returned even when the repair fails.
func repairInput(cmd *cobra.Command, path string) ([]byte, *repair.Result, error) {
	in, err := openInput(cmd, path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = in.Close() }()

	raw := &bytes.Buffer{}
	res, err := fixer.FixReader(io.TeeReader(in, raw))
	return raw.Bytes(), res, err
}

func inputArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func outf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

// writeOutput writes to a temporary file beside path and renames it into place
// once write succeeds. Nothing is left at path if write fails.
func writeOutput(path string, write func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".headerfix-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
