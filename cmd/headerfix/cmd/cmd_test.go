package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/headerfix/internal/logger"
	"github.com/zostay/headerfix/internal/watch"
	"github.com/zostay/headerfix/repair"
)

const (
	damaged   = "From: a@example.com\n\nTo: b@example.com\n\nSubject: hi\n\nBody\n"
	repaired  = "From: a@example.com\nTo: b@example.com\nSubject: hi\n\nBody\n"
	malformed = "From: a\nTo: b\nBody\n"
)

func resetFlags() {
	configPath, verbose = "", false
	fixOutput, fixInPlace = "", false
	checkVerify, checkFailOnRepair = false, false
	diffContext = 3
	inspectRaw = false
	mboxStrict = false
	packOutput, packStrict = "", false
	batchOutDir, batchWorkers, batchDryRun = "", 0, false
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	resetFlags()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		logger.SetOutput(os.Stderr)
		logger.SetVerbose(false)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestFixCmd_Stdin(t *testing.T) {
	out, _, err := execute(t, damaged, "fix")
	require.NoError(t, err)
	assert.Equal(t, repaired, out)
}

func TestFixCmd_Verbose(t *testing.T) {
	_, errOut, err := execute(t, damaged, "fix", "-v")
	require.NoError(t, err)
	assert.Contains(t, errOut, "[INFO] <stdin>: 2 blank lines removed, 0 folds repaired")
}

func TestFixCmd_Output(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.eml", damaged)
	dst := filepath.Join(dir, "out.eml")

	out, _, err := execute(t, "", "fix", "-o", dst, in)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, repaired, readFile(t, dst))
	assert.Equal(t, damaged, readFile(t, in))
}

func TestFixCmd_InPlace(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.eml", damaged)
	b := writeFile(t, dir, "b.eml", repaired)

	_, _, err := execute(t, "", "fix", "--in-place", a, b)
	require.NoError(t, err)
	assert.Equal(t, repaired, readFile(t, a))
	assert.Equal(t, repaired, readFile(t, b))
}

func TestFixCmd_BadFlags(t *testing.T) {
	_, _, err := execute(t, "", "fix", "--in-place", "-o", "x", "a")
	assert.Error(t, err)

	_, _, err = execute(t, "", "fix", "--in-place")
	assert.Error(t, err)

	_, _, err = execute(t, "", "fix", "-o", "x", "a", "b")
	assert.Error(t, err)
}

func TestFixCmd_Malformed(t *testing.T) {
	out, _, err := execute(t, malformed, "fix")
	assert.ErrorIs(t, err, repair.ErrMalformedHeader)
	assert.Empty(t, out)
}

func TestCheckCmd(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.eml", repaired)
	bad := writeFile(t, dir, "bad.eml", malformed)
	needs := writeFile(t, dir, "needs.eml", damaged)

	out, _, err := execute(t, "", "check", good, needs)
	require.NoError(t, err)
	assert.Contains(t, out, good+": ok\n")
	assert.Contains(t, out, needs+": needs repair: 2 blank lines, 0 split folds\n")

	_, _, err = execute(t, "", "check", "--fail-on-repair", good, needs)
	assert.ErrorIs(t, err, ErrCheckFailed)

	out, _, err = execute(t, "", "check", good, bad)
	assert.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, out, bad+": malformed header: missing blank line between header and body")
}

func TestCheckCmd_Verify(t *testing.T) {
	out, _, err := execute(t, damaged, "check", "--verify")
	require.NoError(t, err)
	assert.Equal(t, "<stdin>: needs repair: 2 blank lines, 0 split folds\n", out)
}

func TestDiffCmd(t *testing.T) {
	out, _, err := execute(t, "From: a\n\nTo: b\n\nBody\n", "diff")
	require.NoError(t, err)
	assert.Equal(t, " From: a\\n\n-\\n\n To: b\\n\n \\n\n Body\\n\n", out)

	out, _, err = execute(t, repaired, "diff")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestInspectCmd(t *testing.T) {
	out, _, err := execute(t, damaged, "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "From, Subject, To")
	assert.Contains(t, out, "Subject:      hi\n")
	assert.Contains(t, out, "2 blank lines removed")

	out, _, err = execute(t, damaged, "inspect", "--raw")
	require.NoError(t, err)
	assert.NotContains(t, out, "Subject:")

	out, _, err = execute(t, "X-Unknown: a\n\nBody\n", "inspect", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "X-Unknown")
	assert.NotContains(t, out, "Repair:")

	_, _, err = execute(t, malformed, "inspect")
	assert.ErrorIs(t, err, repair.ErrMalformedHeader)
}

const (
	sepA = "From someone@example.com Tue May  2 09:15:00 2017\n"
	sepB = "From other@example.com Wed May  3 10:00:00 2017\n"
)

func TestMboxCmd(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.mbox", sepA+damaged+"\n"+sepB+malformed+"\n")
	dst := filepath.Join(dir, "out.mbox")

	_, _, err := execute(t, "", "mbox", in, dst)
	require.NoError(t, err)
	assert.Equal(t, sepA+repaired+"\n"+sepB+malformed+"\n", readFile(t, dst))

	_, _, err = execute(t, "", "mbox", dst, filepath.Join(dir, "again.mbox"))
	require.NoError(t, err)
	assert.Equal(t, readFile(t, dst), readFile(t, filepath.Join(dir, "again.mbox")))

	_, _, err = execute(t, "", "mbox", "--strict", in, filepath.Join(dir, "strict.mbox"))
	assert.ErrorIs(t, err, repair.ErrMalformedHeader)
	assert.NoFileExists(t, filepath.Join(dir, "strict.mbox"))
}

func TestMboxCmd_Stdout(t *testing.T) {
	crlf := strings.NewReplacer("\n", "\r\n")
	out, _, err := execute(t, crlf.Replace(sepA+damaged+"\n"), "mbox")
	require.NoError(t, err)
	assert.Equal(t, crlf.Replace(sepA+repaired+"\n"), out)
}

func TestPackCmd(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.eml", "From: a@example.com\n\nDate: Tue, 2 May 2017 09:15:00 +0000\n\nSubject: hi\n\nBody\n")
	bad := writeFile(t, dir, "bad.eml", malformed)
	dst := filepath.Join(dir, "out.mbox")

	_, errOut, err := execute(t, "", "pack", "-o", dst, a, bad)
	require.NoError(t, err)
	assert.Contains(t, errOut, bad)
	got := readFile(t, dst)
	first := "From a@example.com Tue May  2 09:15:00 2017\n" +
		"From: a@example.com\nDate: Tue, 2 May 2017 09:15:00 +0000\nSubject: hi\n\nBody\n\n"
	require.True(t, strings.HasPrefix(got, first), got)

	rest := strings.TrimPrefix(got, first)
	assert.True(t, strings.HasPrefix(rest, "From MAILER-DAEMON "), rest)
	assert.True(t, strings.HasSuffix(rest, "\n"+malformed+"\n"), rest)

	_, _, err = execute(t, "", "pack", "--strict", "-o", filepath.Join(dir, "strict.mbox"), a, bad)
	assert.ErrorIs(t, err, repair.ErrMalformedHeader)
	assert.NoFileExists(t, filepath.Join(dir, "strict.mbox"))
}

func TestBatchCmd(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "a.eml", damaged)
	writeFile(t, src, "b.eml", repaired)

	out, _, err := execute(t, "", "batch", "-o", dst, "-j", "2", src)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dst, "a.eml")+": repaired, 2 blank lines removed\n")
	assert.Contains(t, out, "2 files, 1 repaired, 0 failed, 2 blank lines removed\n")
	assert.Equal(t, repaired, readFile(t, filepath.Join(dst, "a.eml")))
	assert.Equal(t, repaired, readFile(t, filepath.Join(dst, "b.eml")))

	writeFile(t, src, "c.eml", malformed)
	out, _, err = execute(t, "", "batch", "--dry-run", src)
	assert.Error(t, err)
	assert.Contains(t, out, filepath.Join(src, "a.eml")+": needs repair, 2 blank lines\n")
	assert.Contains(t, out, "3 files, 1 repaired, 1 failed, 2 blank lines removed\n")
	assert.Equal(t, damaged, readFile(t, filepath.Join(src, "a.eml")))
}

func TestWatchCmd_SameDir(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, "", "watch", dir, dir)
	assert.ErrorIs(t, err, watch.ErrSameDir)
}

func TestHeadersCmd(t *testing.T) {
	out, _, err := execute(t, "", "headers")
	require.NoError(t, err)
	assert.Contains(t, out, "From\n")
	assert.NotContains(t, out, "X-Mailer-Flavor\n")

	conf := writeFile(t, t.TempDir(), "headerfix.toml", "headers = [\"X-Mailer-Flavor\"]\n")
	out, _, err = execute(t, "", "headers", "--config", conf)
	require.NoError(t, err)
	assert.Contains(t, out, "From\n")
	assert.Contains(t, out, "X-Mailer-Flavor\n")
}

func TestRootCmd_BadConfig(t *testing.T) {
	conf := writeFile(t, t.TempDir(), "headerfix.toml", "no_such_setting = 1\n")
	_, _, err := execute(t, damaged, "fix", "--config", conf)
	assert.Error(t, err)
}
