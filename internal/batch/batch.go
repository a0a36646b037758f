// Package batch repairs many message files at once. Each file is an
// independent input, so files are processed in parallel by a bounded pool of
// workers.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/zostay/headerfix/repair"
)

// Job names a file to repair and where to write the result. When Dst equals
// Src, the file is replaced in place.
type Job struct {
	Src string
	Dst string
}

// Result is the outcome of one Job.
type Result struct {
	Job
	Changed   bool  // the repair altered the message
	Collapsed int   // blank lines removed
	Written   bool  // Dst was written
	Err       error // malformed header or I/O failure
}

// Options control a batch run.
type Options struct {
	// Fixer repairs each file. Defaults to repair.New().
	Fixer *repair.Fixer

	// Workers is the number of files processed at once. Defaults to the number
	// of CPUs.
	Workers int

	// DryRun repairs in memory only and writes nothing.
	DryRun bool

	// OnResult, if set, is called as each file finishes. Calls may come from
	// several goroutines at once.
	OnResult func(Result)
}

// Plan expands paths into jobs. Directories are walked recursively, skipping
// hidden files and directories. If outDir is empty, every job repairs its file
// in place. Otherwise, results are written below outDir, keeping the layout of
// each directory argument.
func Plan(paths []string, outDir string) ([]Job, error) {
	var jobs []Job
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			jobs = append(jobs, Job{Src: p, Dst: dest(outDir, filepath.Base(p), p)})
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if path != p && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}

			rel, err := filepath.Rel(p, path)
			if err != nil {
				return err
			}

			jobs = append(jobs, Job{Src: path, Dst: dest(outDir, rel, path)})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return jobs, nil
}

func dest(outDir, rel, src string) string {
	if outDir == "" {
		return src
	}
	return filepath.Join(outDir, rel)
}

// Process repairs a single job. A malformed message is reported in the
// Result and nothing is written for it.
func Process(f *repair.Fixer, job Job, dryRun bool) Result {
	r := Result{Job: job}

	in, err := os.Open(job.Src)
	if err != nil {
		r.Err = err
		return r
	}

	res, err := f.FixReader(in)
	_ = in.Close()
	if err != nil {
		r.Err = fmt.Errorf("%s: %w", job.Src, err)
		return r
	}

	r.Changed = res.Changed()
	r.Collapsed = res.Collapsed

	if dryRun || (!r.Changed && job.Dst == job.Src) {
		return r
	}

	if err := WriteFile(job.Dst, res.Text); err != nil {
		r.Err = err
		return r
	}
	r.Written = true

	return r
}

// WriteFile writes data to path by way of a temporary file in the same
// directory, so readers never see a half-written message.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".headerfix-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
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

// Run processes the jobs and returns their results in the same order. Per-file
// failures are reported in each Result. The returned error is only set if ctx
// is canceled before every job has run.
func Run(ctx context.Context, jobs []Job, opts Options) ([]Result, error) {
	if opts.Fixer == nil {
		opts.Fixer = repair.New()
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}

	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, job := range jobs {
		i, job := i, job // per-iteration copies; go directive is below 1.22
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = Process(opts.Fixer, job, opts.DryRun)
			if opts.OnResult != nil {
				opts.OnResult(results[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	if err := ctx.Err(); err != nil {
		return results, err
	}

	return results, nil
}

// Summary totals a set of results.
type Summary struct {
	Files     int
	Changed   int
	Failed    int
	Collapsed int
}

// Summarize totals results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		s.Files++
		if r.Err != nil {
			s.Failed++
			continue
		}
		if r.Changed {
			s.Changed++
		}
		s.Collapsed += r.Collapsed
	}
	return s
}
