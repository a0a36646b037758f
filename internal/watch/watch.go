// Package watch repairs messages as they are dropped into a directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/zostay/headerfix/internal/batch"
	"github.com/zostay/headerfix/internal/logger"
	"github.com/zostay/headerfix/repair"
)

// ErrSameDir is returned when the output directory is the watched directory.
// Writing repaired files back into the watched directory would trigger another
// repair of each file.
var ErrSameDir = errors.New("output directory must differ from the watched directory")

// Watcher repairs each regular file created or written in a directory and
// writes the result to an output directory under the same name.
type Watcher struct {
	dir    string
	outDir string
	fixer  *repair.Fixer

	// OnResult, if set, is called after each repair attempt.
	OnResult func(batch.Result)

	fsw *fsnotify.Watcher
}

// New starts watching dir. The caller must call Close when finished.
func New(dir, outDir string, f *repair.Fixer) (*Watcher, error) {
	if f == nil {
		f = repair.New()
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return nil, err
	}

	if absDir == absOut {
		return nil, ErrSameDir
	}

	if err := os.MkdirAll(absOut, 0o755); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(absDir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{
		dir:    absDir,
		outDir: absOut,
		fixer:  f,
		fsw:    fsw,
	}, nil
}

// Run handles events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			r, ok := w.handleEvent(ev)
			if !ok {
				continue
			}

			if r.Err != nil {
				logger.Debug("%s: %v", filepath.Base(r.Src), r.Err)
			} else {
				logger.Debug("%s: %d blank lines removed", filepath.Base(r.Src), r.Collapsed)
			}

			if w.OnResult != nil {
				w.OnResult(r)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch %s: %v", w.dir, err)
		}
	}
}

// handleEvent repairs the file named by ev. It reports false for events that
// are ignored: anything other than create or write, directories, hidden files
// and files that vanished before they could be read.
func (w *Watcher) handleEvent(ev fsnotify.Event) (batch.Result, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return batch.Result{}, false
	}

	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, ".") {
		return batch.Result{}, false
	}

	info, err := os.Stat(ev.Name)
	if err != nil || !info.Mode().IsRegular() {
		return batch.Result{}, false
	}

	job := batch.Job{Src: ev.Name, Dst: filepath.Join(w.outDir, name)}
	return batch.Process(w.fixer, job, false), true
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
