// Package textdiff renders the difference between a message and its repaired
// form. Line breaks are what changes, so they are shown escaped at the end of
// every line.
package textdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of change a Line represents.
type Op int

// The kinds of lines in a diff.
const (
	Equal Op = iota
	Delete
	Insert
)

var opPrefix = map[Op]string{
	Equal:  " ",
	Delete: "-",
	Insert: "+",
}

// Line is one line of a diff, including its line break.
type Line struct {
	Op   Op
	Text string
}

// Lines compares before and after line by line.
func Lines(before, after string) []Line {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var out []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = Delete
		case diffmatchpatch.DiffInsert:
			op = Insert
		}

		for _, l := range splitLines(d.Text) {
			out = append(out, Line{op, l})
		}
	}

	return out
}

func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Stats counts the deleted and inserted lines.
func Stats(lines []Line) (deleted, inserted int) {
	for _, l := range lines {
		switch l.Op {
		case Delete:
			deleted++
		case Insert:
			inserted++
		}
	}
	return
}

var visible = strings.NewReplacer("\r", `\r`, "\n", `\n`)

// Render writes the diff of before and after to w. Unchanged lines more than
// context lines away from a change are replaced by a single "..." marker. A
// negative context shows every line.
func Render(w io.Writer, before, after string, context int) error {
	lines := Lines(before, after)

	show := make([]bool, len(lines))
	for i, l := range lines {
		if l.Op == Equal && context >= 0 {
			continue
		}

		show[i] = true
		if l.Op == Equal {
			continue
		}

		for j := i - context; j <= i+context; j++ {
			if j >= 0 && j < len(lines) {
				show[j] = true
			}
		}
	}

	skipping := false
	for i, l := range lines {
		if !show[i] {
			if !skipping {
				if _, err := fmt.Fprintln(w, "..."); err != nil {
					return err
				}
			}
			skipping = true
			continue
		}

		skipping = false
		if _, err := fmt.Fprintf(w, "%s%s\n", opPrefix[l.Op], visible.Replace(l.Text)); err != nil {
			return err
		}
	}

	return nil
}
