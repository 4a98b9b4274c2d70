package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// MaxDiffLines bounds preview size; larger inputs are reported as truncated.
const MaxDiffLines = 2000

type Line struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

const (
	LineContext = "context"
	LineAdded   = "added"
	LineRemoved = "removed"
)

// Lines computes a line-level diff between before and after.
func Lines(before, after string) []Line {
	enc := newLineEncoder()
	beforeRunes := enc.encode(before)
	afterRunes := enc.encode(after)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(beforeRunes, afterRunes, false)

	var lines []Line
	for _, d := range diffs {
		for _, r := range d.Text {
			text := enc.decode(r)
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				lines = append(lines, Line{Type: LineContext, Text: text})
			case diffmatchpatch.DiffDelete:
				lines = append(lines, Line{Type: LineRemoved, Text: text})
			case diffmatchpatch.DiffInsert:
				lines = append(lines, Line{Type: LineAdded, Text: text})
			}
		}
	}
	return lines
}

// lineEncoder maps each distinct line to one rune so the character diff
// compares whole lines. go-diff's own line encoding joins decimal indices
// with commas, which a character diff splits once there are ten lines.
type lineEncoder struct {
	index map[string]rune
	lines []string
}

func newLineEncoder() *lineEncoder {
	return &lineEncoder{index: make(map[string]rune)}
}

func (e *lineEncoder) encode(text string) []rune {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	out := make([]rune, 0, len(parts))
	for _, line := range parts {
		r, ok := e.index[line]
		if !ok {
			r = lineRune(len(e.lines))
			e.index[line] = r
			e.lines = append(e.lines, line)
		}
		out = append(out, r)
	}
	return out
}

func (e *lineEncoder) decode(r rune) string {
	if r >= 0xE000 {
		r -= 0x800
	}
	i := int(r) - 1
	if i < 0 || i >= len(e.lines) {
		return ""
	}
	return e.lines[i]
}

// lineRune skips NUL and the surrogate block, which do not survive a
// rune-to-string round trip.
func lineRune(i int) rune {
	r := rune(i + 1)
	if r >= 0xD800 {
		r += 0x800
	}
	return r
}

// Unified renders a diff of path with +/- prefixes and up to context
// unchanged lines around each change. Elided runs are marked with "@@".
func Unified(path, before, after string, context, maxLines int) (string, bool) {
	if maxLines <= 0 {
		maxLines = MaxDiffLines
	}
	if lineCount(before)+lineCount(after) > maxLines {
		return fmt.Sprintf("--- a/%s\n+++ b/%s\n@@ diff too large (%d lines) @@\n", path, path, lineCount(before)+lineCount(after)), true
	}

	lines := Lines(before, after)
	keep := make([]bool, len(lines))
	for i, line := range lines {
		if line.Type == LineContext {
			continue
		}
		for j := i - context; j <= i+context; j++ {
			if j >= 0 && j < len(lines) {
				keep[j] = true
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	skipped := false
	for i, line := range lines {
		if !keep[i] {
			skipped = true
			continue
		}
		if skipped {
			b.WriteString("@@\n")
			skipped = false
		}
		switch line.Type {
		case LineAdded:
			b.WriteString("+" + line.Text + "\n")
		case LineRemoved:
			b.WriteString("-" + line.Text + "\n")
		default:
			b.WriteString(" " + line.Text + "\n")
		}
	}
	return b.String(), false
}

func lineCount(value string) int {
	if value == "" {
		return 0
	}
	return strings.Count(value, "\n") + 1
}
