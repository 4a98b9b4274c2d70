package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopx-dev/templatize/internal/migrate"
)

const progressBarWidth = 20

// progressReporter redraws one stderr line per finished page with a bar and
// the running outcome tally. Runner serializes OnResult, so no locking here.
type progressReporter struct {
	out     io.Writer
	label   string
	total   int
	done    int
	tally   map[migrate.Outcome]int
	start   time.Time
	lastLen int
}

// newProgressReporter returns nil unless stderr is a terminal and the run is
// not emitting JSON. A nil reporter ignores every call.
func newProgressReporter(label string, total int, asJSON bool) *progressReporter {
	if asJSON {
		return nil
	}
	stat, err := os.Stderr.Stat()
	if err != nil || stat.Mode()&os.ModeCharDevice == 0 {
		return nil
	}
	return newProgressReporterTo(os.Stderr, label, total)
}

func newProgressReporterTo(out io.Writer, label string, total int) *progressReporter {
	return &progressReporter{
		out:   out,
		label: label,
		total: total,
		tally: make(map[migrate.Outcome]int),
		start: time.Now(),
	}
}

func (r *progressReporter) Observe(result migrate.Result) {
	if r == nil {
		return
	}
	r.done++
	r.tally[result.Outcome]++
	r.redraw(fmt.Sprintf("%s %s %d/%d %s %s",
		r.label, r.bar(), r.done, r.total, r.tallyText(), shortenPath(result.Path, 60)))
}

func (r *progressReporter) Done() {
	if r == nil || r.done == 0 {
		return
	}
	elapsed := time.Since(r.start).Round(time.Millisecond)
	r.redraw(fmt.Sprintf("%s %s %d/%d %s in %s", r.label, r.bar(), r.done, r.total, r.tallyText(), elapsed))
	fmt.Fprintln(r.out)
}

func (r *progressReporter) bar() string {
	filled := progressBarWidth
	if r.total > 0 {
		filled = r.done * progressBarWidth / r.total
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", progressBarWidth-filled) + "]"
}

func (r *progressReporter) tallyText() string {
	parts := make([]string, 0, 3)
	for _, outcome := range []migrate.Outcome{migrate.OutcomeUpdated, migrate.OutcomeFailed, migrate.OutcomeError} {
		if n := r.tally[outcome]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", outcome, n))
		}
	}
	return strings.Join(parts, " ")
}

// redraw overwrites the previous line, padding out leftovers of a longer one.
func (r *progressReporter) redraw(line string) {
	pad := ""
	if n := r.lastLen - len(line); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	r.lastLen = len(line)
	fmt.Fprintf(r.out, "\r%s%s", line, pad)
}

func shortenPath(path string, max int) string {
	runes := []rune(path)
	if len(runes) <= max {
		return path
	}
	return "..." + string(runes[len(runes)-(max-3):])
}
