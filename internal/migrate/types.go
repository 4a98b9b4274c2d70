package migrate

// Outcome is the per-file result of a run.
type Outcome string

const (
	OutcomeUpdated  Outcome = "updated"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeFailed   Outcome = "failed"
	OutcomeRestored Outcome = "restored"
	OutcomeError    Outcome = "error"
)

// Result describes what happened to one page.
type Result struct {
	Path       string  `json:"path"`
	Outcome    Outcome `json:"outcome"`
	Reason     string  `json:"reason,omitempty"`
	Title      string  `json:"title,omitempty"`
	Stylesheet string  `json:"stylesheet,omitempty"`
	Script     string  `json:"script,omitempty"`
	Backup     string  `json:"backup,omitempty"`
	Diff       string  `json:"diff,omitempty"`
	Err        error   `json:"-"`
}

// Counts tallies results by outcome.
func Counts(results []Result) map[Outcome]int {
	counts := make(map[Outcome]int)
	for _, r := range results {
		counts[r.Outcome]++
	}
	return counts
}

// HasErrors reports whether any result hit an I/O or parse error.
func HasErrors(results []Result) bool {
	for _, r := range results {
		if r.Outcome == OutcomeError {
			return true
		}
	}
	return false
}
