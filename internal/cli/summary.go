package cli

import (
	"fmt"
	"strings"

	"github.com/shopx-dev/templatize/internal/extract"
	"github.com/shopx-dev/templatize/internal/fileutil"
	"github.com/shopx-dev/templatize/internal/migrate"
)

type RunSummary struct {
	Mode       string           `json:"mode"`
	Extractor  string           `json:"extractor,omitempty"`
	RootPath   string           `json:"root_path"`
	DryRun     bool             `json:"dry_run"`
	Scanned    int              `json:"scanned"`
	Updated    int              `json:"updated"`
	Skipped    int              `json:"skipped"`
	Failed     int              `json:"failed"`
	Restored   int              `json:"restored,omitempty"`
	Errors     int              `json:"errors"`
	DurationMS int64            `json:"duration_ms"`
	Results    []migrate.Result `json:"results,omitempty"`
}

type StatusEntry struct {
	Path   string `json:"path"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type StatusSummary struct {
	Mode     string         `json:"mode"`
	RootPath string         `json:"root_path"`
	Counts   map[string]int `json:"counts"`
	Pages    []StatusEntry  `json:"pages"`
	Missing  []string       `json:"missing,omitempty"`
}

type DoctorSummary struct {
	Mode         string                           `json:"mode"`
	RootPath     string                           `json:"root_path"`
	Healthy      bool                             `json:"healthy"`
	Pages        int                              `json:"pages"`
	SyntaxIssues map[string][]extract.SyntaxIssue `json:"syntax_issues,omitempty"`
	Missing      []string                         `json:"missing,omitempty"`
	Suggestions  []string                         `json:"suggestions,omitempty"`
}

func NewRunSummary(mode, rootPath string, results []migrate.Result) RunSummary {
	counts := migrate.Counts(results)
	return RunSummary{
		Mode:     mode,
		RootPath: rootPath,
		Scanned:  len(results),
		Updated:  counts[migrate.OutcomeUpdated],
		Skipped:  counts[migrate.OutcomeSkipped],
		Failed:   counts[migrate.OutcomeFailed],
		Restored: counts[migrate.OutcomeRestored],
		Errors:   counts[migrate.OutcomeError],
		Results:  results,
	}
}

func PrintRunSummary(summary RunSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(summary)
	}

	for _, result := range summary.Results {
		fmt.Println(resultLine(result, summary.Mode, summary.DryRun))
		if result.Diff != "" {
			fmt.Print(result.Diff)
		}
	}

	mode := summary.Mode
	if summary.DryRun {
		mode += " (dry-run)"
	}
	parts := []string{
		fmt.Sprintf("%s:", mode),
		fmt.Sprintf("scanned=%d", summary.Scanned),
	}
	if summary.Mode == "restore" {
		parts = append(parts, fmt.Sprintf("restored=%d", summary.Restored))
	} else {
		parts = append(parts, fmt.Sprintf("updated=%d", summary.Updated))
	}
	parts = append(parts,
		fmt.Sprintf("skipped=%d", summary.Skipped),
		fmt.Sprintf("failed=%d", summary.Failed),
		fmt.Sprintf("errors=%d", summary.Errors),
		fmt.Sprintf("duration=%dms", summary.DurationMS),
	)
	fmt.Println(strings.Join(parts, " "))
	return nil
}

func resultLine(result migrate.Result, mode string, dryRun bool) string {
	verb := "update"
	if mode == "restore" {
		verb = "restore"
	}

	switch result.Outcome {
	case migrate.OutcomeUpdated:
		if dryRun {
			return "Would update " + result.Path
		}
		return "Updated " + result.Path
	case migrate.OutcomeRestored:
		if dryRun {
			return "Would restore " + result.Path
		}
		return "Restored " + result.Path
	case migrate.OutcomeSkipped:
		return fmt.Sprintf("Skipped %s (%s)", result.Path, result.Reason)
	case migrate.OutcomeFailed:
		if result.Reason != "" {
			return fmt.Sprintf("Failed to %s %s (%s)", verb, result.Path, result.Reason)
		}
		return fmt.Sprintf("Failed to %s %s", verb, result.Path)
	default:
		return fmt.Sprintf("Error %s: %s", result.Path, result.Reason)
	}
}

func PrintStatusSummary(summary StatusSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(summary)
	}

	for _, entry := range summary.Pages {
		if entry.Reason != "" {
			fmt.Printf("%-13s %s (%s)\n", entry.Status, entry.Path, entry.Reason)
			continue
		}
		fmt.Printf("%-13s %s\n", entry.Status, entry.Path)
	}
	fmt.Printf(
		"status: pages=%d pending=%d converted=%d modified=%d unconvertible=%d templated=%d\n",
		len(summary.Pages),
		summary.Counts[statusPending],
		summary.Counts[statusConverted],
		summary.Counts[statusModified],
		summary.Counts[statusUnconvertible],
		summary.Counts[statusTemplated],
	)
	if len(summary.Missing) > 0 {
		fmt.Printf("missing converted pages (%d): %s\n", len(summary.Missing), fileutil.SummarizePaths(summary.Missing, 8))
	}
	return nil
}
