package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopx-dev/templatize/internal/fileutil"
	"github.com/shopx-dev/templatize/internal/page"
	"github.com/shopx-dev/templatize/internal/render"
	"github.com/shopx-dev/templatize/internal/state"
	"github.com/spf13/cobra"
)

const (
	statusPending       = "pending"
	statusConverted     = "converted"
	statusModified      = "modified"
	statusUnconvertible = "unconvertible"
	statusTemplated     = "templated"
)

func RunStatus(cmd *cobra.Command, args []string) error {
	rootPath, err := resolveRoot(args)
	if err != nil {
		return err
	}
	cfg, err := LoadRunConfig(cmd, rootPath)
	if err != nil {
		return err
	}
	extractor, err := ParseExtractor(cfg.Extractor)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}

	matcher, err := buildMatcher(rootPath, cfg.Exclude)
	if err != nil {
		return err
	}
	files, err := fileutil.ScanTemplates(rootPath, matcher, cfg.Recursive)
	if err != nil {
		return fmt.Errorf("failed to scan pages: %w", err)
	}
	st, _, err := loadState(rootPath)
	if err != nil {
		return err
	}

	summary := StatusSummary{
		Mode:     "status",
		RootPath: rootPath,
		Counts:   make(map[string]int),
		Pages:    make([]StatusEntry, 0, len(files)),
		Missing:  st.MissingFiles(fileutil.ToSet(files)),
	}
	for _, file := range files {
		entry, err := classifyPage(rootPath, file, st, extractor)
		if err != nil {
			return err
		}
		summary.Counts[entry.Status]++
		summary.Pages = append(summary.Pages, entry)
	}

	return PrintStatusSummary(summary, asJSON)
}

func classifyPage(rootPath, file string, st *state.State, extractor page.Extractor) (StatusEntry, error) {
	entry := StatusEntry{Path: file}
	content, err := os.ReadFile(filepath.Join(rootPath, filepath.FromSlash(file)))
	if err != nil {
		return entry, fmt.Errorf("failed to read %s: %w", file, err)
	}

	if _, tracked := st.Get(file); tracked {
		switch st.Status(file, fileutil.HashBytes(content)) {
		case state.StatusModified:
			entry.Status = statusModified
			entry.Reason = "edited since conversion"
		default:
			entry.Status = statusConverted
		}
		return entry, nil
	}

	if render.IsTemplated(content) {
		entry.Status = statusTemplated
		return entry, nil
	}

	if _, err := extractor.Extract(content); err != nil {
		if errors.Is(err, page.ErrNoMain) {
			entry.Status = statusUnconvertible
			entry.Reason = page.ErrNoMain.Error()
			return entry, nil
		}
		return entry, fmt.Errorf("failed to extract %s: %w", file, err)
	}
	entry.Status = statusPending
	return entry, nil
}
