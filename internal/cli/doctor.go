package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopx-dev/templatize/internal/extract"
	"github.com/shopx-dev/templatize/internal/fileutil"
	"github.com/shopx-dev/templatize/internal/render"
	"github.com/shopx-dev/templatize/internal/state"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func RunDoctor(cmd *cobra.Command, args []string) error {
	rootPath, err := resolveRoot(args)
	if err != nil {
		return err
	}
	cfg, err := LoadRunConfig(cmd, rootPath)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}

	summary := DoctorSummary{
		Mode:         "doctor",
		RootPath:     rootPath,
		SyntaxIssues: make(map[string][]extract.SyntaxIssue),
	}

	basePath := filepath.Join(rootPath, filepath.FromSlash(cfg.BaseTemplate))
	if _, err := os.Stat(basePath); err != nil {
		summary.Missing = append(summary.Missing, "base template "+cfg.BaseTemplate)
		summary.Suggestions = append(summary.Suggestions, "create "+cfg.BaseTemplate+" with title, extra_css, content and extra_js blocks")
	}

	matcher, err := buildMatcher(rootPath, cfg.Exclude)
	if err != nil {
		return err
	}
	files, err := fileutil.ScanTemplates(rootPath, matcher, cfg.Recursive)
	if err != nil {
		return fmt.Errorf("failed to scan pages: %w", err)
	}
	summary.Pages = len(files)

	st, corrupt, err := loadState(rootPath)
	if err != nil {
		return err
	}
	if corrupt {
		summary.Missing = append(summary.Missing, "valid state file")
		summary.Suggestions = append(summary.Suggestions, "remove "+filepath.Join(state.WorkDir, state.StateFile)+" and re-run templatize convert")
	}
	for _, file := range st.Paths() {
		fs, _ := st.Get(file)
		if fs.Backup == "" {
			continue
		}
		backupPath := filepath.Join(state.Dir(rootPath), filepath.FromSlash(fs.Backup))
		if _, err := os.Stat(backupPath); err != nil {
			summary.Missing = append(summary.Missing, "backup for "+file)
		}
	}

	pending := 0
	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(rootPath, filepath.FromSlash(file)))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		if render.IsTemplated(content) {
			continue
		}
		pending++

		issues, err := extract.CheckSyntax(content)
		if err != nil {
			logger.Warn("syntax check failed", zap.String("path", file), zap.Error(err))
			continue
		}
		if len(issues) > 0 {
			summary.SyntaxIssues[file] = issues
		}
	}
	if len(summary.SyntaxIssues) > 0 {
		summary.Suggestions = append(summary.Suggestions, "fix the reported markup or convert with --extractor dom")
	}
	if pending > 0 {
		summary.Suggestions = append(summary.Suggestions, "run templatize convert")
	}

	summary.Missing = fileutil.DedupeStrings(summary.Missing)
	sort.Strings(summary.Missing)
	summary.Suggestions = fileutil.DedupeStrings(summary.Suggestions)
	sort.Strings(summary.Suggestions)
	summary.Healthy = len(summary.Missing) == 0 && len(summary.SyntaxIssues) == 0

	if asJSON {
		return fileutil.PrintJSON(summary)
	}

	status := "issues"
	if summary.Healthy {
		status = "ok"
	}
	fmt.Printf("doctor: %s\n", status)
	fmt.Printf("pages: total=%d unconverted=%d with_syntax_issues=%d\n", summary.Pages, pending, len(summary.SyntaxIssues))

	issueFiles := make([]string, 0, len(summary.SyntaxIssues))
	for file := range summary.SyntaxIssues {
		issueFiles = append(issueFiles, file)
	}
	sort.Strings(issueFiles)
	for _, file := range issueFiles {
		for _, issue := range summary.SyntaxIssues[file] {
			fmt.Printf("  %s:%d:%d %s %s\n", file, issue.Line, issue.Column, issue.Kind, issue.Snippet)
		}
	}
	if len(summary.Missing) > 0 {
		fmt.Printf("missing (%d): %s\n", len(summary.Missing), strings.Join(summary.Missing, ", "))
	}
	for _, suggestion := range summary.Suggestions {
		fmt.Printf("next: %s\n", suggestion)
	}
	return nil
}
